package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sexpr/internal/ast"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

// CheckTreeInvariants runs a minimal set of invariants on a parsed tree:
// 1) the root is a list
// 2) no atom carries the EOF token, and every atom has non-empty text
// 3) every atom's text equals the file content under its span
// 4) every non-empty span lies within file bounds and inside its parent's span
func CheckTreeInvariants(root ast.Node, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if !root.IsList() {
		return fmt.Errorf("root is %s, want list", root.Kind)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return check(root, source.Span{}, sf, lenContent)
}

func check(n ast.Node, parent source.Span, sf *source.File, lenContent uint32) error {
	sp := n.Span
	if !sp.Empty() {
		if sp.File != sf.ID {
			return fmt.Errorf("span %v points to different file id: want=%d", sp, sf.ID)
		}
		if sp.End > lenContent || sp.Start > sp.End {
			return fmt.Errorf("span %v beyond content (%d bytes)", sp, lenContent)
		}
		if !parent.Empty() && !parent.Contains(sp) {
			return fmt.Errorf("span %v escapes parent %v", sp, parent)
		}
	}

	if n.IsAtom() {
		if n.Tok.Kind == token.EOF {
			return fmt.Errorf("EOF token in tree at %v", sp)
		}
		if n.Tok.Text == "" {
			return fmt.Errorf("atom with empty text at %v", sp)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != n.Tok.Text {
			return fmt.Errorf("atom %q does not match source %q at %v", n.Tok.Text, got, sp)
		}
		return nil
	}

	for _, child := range n.Items {
		if err := check(child, sp, sf, lenContent); err != nil {
			return err
		}
	}
	return nil
}
