package postfix

import "sexpr/internal/ast"

// Statements splits a parsed program into flat statements.
//
// Every ';'-terminated statement list becomes one statement. Runs of nodes
// that were spliced into the root unwrapped (text after the last ';', or a
// function header and its body) form one statement each.
func Statements(root ast.Node) [][]ast.Node {
	if !root.IsList() {
		return [][]ast.Node{{root}}
	}

	var (
		out [][]ast.Node
		run []ast.Node
	)
	for _, n := range root.Items {
		if n.IsList() && n.Group == ast.GroupStatement {
			if len(run) > 0 {
				out = append(out, run)
				run = nil
			}
			out = append(out, n.Items)
			continue
		}
		run = append(run, n)
	}
	if len(run) > 0 {
		out = append(out, run)
	}
	return out
}
