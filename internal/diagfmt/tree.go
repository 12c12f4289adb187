package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"sexpr/internal/ast"
	"sexpr/internal/source"
)

// NodeOutput is the serialisable form of ast.Node used by the json and yaml formats.
type NodeOutput struct {
	Kind  string       `json:"kind" yaml:"kind"`
	Group string       `json:"group,omitempty" yaml:"group,omitempty"`
	Text  string       `json:"text,omitempty" yaml:"text,omitempty"`
	Token string       `json:"token,omitempty" yaml:"token,omitempty"`
	Span  *source.Span `json:"span,omitempty" yaml:"span,omitempty"`
	Items []NodeOutput `json:"items,omitempty" yaml:"items,omitempty"`
}

// BuildNodeOutput converts a tree.
func BuildNodeOutput(n ast.Node, opts TreeOpts) NodeOutput {
	out := NodeOutput{Kind: n.Kind.String()}
	if opts.Spans {
		sp := n.Span
		out.Span = &sp
	}
	if n.IsAtom() {
		out.Text = n.Tok.Text
		out.Token = n.Tok.Kind.String()
		return out
	}
	if n.Group != ast.GroupNone {
		out.Group = n.Group.String()
	}
	out.Items = make([]NodeOutput, len(n.Items))
	for i, child := range n.Items {
		out.Items[i] = BuildNodeOutput(child, opts)
	}
	return out
}

// FormatTreePretty prints the one-line "(a, b, c)" rendering.
func FormatTreePretty(w io.Writer, root ast.Node) error {
	_, err := fmt.Fprintln(w, root.String())
	return err
}

// FormatTreeIndented prints one node per line, children indented under their list.
func FormatTreeIndented(w io.Writer, root ast.Node, fs *source.FileSet, opts TreeOpts) error {
	var sb strings.Builder
	writeIndented(&sb, root, 0, fs, opts)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeIndented(sb *strings.Builder, n ast.Node, depth int, fs *source.FileSet, opts TreeOpts) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsAtom() {
		fmt.Fprintf(sb, "%s %q", n.Tok.Kind, n.Tok.Text)
	} else {
		fmt.Fprintf(sb, "%s [%d]", n.Group, n.Len())
	}
	if opts.Spans && fs != nil && !n.Span.Empty() && int(n.Span.File) < fs.Len() {
		start, end := fs.Resolve(n.Span)
		fmt.Fprintf(sb, " @ %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	sb.WriteByte('\n')
	for _, child := range n.Items {
		writeIndented(sb, child, depth+1, fs, opts)
	}
}

// FormatTreeJSON writes the tree as indented JSON.
func FormatTreeJSON(w io.Writer, root ast.Node, opts TreeOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildNodeOutput(root, opts))
}

// FormatTreeYAML writes the tree as YAML.
func FormatTreeYAML(w io.Writer, root ast.Node, opts TreeOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildNodeOutput(root, opts)); err != nil {
		return err
	}
	return enc.Close()
}
