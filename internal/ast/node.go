package ast

import (
	"strings"

	"sexpr/internal/source"
	"sexpr/internal/token"
)

// NodeKind distinguishes atoms from lists.
type NodeKind uint8

const (
	NodeAtom NodeKind = iota + 1
	NodeList
)

func (k NodeKind) String() string {
	switch k {
	case NodeAtom:
		return "atom"
	case NodeList:
		return "list"
	default:
		return "invalid"
	}
}

// GroupKind tags where a list came from. Informational only.
type GroupKind uint8

const (
	GroupNone      GroupKind = iota // built by hand or by the reorderer
	GroupProgram                    // root of a parsed file
	GroupStatement                  // ';'-terminated statement
	GroupParen                      // ( ... )
	GroupBrace                      // { ... }
)

func (g GroupKind) String() string {
	switch g {
	case GroupProgram:
		return "program"
	case GroupStatement:
		return "statement"
	case GroupParen:
		return "paren"
	case GroupBrace:
		return "brace"
	default:
		return "none"
	}
}

// GroupForOpener maps "(" and "{" to their GroupKind.
func GroupForOpener(open string) GroupKind {
	switch open {
	case "(":
		return GroupParen
	case "{":
		return GroupBrace
	}
	return GroupNone
}

// Node is either an atom (Kind == NodeAtom, Tok set) or a list
// (Kind == NodeList, Items set, Group optional).
type Node struct {
	Kind  NodeKind
	Tok   token.Token
	Group GroupKind
	Items []Node
	Span  source.Span
}

// Atom wraps one token.
func Atom(tok token.Token) Node {
	return Node{Kind: NodeAtom, Tok: tok, Span: tok.Span}
}

// AtomText wraps a location-less Value token. Handy for tests and hand-built statements.
func AtomText(text string) Node {
	return Atom(token.New(token.Value, text))
}

// List builds a list node. A nil items slice is stored as an empty list.
func List(group GroupKind, items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{Kind: NodeList, Group: group, Items: items}
}

// IsAtom reports whether n is an atom.
func (n Node) IsAtom() bool { return n.Kind == NodeAtom }

// IsList reports whether n is a list.
func (n Node) IsList() bool { return n.Kind == NodeList }

// Text returns the atom's token text, or "" for lists.
func (n Node) Text() string {
	if n.Kind != NodeAtom {
		return ""
	}
	return n.Tok.Text
}

// Len returns the number of children of a list (0 for atoms).
func (n Node) Len() int { return len(n.Items) }

// Child returns the i-th child and whether it exists.
func (n Node) Child(i int) (Node, bool) {
	if i < 0 || i >= len(n.Items) {
		return Node{}, false
	}
	return n.Items[i], true
}

// String renders atoms as their text and lists as "(a, b, c)".
func (n Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	if n.Kind == NodeAtom {
		sb.WriteString(n.Tok.Text)
		return
	}
	sb.WriteByte('(')
	for i, child := range n.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		child.write(sb)
	}
	sb.WriteByte(')')
}

// FormatSeq renders a flat sequence the way a list of it would render.
func FormatSeq(nodes []Node) string {
	return List(GroupNone, nodes...).String()
}
