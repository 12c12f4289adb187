package ast

// Walk calls fn for n and then for every descendant in pre-order.
// depth is 0 for n. Returning false from fn skips that node's children.
func Walk(n Node, fn func(node Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) || n.Kind != NodeList {
		return
	}
	for _, child := range n.Items {
		walk(child, depth+1, fn)
	}
}

// Depth returns the nesting depth: 0 for an atom, 1 for a list of atoms.
func (n Node) Depth() int {
	if n.Kind != NodeList {
		return 0
	}
	deepest := 0
	for _, child := range n.Items {
		deepest = max(deepest, child.Depth())
	}
	return deepest + 1
}

// CountAtoms returns the number of atoms in the tree.
func (n Node) CountAtoms() int {
	count := 0
	Walk(n, func(node Node, _ int) bool {
		if node.IsAtom() {
			count++
		}
		return true
	})
	return count
}

// Equal compares shape and atom text. Spans, token kinds and group tags are ignored.
func Equal(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == NodeAtom {
		return a.Tok.Text == b.Tok.Text
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

// Atoms returns the atom texts of a flat sequence; nested lists appear as their rendering.
func Atoms(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}
