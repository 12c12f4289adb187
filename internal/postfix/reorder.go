package postfix

import (
	"sexpr/internal/ast"
)

// ToPostfix reorders stmt with DefaultTable. It does not fail for any input.
func ToPostfix(stmt []ast.Node) ([]ast.Node, error) {
	return Reorder(stmt, DefaultTable())
}

// Reorder runs the shunting-yard pass over one flat statement.
//
// Before pushing an operator, stacked operators are popped while their
// strength is not less than the current one (left-associative) or strictly
// greater (right-associative). The stack is drained in LIFO order at the end.
// Operands and lists keep their relative order.
func Reorder(stmt []ast.Node, table Table) ([]ast.Node, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	out := make([]ast.Node, 0, len(stmt))
	stack := make([]ast.Node, 0, len(stmt)/2+1)

	for _, n := range stmt {
		if n.IsList() {
			out = append(out, n)
			continue
		}
		cur, ok := table.Lookup(n.Text())
		if !ok {
			out = append(out, n)
			continue
		}
		for len(stack) > 0 {
			top := table[stack[len(stack)-1].Text()]
			if top.Prec < cur.Prec || (cur.Assoc == Right && top.Prec == cur.Prec) {
				break
			}
			out = append(out, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, n)
	}

	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i])
	}
	return out, nil
}
