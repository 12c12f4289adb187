// Package postfix reorders one flat statement into postfix (reverse Polish)
// order with a shunting-yard pass over an injectable operator table.
// Nested lists are operands: they pass through untouched.
package postfix
