// Package ast defines the S-expression tree produced by the grouping parser.
//
// A tree has two node kinds: atoms wrap one token, lists wrap an ordered,
// possibly empty slice of nodes. The same list shape is used for the program
// root, for one ';'-terminated statement and for one bracket level. GroupKind
// records which of those a list came from; it never changes rendering or
// equality, so trees compare the same whether or not it is set.
//
// Trees are plain values. Children are owned by their parent; nothing in a
// tree points back up or is shared with another tree.
package ast
