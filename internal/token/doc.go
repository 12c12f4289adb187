// Package token defines the lexical token kinds of the C-like surface syntax.
// Invariants:
//   - Token.Text is the exact source substring; it is empty only for EOF.
//   - Token.Span covers Text exactly (Start..End); EOF has an empty span at end of input.
//   - Value does not distinguish identifiers, keywords and numbers.
//   - Punct tokens are always one of "{", "}", "(", ")", ";".
package token
