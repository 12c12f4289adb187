package lexer

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/runenames"

	"sexpr/internal/diag"
	"sexpr/internal/source"
	"sexpr/internal/token"
)

// Lexer turns one source file into a token stream.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	err    error // первая ошибка; после неё Next всегда возвращает её же
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token.
// After EOF it keeps returning EOF; after an error it keeps returning that error.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}

	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}, nil
	}

	ch := lx.cursor.Peek()
	switch {
	case token.IsPunctChar(ch):
		return lx.scanSingle(token.Punct), nil
	case isValueByte(ch):
		return lx.scanValue()
	case lx.opts.Operators && (token.IsOperatorChar(ch) || lx.opts.isExtraOperator(ch)):
		return lx.scanSingle(token.Operator), nil
	default:
		return token.Token{}, lx.fail(diag.LexUnknownChar, lx.cursor.RuneSpan())
	}
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) scanSingle(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanValue consumes a maximal run of [A-Za-z0-9_].
func (lx *Lexer) scanValue() (token.Token, error) {
	start := lx.cursor.Mark()
	line, col := lx.cursor.Line, lx.cursor.Col
	for isValueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if limit := lx.opts.MaxTokenLength; limit > 0 && int(sp.Len()) > limit {
		lx.cursor.Line, lx.cursor.Col = line, col
		return token.Token{}, lx.fail(diag.LexTokenTooLong, sp)
	}
	return token.Token{Kind: token.Value, Span: sp, Text: lx.text(sp)}, nil
}

// fail records the sticky error at the current cursor line/column and reports it.
func (lx *Lexer) fail(code diag.Code, sp source.Span) error {
	r, _ := lx.cursor.PeekRune()
	e := &Error{
		Code:   code,
		Char:   r,
		Line:   lx.cursor.Line,
		Column: lx.cursor.Col,
		Span:   sp,
	}
	lx.err = e

	b := diag.ReportError(lx.opts.Reporter, code, sp, e.Error())
	if code == diag.LexUnknownChar {
		b.WithNote(sp, describeRune(r))
	} else {
		b.WithNote(sp, "values are limited to "+strconv.Itoa(lx.opts.MaxTokenLength)+" bytes")
	}
	b.Emit()
	return e
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func isValueByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// describeRune gives "U+0024 DOLLAR SIGN"-style names for diagnostics.
func describeRune(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("%U", r)
	}
	return fmt.Sprintf("%U %s", r, name)
}
