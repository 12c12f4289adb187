package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"sexpr/internal/source"
)

// Cursor walks a file one Unicode scalar value at a time and keeps the
// position used in error messages: Line is 0-based, Col is 1-based.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
	Line  int
	Col   int
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit, Col: 1}
}

// EOF reports whether the cursor reached the end of input.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekRune decodes the current scalar value. Invalid UTF-8 yields
// utf8.RuneError with size 1; EOF yields size 0.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// Bump advances past one scalar value and returns it.
func (c *Cursor) Bump() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return 0
	}
	c.Off += uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
	c.Col++
	if r == '\n' {
		c.Line++
		c.Col = 1
	}
	return r
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark saves the current offset.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span between m and the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// RuneSpan returns the span of the scalar value under the cursor.
func (c *Cursor) RuneSpan() source.Span {
	_, sz := c.PeekRune()
	return source.Span{File: c.File.ID, Start: c.Off, End: c.Off + uint32(sz)} // #nosec G115
}
