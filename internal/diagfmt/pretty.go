package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sexpr/internal/diag"
	"sexpr/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	if located(d.Primary, fs) && d.Code != diag.IOLoadFileError {
		f := fs.Get(d.Primary.File)
		pos := f.Position(d.Primary.Start)
		fmt.Fprintf(w, "%s:%d:%d: ", formatPath(f, fs, opts.PathMode), pos.Line, pos.Col)
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		if d.Code != diag.IOCacheError {
			writeSnippet(w, f, d.Primary, pal, pal.caret)
		}
	} else {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
		if n.Span != d.Primary && located(n.Span, fs) && n.Span.File == d.Primary.File && d.Code != diag.IOLoadFileError {
			writeSnippet(w, fs.Get(n.Span.File), n.Span, pal, pal.note)
		}
	}
}

// writeSnippet prints the first line of sp with a caret run under it.
// Column widths go through go-runewidth so wide characters line up.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, pal palette, caret *color.Color) {
	start := f.Position(sp.Start)
	line := f.Line(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	colByte := min(int(start.Col-1), len(line))
	prefix := runewidth.StringWidth(expandTabs(line[:colByte]))

	endByte := colByte + int(sp.Len())
	if endByte > len(line) {
		endByte = len(line)
	}
	width := max(runewidth.StringWidth(expandTabs(line[colByte:endByte])), 1)

	gutter := fmt.Sprintf("%4d", start.Line)
	fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprint(gutter), pal.gutter.Sprint("|"), expandTabs(line))
	fmt.Fprintf(w, "%s %s %s%s\n",
		strings.Repeat(" ", len(gutter)), pal.gutter.Sprint("|"),
		strings.Repeat(" ", prefix), caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
