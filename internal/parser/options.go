package parser

import (
	"sexpr/internal/diag"
	"sexpr/internal/trace"
)

// DefaultMaxDepth bounds bracket nesting in strict mode when Options.MaxDepth is 0.
const DefaultMaxDepth = 1024

// Options tunes the grouping parser. The zero value is the lenient mode:
// closers are not paired with openers, stray closers and unknown punctuation
// are skipped, and an unclosed group at end of input is returned as collected.
type Options struct {
	// Strict pairs every closer with its opener and rejects unclosed groups
	// and stray closers.
	Strict bool
	// MaxDepth limits bracket nesting in both modes when positive. With 0,
	// strict mode uses DefaultMaxDepth and lenient mode has no limit.
	MaxDepth int
	// Reporter receives a diagnostic for every error (and, in strict mode,
	// a warning for each empty statement). May be nil.
	Reporter diag.Reporter
	// Tracer gets a pass-scoped span per Parse and group-scoped points.
	Tracer trace.Tracer
}

// maxDepth returns the nesting limit; 0 means unlimited.
func (o Options) maxDepth() int {
	switch {
	case o.MaxDepth > 0:
		return o.MaxDepth
	case o.Strict:
		return DefaultMaxDepth
	default:
		return 0
	}
}
