package driver

import (
	"sexpr/internal/observ"
	"sexpr/internal/postfix"
)

// Options configures a pipeline run. The zero value lexes without operators,
// parses leniently and reorders with postfix.DefaultTable.
type Options struct {
	MaxDiagnostics int
	Operators      bool
	Strict         bool
	MaxDepth       int
	Table          postfix.Table
	Jobs           int
	Cache          *Cache
	Timer          *observ.Timer
	Progress       ProgressSink
}

func (o Options) table() postfix.Table {
	if o.Table == nil {
		return postfix.DefaultTable()
	}
	return o.Table
}

// extraOperators lists the table's single-character symbols for the lexer.
func (o Options) extraOperators() string {
	if !o.Operators {
		return ""
	}
	return o.table().OperatorChars()
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
