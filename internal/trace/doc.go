// Package trace records the boundaries of pipeline work for diagnosing slow or
// stuck runs. It is the project's logging layer: components emit structured
// events instead of free-form log lines.
//
// Enable it from the CLI:
//
//	sexpr parse --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//
// Scopes, coarse to fine: ScopeDriver (one CLI command), ScopePass (lex,
// parse, postfix), ScopeFile (one input file), ScopeGroup (one bracket level).
//
// Propagation goes through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
