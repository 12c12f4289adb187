package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"sexpr/internal/trace"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		lvl, err := trace.ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(lvl.String(), name) {
			t.Errorf("round trip %q -> %q", name, lvl)
		}
	}
	if _, err := trace.ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !trace.LevelPhase.ShouldEmit(trace.ScopePass) || trace.LevelPhase.ShouldEmit(trace.ScopeFile) {
		t.Errorf("phase level must stop at pass scope")
	}
	if !trace.LevelDetail.ShouldEmit(trace.ScopeFile) || trace.LevelDetail.ShouldEmit(trace.ScopeGroup) {
		t.Errorf("detail level must stop at file scope")
	}
	if trace.LevelError.ShouldEmit(trace.ScopeDriver) {
		t.Errorf("error level emits nothing in normal runs")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)

	root := trace.Begin(tr, trace.ScopeDriver, "parse", 0)
	child := trace.Begin(tr, trace.ScopePass, "lex", root.ID())
	child.WithExtra("tokens", "10").End("")
	trace.Begin(tr, trace.ScopeFile, "file:skipped.cx", child.ID()).End("")
	root.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "← lex {tokens=10}") {
		t.Errorf("unexpected end line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "parse (ok)") {
		t.Errorf("unexpected root end: %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	trace.Point(tr, trace.ScopeGroup, "group", "depth=2", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "group" || got["detail"] != "depth=2" {
		t.Errorf("unexpected event: %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(tr, trace.ScopePass, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot size %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if trace.FromContext(ctx).Enabled() {
		t.Fatalf("default tracer must be disabled")
	}
	ring := trace.NewRingTracer(4, trace.LevelPhase)
	ctx = trace.WithSpan(trace.WithTracer(ctx, ring), 42)
	if trace.FromContext(ctx) != trace.Tracer(ring) {
		t.Errorf("tracer not propagated")
	}
	if trace.CurrentSpan(ctx) != 42 {
		t.Errorf("span id not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Errorf("LevelOff must produce a disabled tracer")
	}
	span := trace.Begin(tr, trace.ScopeDriver, "x", 0)
	if span.End("") != 0 || span.ID() != 0 {
		t.Errorf("disabled span must be inert")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]trace.Format{
		"out.ndjson": trace.FormatNDJSON,
		"out.jsonl":  trace.FormatNDJSON,
		"out.txt":    trace.FormatText,
		"-":          trace.FormatText,
		"":           trace.FormatText,
	}
	for path, want := range tests {
		if got := trace.FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}
