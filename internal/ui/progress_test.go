package ui

import (
	"strings"
	"testing"

	"sexpr/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("parse dir", []string{"dir/a.cx", "dir/./b.cx"}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{File: "dir/a.cx", Stage: driver.StageLex, Status: driver.StatusWorking}))
	if got := m.items[0].status; got != "lexing" {
		t.Fatalf("a.cx status = %q", got)
	}
	if p := m.percent(); p != 0.1 {
		t.Fatalf("percent = %v, want 0.1", p)
	}

	m.Update(eventMsg(driver.Event{File: "dir/b.cx", Stage: driver.StageParse, Status: driver.StatusWorking}))
	if got := m.items[1].status; got != "grouping" {
		t.Fatalf("b.cx status = %q (paths must match after cleaning)", got)
	}

	m.Update(eventMsg(driver.Event{File: "dir/a.cx", Status: driver.StatusDone}))
	m.Update(eventMsg(driver.Event{File: "dir/b.cx", Status: driver.StatusError}))
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}

	m.Update(eventMsg(driver.Event{File: "unknown.cx", Status: driver.StatusDone}))
	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: parse dir", "done", "error", "dir/a.cx"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a/very/long/path.cx", 10); got != "a/very/..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("中文中文", 3); got != "中" {
		t.Errorf("truncate wide = %q", got)
	}
}
