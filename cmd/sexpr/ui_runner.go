package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sexpr/internal/driver"
	"sexpr/internal/source"
	"sexpr/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []*driver.ParseResult
	err     error
}

// runParseDirWithUI parses dir in the background while a progress view renders.
func runParseDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []*driver.ParseResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
