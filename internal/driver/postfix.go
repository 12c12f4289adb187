package driver

import (
	"context"
	"fmt"

	"sexpr/internal/ast"
	"sexpr/internal/postfix"
)

// StatementResult pairs one flat statement with its postfix order.
type StatementResult struct {
	Statement []ast.Node
	Postfix   []ast.Node
}

type PostfixResult struct {
	*ParseResult
	Statements []StatementResult
}

// Postfix parses path with operator lexing on and reorders every statement.
// The returned error covers I/O and an invalid operator table.
func Postfix(ctx context.Context, path string, opts Options) (*PostfixResult, error) {
	table := opts.table()
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("operator table: %w", err)
	}

	opts.Operators = true
	pr, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return reorderAll(pr, table, opts)
}

func reorderAll(pr *ParseResult, table postfix.Table, opts Options) (*PostfixResult, error) {
	res := &PostfixResult{ParseResult: pr}
	if pr.Err != nil {
		return res, nil
	}

	done := opts.Timer.Track("postfix " + pr.File.Path)
	opts.emit(Event{File: pr.File.Path, Stage: StagePostfix, Status: StatusWorking})
	for _, stmt := range postfix.Statements(pr.Root) {
		out, err := postfix.Reorder(stmt, table)
		if err != nil {
			done("error")
			return nil, err
		}
		res.Statements = append(res.Statements, StatementResult{Statement: stmt, Postfix: out})
	}
	done("")
	return res, nil
}
