package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sexpr/internal/ast"
	"sexpr/internal/driver"
)

var postfixCmd = &cobra.Command{
	Use:   "postfix [flags] file.cx",
	Short: "Print every statement of a file in postfix order",
	Long: `Postfix parses the file with operator lexing on and reorders each
statement with the shunting-yard algorithm ([[operator]] entries in sexpr.toml
extend the table)`,
	Args: cobra.ExactArgs(1),
	RunE: runPostfix,
}

func init() {
	postfixCmd.Flags().Bool("strict", false, "reject unbalanced brackets")
}

func runPostfix(cmd *cobra.Command, args []string) error {
	opts, err := pipelineOptions(cmd, true)
	if err != nil {
		return err
	}
	defer printTimings(opts)

	result, err := driver.Postfix(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("postfix failed: %w", err)
	}
	hasErrors, err := printDiagnostics(cmd, result.Bag, result.FileSet)
	if err != nil {
		return err
	}
	if hasErrors || result.Err != nil {
		return errReported
	}
	return writeStatements(os.Stdout, result.Statements, isQuiet(cmd))
}

func writeStatements(w io.Writer, stmts []driver.StatementResult, quiet bool) error {
	for _, s := range stmts {
		if !quiet {
			if _, err := fmt.Fprintln(w, ast.FormatSeq(s.Statement)); err != nil {
				return err
			}
			if _, err := fmt.Fprint(w, "  => "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, formatPostfix(s.Postfix)); err != nil {
			return err
		}
	}
	return nil
}

// formatPostfix joins the reordered nodes with spaces; lists keep their "(a, b)" form.
func formatPostfix(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
