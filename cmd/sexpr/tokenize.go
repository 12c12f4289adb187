package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sexpr/internal/diagfmt"
	"sexpr/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cx",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file into Value, Punct and EOF tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("operators", false, "lex + - * / = as Operator tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, err := pipelineOptions(cmd, false)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	defer printTimings(opts)

	hasErrors, err := printDiagnostics(cmd, result.Bag, result.FileSet)
	if err != nil {
		return err
	}
	if hasErrors || result.Err != nil {
		return errReported
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	}
}
