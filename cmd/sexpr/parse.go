package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sexpr/internal/ast"
	"sexpr/internal/diagfmt"
	"sexpr/internal/driver"
	"sexpr/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.cx|directory>",
	Short: "Group a source file (or every *.cx file in a directory) into a tree",
	Long: `Parse lexes the input and groups it: brackets open nested lists and ';'
wraps a statement into its own list`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml)")
	parseCmd.Flags().Bool("strict", false, "reject unbalanced brackets")
	parseCmd.Flags().Bool("operators", false, "lex + - * / = as Operator tokens")
	parseCmd.Flags().Bool("spans", false, "include spans in tree/json/yaml output")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	spans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	treeOpts := diagfmt.TreeOpts{Spans: spans}

	opts, err := pipelineOptions(cmd, true)
	if err != nil {
		return err
	}
	defer printTimings(opts)

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, parseErr := driver.Parse(cmd.Context(), filePath, opts)
		if parseErr != nil {
			return fmt.Errorf("parsing failed: %w", parseErr)
		}
		hasErrors, printErr := printDiagnostics(cmd, result.Bag, result.FileSet)
		if printErr != nil {
			return printErr
		}
		if hasErrors || result.Err != nil {
			return errReported
		}
		return writeTree(os.Stdout, format, result.Root, result.FileSet, treeOpts)
	}

	useUI, err := progressUIEnabled(cmd)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []*driver.ParseResult
	)
	if useUI {
		fs, results, err = runParseDirWithUI(cmd.Context(), "parse "+filePath, filePath, opts)
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), filePath, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	for _, r := range results {
		hasErrors, printErr := printDiagnostics(cmd, r.Bag, fs)
		if printErr != nil {
			return printErr
		}
		failed = failed || hasErrors || r.Err != nil
	}

	if err := writeDirTrees(cmd, os.Stdout, format, fs, results, treeOpts); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

func writeTree(w io.Writer, format string, root ast.Node, fs *source.FileSet, opts diagfmt.TreeOpts) error {
	switch format {
	case "tree":
		return diagfmt.FormatTreeIndented(w, root, fs, opts)
	case "json":
		return diagfmt.FormatTreeJSON(w, root, opts)
	case "yaml":
		return diagfmt.FormatTreeYAML(w, root, opts)
	default:
		return diagfmt.FormatTreePretty(w, root)
	}
}

// writeDirTrees prints successful results in file order; json/yaml emit one
// document keyed by display path.
func writeDirTrees(cmd *cobra.Command, w io.Writer, format string, fs *source.FileSet, results []*driver.ParseResult, opts diagfmt.TreeOpts) error {
	ok := make([]*driver.ParseResult, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.File != nil {
			ok = append(ok, r)
		}
	}

	switch format {
	case "json", "yaml":
		output := make(map[string]diagfmt.NodeOutput, len(ok))
		for _, r := range ok {
			output[r.File.DisplayPath(fs.BaseDir())] = diagfmt.BuildNodeOutput(r.Root, opts)
		}
		if format == "json" {
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			return encoder.Encode(output)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(output); err != nil {
			return err
		}
		return enc.Close()
	}

	quiet := isQuiet(cmd)
	for idx, r := range ok {
		if !quiet {
			if _, err := fmt.Fprintf(w, "== %s ==\n", r.File.DisplayPath(fs.BaseDir())); err != nil {
				return err
			}
		}
		if err := writeTree(w, format, r.Root, fs, opts); err != nil {
			return err
		}
		if !quiet && idx < len(ok)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}
