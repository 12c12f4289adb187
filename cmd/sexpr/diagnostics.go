package main

import (
	"os"

	"github.com/spf13/cobra"

	"sexpr/internal/diag"
	"sexpr/internal/diagfmt"
	"sexpr/internal/source"
)

// printDiagnostics writes bag to stderr and reports whether it held errors.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return false, err
	}
	bag.Sort()
	bag.Dedup()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor,
		ShowNotes: !isQuiet(cmd),
	})
	return bag.HasErrors(), nil
}
