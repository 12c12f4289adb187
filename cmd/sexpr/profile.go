package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sexpr/internal/prof"
)

// setupProfiling reads the profiling flags and starts the requested profilers.
// The returned cleanup flushes them and may be called more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root().PersistentFlags()

	var paths prof.Paths
	var err error
	if paths.CPU, err = root.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = root.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = root.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !paths.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(paths)
	if err != nil {
		return nil, err
	}
	return func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "failed to write profiles: %v\n", stopErr)
		}
	}, nil
}
