package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sexpr/internal/config"
	"sexpr/internal/driver"
	"sexpr/internal/observ"
)

var (
	appConfig = &config.Config{}
	cleanups  []func()
)

// setupCommand runs before every subcommand: profiling, tracing, then config.
func setupCommand(cmd *cobra.Command, args []string) error {
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProf)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, loadErr := config.Load(path)
		if loadErr != nil {
			return loadErr
		}
		appConfig = cfg
		return nil
	}
	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// pipelineOptions merges sexpr.toml with command-line flags; flags win when set.
func pipelineOptions(cmd *cobra.Command, useCache bool) (driver.Options, error) {
	root := cmd.Root().PersistentFlags()

	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	table, err := appConfig.Table()
	if err != nil {
		return driver.Options{}, fmt.Errorf("config: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Operators:      appConfig.Lex.Operators,
		Strict:         appConfig.Parse.Strict,
		MaxDepth:       appConfig.Parse.MaxDepth,
		Table:          table,
	}

	if f := cmd.Flags().Lookup("operators"); f != nil && f.Changed {
		if opts.Operators, err = cmd.Flags().GetBool("operators"); err != nil {
			return driver.Options{}, err
		}
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		if opts.Strict, err = cmd.Flags().GetBool("strict"); err != nil {
			return driver.Options{}, err
		}
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return driver.Options{}, err
		}
	}

	timings, err := root.GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}

	noCache, err := root.GetBool("no-cache")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if useCache && !noCache {
		cache, cacheErr := driver.OpenCache("sexpr")
		if cacheErr != nil {
			// без кеша тоже работаем
			fmt.Fprintf(os.Stderr, "warning: parse cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && quiet
}

func printTimings(opts driver.Options) {
	if opts.Timer == nil {
		return
	}
	fmt.Fprint(os.Stderr, opts.Timer.Summary())
}
