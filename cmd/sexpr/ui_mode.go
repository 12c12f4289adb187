package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// progressUIEnabled reads --ui: on/off force the choice, auto draws only
// when stderr is a terminal. --quiet always wins.
func progressUIEnabled(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	var enabled bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		enabled = isTerminal(os.Stderr)
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return enabled && !isQuiet(cmd), nil
}
