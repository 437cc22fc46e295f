package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// verbose reports whether the global --verbose flag is set.
func verbose(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("verbose")
	return err == nil && v
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadLocation loads an IANA zone name; empty means fallback.
func loadLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", name, err)
	}
	return loc, nil
}
