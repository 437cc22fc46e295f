package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/gotime/pkg/config"
	"github.com/ccollicutt/gotime/pkg/layout"
	"github.com/ccollicutt/gotime/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a gotime configuration file without scanning.

Checks:
  - YAML syntax
  - Required fields
  - Regex pattern validity and capture group
  - Layouts tokenize and name at least one field
  - Location and webhook settings
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tf := cfg.TimestampFormat
	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Log sources: %d pattern(s)\n", len(cfg.LogSources))
	fmt.Fprintf(w, "  Pattern:     %s\n", tf.Pattern)
	fmt.Fprintf(w, "  Layout:      %s\n", layout.Skeleton(layout.MustTokenize(tf.Layout)))
	fmt.Fprintf(w, "  Location:    %s\n", tf.LoadedLocation())
	fmt.Fprintf(w, "  Webhooks:    %d\n", len(cfg.Webhooks))

	if len(cfg.Layouts) > 0 {
		names := make([]string, 0, len(cfg.Layouts))
		for name := range cfg.Layouts {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "\nLayouts:\n")
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %q\n", name, cfg.Layouts[name])
		}
	}

	files, err := parser.ExpandGlobs(cfg.LogSources)
	switch {
	case err != nil:
		fmt.Fprintf(w, "\nWarning: Error expanding log source patterns: %v\n", err)
	case len(files) == 0:
		fmt.Fprintf(w, "\nWarning: No files match log source patterns\n")
	default:
		fmt.Fprintf(w, "\nLog files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}

	return nil
}
