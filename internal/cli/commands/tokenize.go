package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/gotime/pkg/layout"
	"github.com/ccollicutt/gotime/pkg/output"
)

// TokenizeOptions holds command-line options for the tokenize command.
type TokenizeOptions struct {
	Output string
	Quiet  bool
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	opts := &TokenizeOptions{}

	cmd := &cobra.Command{
		Use:   "tokenize <layout>",
		Short: "Show how a layout is split into tokens",
		Long: `Split a layout into literal text and reference fields.

The layout may be written out ("Jan _2 15:04:05") or named
("RFC3339", "Kitchen", "StampMilli", ...).

Example:
  gotime tokenize "2006-01-02T15:04:05.999Z07:00"
  gotime tokenize -q RFC1123Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the layout skeleton")

	return cmd
}

func runTokenize(cmd *cobra.Command, args []string, opts *TokenizeOptions) error {
	text := layout.Lookup(args[0])

	tokens, err := layout.Tokenize(text)
	if err != nil {
		return fmt.Errorf("tokenizing layout: %w", err)
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}

	return formatter.FormatTokens(commandContext(cmd), output.NewTokenList(text, tokens), cmd.OutOrStdout())
}
