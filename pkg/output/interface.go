package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders gotime results in a specific format.
type Formatter interface {
	// Format renders a scan report.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// FormatParse renders the results of parsing individual inputs.
	FormatParse(ctx context.Context, results []ParseResult, w io.Writer) error

	// FormatTokens renders a tokenized layout.
	FormatTokens(ctx context.Context, tokens *TokenList, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose includes per-line entries and timing.
	Verbose bool

	// Quiet reduces output to a summary.
	Quiet bool
}

// Formats lists the supported format names.
var Formats = []string{"text", "json"}

// New returns the formatter with the given name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	}
	return nil, fmt.Errorf("unknown output format %q (must be text or json)", name)
}
