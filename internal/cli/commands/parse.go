package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/gotime/pkg/config"
	"github.com/ccollicutt/gotime/pkg/layout"
	"github.com/ccollicutt/gotime/pkg/output"
	"github.com/ccollicutt/gotime/pkg/resolve"
	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Layout   string
	Config   string
	Resolve  bool
	Location string
	Output   string
	Quiet    bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse -l <layout> [input...]",
		Short: "Parse date/time text against a layout",
		Long: `Parse each input against a layout and print the fields found.

Inputs are taken from the arguments, or one per line from stdin when no
arguments are given. The layout may be written out, a standard name such
as RFC3339, or a name from the layouts section of --config.

With --resolve each record is also turned into an instant. Absent parts
default to year 0, January 1, midnight; a record without zone information
uses --location (default UTC).

Exit codes:
  0 - All inputs parsed
  1 - At least one input failed
  2 - Invalid layout, configuration or runtime error

Example:
  gotime parse -l "Jan _2 15:04:05" "Feb  4 21:00:57"
  gotime parse -l RFC3339 --resolve 2010-02-04T21:00:57-08:00
  tail app.log | cut -c2-24 | gotime parse -l "2006-01-02 15:04:05.000"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "Layout text or name (required)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file providing named layouts and location")
	cmd.Flags().BoolVarP(&opts.Resolve, "resolve", "r", false, "Resolve records to instants")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA location for inputs without a zone (default UTC)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One line per input")
	_ = cmd.MarkFlagRequired("layout")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := commandContext(cmd)

	text := layout.Lookup(opts.Layout)
	loc := time.UTC

	if opts.Config != "" {
		cfg, err := config.Load(ctx, opts.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		text = cfg.Layout(opts.Layout)
		loc = cfg.TimestampFormat.LoadedLocation()
	}

	loc, err := loadLocation(opts.Location, loc)
	if err != nil {
		return err
	}

	l, err := timeparse.Compile(text)
	if err != nil {
		return fmt.Errorf("compiling layout: %w", err)
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{
		Verbose: verbose(cmd),
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		if inputs, err = readInputs(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	results := make([]output.ParseResult, 0, len(inputs))
	for _, in := range inputs {
		res := parseInput(l, in, opts.Resolve, loc)
		if !res.OK() {
			ExitCode = 1
		}
		results = append(results, res)
	}

	return formatter.FormatParse(ctx, results, cmd.OutOrStdout())
}

func parseInput(l *timeparse.Layout, input string, resolveTime bool, loc *time.Location) output.ParseResult {
	res := output.ParseResult{Input: input, Layout: l.String()}

	rec, err := l.Parse(input)
	if err != nil {
		logrus.WithField("input", input).Debugf("parse failed: %v", err)
		res.Error = err.Error()
		return res
	}
	res.Record = rec

	if resolveTime {
		t, err := resolve.Time(rec, resolve.WithLocation(loc))
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Time = &t
	}
	return res
}

// readInputs returns the non-blank lines of r, with trailing CR/LF removed.
func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	return inputs, scanner.Err()
}
