package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/gotime/pkg/config"
	"github.com/ccollicutt/gotime/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	Location    string
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect timestamp format in a log file",
		Long: `Analyze a log file to automatically detect its timestamp format.

Samples lines from the file and parses them against common timestamp
layouts. Reports the detected format with confidence score and provides a
ready-to-use YAML configuration snippet.

Optionally generates a starter config file with --write-config.

Supports:
  - ISO 8601 variants (with/without timezone, fractional seconds)
  - Syslog format (BSD and with year)
  - Apache/NGINX common log format and Apache error log
  - Unix timestamps (seconds and milliseconds)
  - Python/Java logging formats
  - Bracketed datetime formats

Example:
  gotime detect /var/log/myapp.log
  gotime detect --sample 500 /var/log/large.log
  gotime detect --write-config myapp.yaml /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", config.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA location for timestamps without a zone (default UTC)")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	loc, err := loadLocation(opts.Location, time.UTC)
	if err != nil {
		return err
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize), detector.WithLocation(loc))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, result, logFile, opts); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, logFile, opts)
	case "text", "":
		return outputDetectText(out, result, logFile, opts)
	default:
		return fmt.Errorf("unknown output format %q (must be text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Timestamp Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with timestamps: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No timestamp format detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: The file may use an uncommon format.")
		fmt.Fprintln(w, "Try 'gotime parse -l <layout>' on a few timestamps to find one that fits.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Format: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05.999999999 MST"))
	if best.Record != nil {
		fmt.Fprintf(w, "Fields: %s\n", best.Record)
	}
	fmt.Fprintln(w)

	if best.Format.Ambiguous {
		fmt.Fprintln(w, "WARNING: This format has date ordering ambiguity (MM/DD vs DD/MM).")
		fmt.Fprintln(w, "Please verify the layout matches your log format.")
		fmt.Fprintln(w)
	}
	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	if best.Format.IsUnix() {
		fmt.Fprintln(w, "Epoch timestamps have no reference layout and cannot be used with 'gotime scan'.")
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "timestamp_format:")
		fmt.Fprintf(w, "  pattern: '%s'\n", best.Format.PatternStr)
		fmt.Fprintf(w, "  layout: \"%s\"\n", best.Format.Layout)
		fmt.Fprintln(w)
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative formats detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Format.PatternStr)
			fmt.Fprintf(w, "   layout: \"%s\"\n", m.Format.Layout)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string         `json:"name"`
	Pattern    string         `json:"pattern"`
	Layout     string         `json:"layout"`
	Confidence float64        `json:"confidence"`
	MatchCount int            `json:"match_count"`
	SampleLine string         `json:"sample_line"`
	ParsedTime *time.Time     `json:"parsed_time,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
	Ambiguous  bool           `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:          logFile,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		jm := JSONMatch{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Ambiguous:  m.Format.Ambiguous,
		}
		if !m.ParsedTime.IsZero() {
			t := m.ParsedTime
			jm.ParsedTime = &t
		}
		if m.Record != nil {
			jm.Fields = m.Record.Map()
		}
		out.Matches = append(out.Matches, jm)
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file with the detected format.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	configPath := opts.WriteConfig
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	best := result.BestMatch()
	if best.Format.IsUnix() {
		return fmt.Errorf("cannot generate config: %s has no reference layout", best.Format.Name)
	}

	content, err := generateStarterConfig(logFile, best, opts)
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a starter config for the detected format.
func generateStarterConfig(logFile string, match *detector.FormatMatch, opts *DetectOptions) (string, error) {
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	cfg := config.Config{
		LogSources: []string{absLogFile},
		TimestampFormat: config.TimestampConfig{
			Pattern: match.Format.PatternStr,
			Layout:  match.Format.Layout,
		},
		Layouts: map[string]string{"detected": match.Format.Layout},
		Detect:  config.DetectConfig{SampleSize: config.DefaultSampleSize},
	}
	if opts != nil && opts.Location != "" {
		cfg.TimestampFormat.Location = opts.Location
	}
	if opts != nil && opts.SampleSize > 0 {
		cfg.Detect.SampleSize = opts.SampleSize
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `# gotime configuration
# Generated by: gotime detect
# Detected format: %s (%.0f%% confidence)
#
# log_sources also takes globs (/var/log/myapp/*.log).
# timestamp_format.location sets the zone for timestamps that carry none
# (default UTC). Named layouts are used by 'gotime parse -c <config> -l <name>'.

`, match.Format.Name, match.Confidence*100)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	buf.WriteString(`
# webhooks:
#   - name: alerts
#     url: https://example.com/hook
#     token: ${HOOK_TOKEN}
#     trigger: on_failures
`)
	return buf.String(), nil
}
