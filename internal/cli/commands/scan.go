package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/gotime/pkg/config"
	"github.com/ccollicutt/gotime/pkg/output"
	"github.com/ccollicutt/gotime/pkg/parser"
	"github.com/ccollicutt/gotime/pkg/webhook"
)

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	Output    string
	TimeRange string
	Timeline  bool
	Quiet     bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <config-file>",
		Short: "Parse the timestamps of every line in the configured logs",
		Long: `Scan the log files named in the configuration file, extract each
line's timestamp with the configured pattern and parse it with the
configured layout.

Reports per-file counts of lines, parsed, unmatched (pattern did not
match) and failed (matched text did not parse) lines, the time range
covered and the first failures. With --timeline the parsed lines are
listed in chronological order across all files.

Exit codes:
  0 - Every matched timestamp parsed
  1 - At least one matched timestamp failed to parse
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.TimeRange, "time-range", "", "Only list timeline entries within this window before now (e.g., 2h, 24h)")
	cmd.Flags().BoolVar(&opts.Timeline, "timeline", false, "List parsed lines in chronological order")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnFailures), "When to fire webhook (on_failures|always|never)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	start := time.Now()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var since time.Time
	if opts.TimeRange != "" {
		d, err := time.ParseDuration(opts.TimeRange)
		if err != nil {
			return fmt.Errorf("invalid time-range %q: %w", opts.TimeRange, err)
		}
		since = start.Add(-d)
	}

	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no log files matched patterns: %v", cfg.LogSources)
	}

	extractor, err := parser.NewTimestampExtractor(
		cfg.TimestampFormat.CompiledPattern(),
		cfg.TimestampFormat.Layout,
		cfg.TimestampFormat.LoadedLocation(),
	)
	if err != nil {
		return fmt.Errorf("creating extractor: %w", err)
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{
		Verbose: opts.Timeline || verbose(cmd),
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	report, err := scanFiles(ctx, files, extractor, opts.Timeline, since)
	if err != nil {
		return err
	}
	report.Metadata = output.Metadata{
		ConfigFile: configPath,
		Layout:     cfg.TimestampFormat.Layout,
		Location:   cfg.TimestampFormat.LoadedLocation().String(),
		ScannedAt:  start,
		Duration:   time.Since(start),
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged and do not change the exit code.
	sendWebhooks(ctx, cmd.ErrOrStderr(), cfg, opts, report)

	if report.HasFailures() {
		ExitCode = 1
	}
	return nil
}

// scanFiles reads files in chronological order and builds a report. With
// timeline set, each parsed line becomes an entry unless it is before a
// non-zero since.
func scanFiles(ctx context.Context, files []string, extractor *parser.TimestampExtractor, timeline bool, since time.Time) (*output.Report, error) {
	fileSources := make([]*parser.FileSource, len(files))
	sources := make([]parser.LogSource, len(files))
	for i, file := range files {
		fileSources[i] = parser.NewFileSource([]string{file}, extractor)
		sources[i] = fileSources[i]
	}

	merged := parser.NewMergedSource(sources...)
	defer merged.Close()

	report := &output.Report{}
	for {
		line, err := merged.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scanning: %w", err)
		}

		report.Observe(line.Timestamp)
		if timeline && (since.IsZero() || !line.Timestamp.Before(since)) {
			report.Entries = append(report.Entries, output.Entry{
				Time:   line.Timestamp,
				Source: line.Source,
				Line:   line.LineNum,
				Record: line.Record,
				Raw:    line.Raw,
			})
		}
	}

	for i, fs := range fileSources {
		report.AddSource(files[i], fs.Stats(), fs.Failures())
	}

	logrus.WithFields(logrus.Fields{
		"files":  report.Summary.Files,
		"lines":  report.Summary.Lines,
		"failed": report.Summary.Failed,
	}).Debug("scan complete")

	return report, nil
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, w io.Writer, cfg *config.Config, opts *ScanOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasFailures()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(w, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			logrus.WithField("webhook", name).WithError(resp.Error).Warn("webhook failed")
		}
	}
}

// collectWebhooks merges config file webhooks with the --webhook-url one.
func collectWebhooks(cfg *config.Config, opts *ScanOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnFailures
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook fires for the given trigger.
func shouldFireWebhook(trigger config.WebhookTrigger, hasFailures bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasFailures
	}
}
