package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// TextFormatter formats output as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "gotime: %d files, %d lines, %d parsed, %d unmatched, %d failed\n",
		s.Files, s.Lines, s.Parsed, s.Unmatched, s.Failed)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== gotime Scan Report ===")
	fmt.Fprintf(w, "Layout: %s\n", report.Metadata.Layout)
	if report.Metadata.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", report.Metadata.Location)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tLINES\tPARSED\tUNMATCHED\tFAILED")
	for _, src := range report.Sources {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", src.Path, src.Lines, src.Parsed, src.Unmatched, src.Failed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "Failures (%d shown):\n", len(report.Failures))
		for _, fl := range report.Failures {
			fmt.Fprintf(w, "  - %s:%d %q: %s\n", fl.Source, fl.Line, fl.Text, fl.Error)
		}
		fmt.Fprintln(w)
	}

	if f.opts.Verbose && len(report.Entries) > 0 {
		fmt.Fprintln(w, "Timeline:")
		for _, e := range report.Entries {
			fmt.Fprintf(w, "  %s  %s:%d  %s\n", e.Time.Format(time.RFC3339Nano), e.Source, e.Line, e.Raw)
		}
		fmt.Fprintln(w)
	}

	s := report.Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d files, %d lines, %d parsed, %d unmatched, %d failed\n",
		s.Files, s.Lines, s.Parsed, s.Unmatched, s.Failed)
	if s.First != nil && s.Last != nil {
		fmt.Fprintf(w, "Range: %s to %s (%s)\n",
			s.First.Format(time.RFC3339), s.Last.Format(time.RFC3339), s.Last.Sub(*s.First))
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

// FormatParse renders one block per input.
func (f *TextFormatter) FormatParse(_ context.Context, results []ParseResult, w io.Writer) error {
	for i, r := range results {
		if i > 0 && !f.opts.Quiet {
			fmt.Fprintln(w)
		}
		if f.opts.Quiet {
			status := "ok"
			if !r.OK() {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%s\t%s\n", status, r.Input)
			continue
		}

		fmt.Fprintf(w, "Input:  %q\n", r.Input)
		if f.opts.Verbose {
			fmt.Fprintf(w, "Layout: %q\n", r.Layout)
		}
		if !r.OK() {
			fmt.Fprintf(w, "Error:  %s\n", r.Error)
			continue
		}
		fmt.Fprintf(w, "Record: %s\n", r.Record)
		if r.Time != nil {
			fmt.Fprintf(w, "Time:   %s\n", r.Time.Format(time.RFC3339Nano))
		}
	}
	return nil
}

// FormatTokens renders one token per line.
func (f *TextFormatter) FormatTokens(_ context.Context, tokens *TokenList, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintln(w, tokens.Skeleton)
		return err
	}

	fmt.Fprintf(w, "Layout:   %q\n", tokens.Layout)
	fmt.Fprintf(w, "Skeleton: %s\n", tokens.Skeleton)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tTEXT\tFIELD")
	for i, tok := range tokens.Tokens {
		detail := tok.Field
		if tok.Fold {
			detail = "case-insensitive"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, tok.Type, quoteSpace(tok.Text), detail)
	}
	return tw.Flush()
}

// quoteSpace quotes text that would be invisible in a table.
func quoteSpace(s string) string {
	if s == "" || strings.TrimSpace(s) != s {
		return fmt.Sprintf("%q", s)
	}
	return s
}
