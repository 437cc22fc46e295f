// Package detector guesses the timestamp format of a log file by trying
// a table of known formats against a sample of its lines.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/gotime/pkg/resolve"
	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches       []FormatMatch // sorted by confidence, descending
	SampledLines  int
	ParsedLines   int    // lines parsed by the best match
	AmbiguityNote string // set when the best match has ambiguous date order
}

// FormatMatch is a format that parsed at least one sampled line.
type FormatMatch struct {
	Format     *TimestampFormat
	Confidence float64 // fraction of sampled lines parsed, 0.0 to 1.0
	MatchCount int
	SampleLine string
	ParsedTime time.Time
	Record     *timeparse.Record // nil for the Unix formats
}

// Detector analyzes log files to identify timestamp formats.
type Detector struct {
	formats    []*TimestampFormat
	sampleSize int
	loc        *time.Location
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithLocation sets the location for timestamps without a zone.
func WithLocation(loc *time.Location) Option {
	return func(d *Detector) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithFormats replaces the built-in format table.
func WithFormats(formats []*TimestampFormat) Option {
	return func(d *Detector) {
		d.formats = formats
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a log file and returns detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	type formatStats struct {
		format     *TimestampFormat
		matchCount int
		sampleLine string
		parsedTime time.Time
		record     *timeparse.Record
	}

	stats := make(map[string]*formatStats)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, format := range d.formats {
			matches := format.Pattern.FindStringSubmatch(line)
			if len(matches) < 2 {
				continue
			}

			parsedTime, rec, ok := d.parseTimestamp(matches[1], format)
			if !ok {
				continue
			}

			s := stats[format.Name]
			if s == nil {
				s = &formatStats{
					format:     format,
					sampleLine: line,
					parsedTime: parsedTime,
					record:     rec,
				}
				stats[format.Name] = s
			}
			s.matchCount++
		}
	}

	for _, s := range stats {
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
			Record:     s.record,
		})
	}

	// Confidence first, then the longer (more specific) pattern.
	sort.Slice(result.Matches, func(i, j int) bool {
		a, b := result.Matches[i], result.Matches[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if len(a.Format.PatternStr) != len(b.Format.PatternStr) {
			return len(a.Format.PatternStr) > len(b.Format.PatternStr)
		}
		return a.Format.Name < b.Format.Name
	})

	if len(result.Matches) > 0 {
		result.ParsedLines = result.Matches[0].MatchCount
	}

	if len(result.Matches) > 0 && result.Matches[0].Format.Ambiguous {
		result.AmbiguityNote = "This format has date ordering ambiguity (MM/DD vs DD/MM). " +
			"Verify the layout matches your log format. " +
			"For European format (DD/MM/YYYY), use layout: \"02/01/2006 15:04:05\""
	}

	return result
}

// unixMax is 2100-01-01; larger epoch values are not plausible log times.
const unixMax = 4102444800

// parseTimestamp parses text with the format's layout, handling the Unix
// epoch formats separately.
func (d *Detector) parseTimestamp(text string, format *TimestampFormat) (time.Time, *timeparse.Record, bool) {
	switch format.Layout {
	case UnixSeconds:
		secs, err := strconv.ParseInt(text, 10, 64)
		if err != nil || secs < 0 || secs > unixMax {
			return time.Time{}, nil, false
		}
		return time.Unix(secs, 0).In(d.loc), nil, true

	case UnixMillis:
		millis, err := strconv.ParseInt(text, 10, 64)
		if err != nil || millis < 0 || millis/1000 > unixMax {
			return time.Time{}, nil, false
		}
		return time.UnixMilli(millis).In(d.loc), nil, true
	}

	rec, err := format.compiled.Parse(text)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"format": format.Name,
			"text":   text,
		}).Debugf("candidate rejected: %v", err)
		return time.Time{}, nil, false
	}
	t, err := resolve.Time(rec, resolve.WithLocation(d.loc))
	if err != nil {
		return time.Time{}, nil, false
	}
	return t, rec, true
}

// sampleFile reads up to sampleSize non-empty, non-comment lines from the
// head of a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"file": path, "lines": len(lines)}).Debug("sampled log file")
	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
