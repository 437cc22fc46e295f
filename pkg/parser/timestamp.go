package parser

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ccollicutt/gotime/pkg/resolve"
	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// ErrNoTimestamp is returned when a line does not match the timestamp pattern.
var ErrNoTimestamp = errors.New("timestamp pattern did not match")

// Timestamp is the result of a successful extraction.
type Timestamp struct {
	Text   string
	Time   time.Time
	Record *timeparse.Record
}

// TimestampExtractor pulls the timestamp text out of a log line with a
// regular expression and parses it against a layout.
type TimestampExtractor struct {
	pattern *regexp.Regexp
	layout  *timeparse.Layout
	loc     *time.Location
}

// NewTimestampExtractor compiles layout. The first capture group of
// pattern is the timestamp text. A nil loc means UTC.
func NewTimestampExtractor(pattern *regexp.Regexp, layout string, loc *time.Location) (*TimestampExtractor, error) {
	if pattern.NumSubexp() < 1 {
		return nil, fmt.Errorf("timestamp pattern %q has no capture group", pattern)
	}
	l, err := timeparse.Compile(layout)
	if err != nil {
		return nil, fmt.Errorf("compiling layout: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TimestampExtractor{pattern: pattern, layout: l, loc: loc}, nil
}

// Layout returns the layout text.
func (e *TimestampExtractor) Layout() string {
	return e.layout.String()
}

// Extract parses the timestamp in line. It returns ErrNoTimestamp when
// the pattern does not match, and a wrapped parse or resolve error
// otherwise.
func (e *TimestampExtractor) Extract(line string) (*Timestamp, error) {
	matches := e.pattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return nil, ErrNoTimestamp
	}
	text := matches[1]

	rec, err := e.layout.Parse(text)
	if err != nil {
		return &Timestamp{Text: text}, fmt.Errorf("parsing timestamp %q: %w", text, err)
	}
	ts, err := resolve.Time(rec, resolve.WithLocation(e.loc))
	if err != nil {
		return &Timestamp{Text: text, Record: rec}, fmt.Errorf("resolving timestamp %q: %w", text, err)
	}
	return &Timestamp{Text: text, Time: ts, Record: rec}, nil
}
