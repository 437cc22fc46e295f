// Package parser reads log files and extracts the timestamp of each line
// using a reference layout.
package parser

import (
	"time"

	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// ParsedLine is a log line whose timestamp was extracted and resolved.
type ParsedLine struct {
	// Raw is the original line content.
	Raw string

	// Timestamp is the resolved time.
	Timestamp time.Time

	// Record holds the fields the layout produced, before resolution.
	Record *timeparse.Record

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// LogLine locates a raw line in a source file.
type LogLine struct {
	Content string
	Source  string
	LineNum int
}

// Failure is a line whose timestamp text matched the pattern but could not
// be parsed or resolved.
type Failure struct {
	LogLine

	// Text is the captured timestamp text.
	Text string
	Err  error
}

// Stats counts lines read by a source.
type Stats struct {
	Lines     int `json:"lines"`
	Parsed    int `json:"parsed"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Lines:     s.Lines + o.Lines,
		Parsed:    s.Parsed + o.Parsed,
		Unmatched: s.Unmatched + o.Unmatched,
		Failed:    s.Failed + o.Failed,
	}
}
