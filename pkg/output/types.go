// Package output formats scan reports, parse results and token lists.
package output

import (
	"time"

	"github.com/ccollicutt/gotime/pkg/layout"
	"github.com/ccollicutt/gotime/pkg/parser"
	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// Report is the result of scanning a set of log sources.
type Report struct {
	Summary  Summary         `json:"summary"`
	Sources  []SourceSummary `json:"sources"`
	Failures []Failure       `json:"failures,omitempty"`

	// Entries is the chronological timeline; only collected in verbose mode.
	Entries []Entry `json:"entries,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Summary aggregates line counts over all sources.
type Summary struct {
	Files     int `json:"files"`
	Lines     int `json:"lines"`
	Parsed    int `json:"parsed"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`

	// First and Last bound the parsed timestamps; nil when nothing parsed.
	First *time.Time `json:"first,omitempty"`
	Last  *time.Time `json:"last,omitempty"`
}

// SourceSummary holds the counts for one file.
type SourceSummary struct {
	Path string `json:"path"`
	parser.Stats
}

// Failure is a line whose timestamp did not parse.
type Failure struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Entry is one parsed line of the timeline.
type Entry struct {
	Time   time.Time         `json:"time"`
	Source string            `json:"source"`
	Line   int               `json:"line"`
	Record *timeparse.Record `json:"record,omitempty"`
	Raw    string            `json:"raw"`
}

// Metadata describes the scan run.
type Metadata struct {
	ConfigFile string        `json:"config_file,omitempty"`
	Layout     string        `json:"layout"`
	Location   string        `json:"location"`
	ScannedAt  time.Time     `json:"scanned_at"`
	Duration   time.Duration `json:"duration"`
}

// HasFailures reports whether any matched timestamp failed to parse.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}

// AddSource appends a source summary and its failures and updates the
// totals.
func (r *Report) AddSource(path string, stats parser.Stats, failures []parser.Failure) {
	r.Sources = append(r.Sources, SourceSummary{Path: path, Stats: stats})
	r.Summary.Files++
	r.Summary.Lines += stats.Lines
	r.Summary.Parsed += stats.Parsed
	r.Summary.Unmatched += stats.Unmatched
	r.Summary.Failed += stats.Failed

	for _, f := range failures {
		r.Failures = append(r.Failures, Failure{
			Source: f.Source,
			Line:   f.LineNum,
			Text:   f.Text,
			Error:  f.Err.Error(),
		})
	}
}

// Observe widens the First/Last range to include ts.
func (r *Report) Observe(ts time.Time) {
	if r.Summary.First == nil || ts.Before(*r.Summary.First) {
		t := ts
		r.Summary.First = &t
	}
	if r.Summary.Last == nil || ts.After(*r.Summary.Last) {
		t := ts
		r.Summary.Last = &t
	}
}

// ParseResult is the outcome of parsing one input against one layout.
type ParseResult struct {
	Input  string            `json:"input"`
	Layout string            `json:"layout"`
	Record *timeparse.Record `json:"record,omitempty"`

	// Time is set when the record was resolved to an instant.
	Time  *time.Time `json:"time,omitempty"`
	Error string     `json:"error,omitempty"`
}

// OK reports whether the input parsed.
func (p ParseResult) OK() bool {
	return p.Error == ""
}

// TokenList describes a tokenized layout.
type TokenList struct {
	Layout   string      `json:"layout"`
	Skeleton string      `json:"skeleton"`
	Tokens   []TokenInfo `json:"tokens"`
}

// TokenInfo describes one token.
type TokenInfo struct {
	Type string `json:"type"` // literal or field
	Text string `json:"text"`

	// Field is the field description, e.g. "hour(24h,1-2)".
	Field string `json:"field,omitempty"`
	Fold  bool   `json:"fold,omitempty"`
}

// NewTokenList builds a TokenList from tokens.
func NewTokenList(text string, tokens []layout.Token) *TokenList {
	tl := &TokenList{
		Layout:   text,
		Skeleton: layout.Skeleton(tokens),
		Tokens:   make([]TokenInfo, 0, len(tokens)),
	}
	for _, tok := range tokens {
		switch t := tok.(type) {
		case layout.Literal:
			tl.Tokens = append(tl.Tokens, TokenInfo{Type: "literal", Text: t.Text, Fold: t.Fold})
		case layout.Field:
			tl.Tokens = append(tl.Tokens, TokenInfo{Type: "field", Text: t.Ref, Field: t.Describe()})
		}
	}
	return tl
}
