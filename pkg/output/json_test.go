package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/gotime/pkg/layout"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed struct {
		Summary Summary `json:"summary"`
		Sources []struct {
			Path   string `json:"path"`
			Lines  int    `json:"lines"`
			Failed int    `json:"failed"`
		} `json:"sources"`
		Failures []Failure `json:"failures"`
		Entries  []struct {
			Record map[string]any `json:"record"`
		} `json:"entries"`
		Metadata Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.Files != 2 || parsed.Summary.Failed != 1 {
		t.Errorf("Summary = %+v", parsed.Summary)
	}
	if len(parsed.Sources) != 2 || parsed.Sources[0].Lines != 10 || parsed.Sources[0].Failed != 1 {
		t.Errorf("Sources = %+v", parsed.Sources)
	}
	if len(parsed.Failures) != 1 || parsed.Failures[0].Error != "hour out of range" {
		t.Errorf("Failures = %+v", parsed.Failures)
	}
	if len(parsed.Entries) != 1 || parsed.Entries[0].Record["Year"] != float64(2024) {
		t.Errorf("Entries = %+v", parsed.Entries)
	}
	if _, ok := parsed.Entries[0].Record["ZoneName"]; ok {
		t.Error("record JSON includes absent ZoneName")
	}
	if parsed.Metadata.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v", parsed.Metadata.Duration)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed["parsed"] != float64(12) {
		t.Errorf("parsed = %v, want 12", parsed["parsed"])
	}
	if _, ok := parsed["sources"]; ok {
		t.Error("quiet output includes sources")
	}
}

func TestJSONFormatter_Format_Empty(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), &Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := parsed["failures"]; ok {
		t.Error("empty report includes failures")
	}
}

func TestJSONFormatter_FormatParse(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.FormatParse(context.Background(), parseResults(t), &buf); err != nil {
		t.Fatalf("FormatParse() error = %v", err)
	}

	var parsed []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d results, want 2", len(parsed))
	}
	rec, _ := parsed[0]["record"].(map[string]any)
	if rec["Hour"] != float64(21) || rec["Minutes"] != float64(30) || len(rec) != 2 {
		t.Errorf("record = %v", rec)
	}
	if parsed[0]["time"] != "0000-01-01T21:30:00Z" {
		t.Errorf("time = %v", parsed[0]["time"])
	}
	if msg, _ := parsed[1]["error"].(string); !strings.Contains(msg, "unknown name") {
		t.Errorf("error = %v", parsed[1]["error"])
	}

	buf.Reset()
	if err := f.FormatParse(context.Background(), nil, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("FormatParse(nil) = %q, want []", buf.String())
	}
}

func TestJSONFormatter_FormatTokens(t *testing.T) {
	text := "2006-01-02T15:04:05.999Z07:00"
	tl := NewTokenList(text, layout.MustTokenize(text))

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).FormatTokens(context.Background(), tl, &buf); err != nil {
		t.Fatalf("FormatTokens() error = %v", err)
	}

	var parsed TokenList
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Layout != text || len(parsed.Tokens) != len(tl.Tokens) {
		t.Errorf("parsed = %+v", parsed)
	}
	last := parsed.Tokens[len(parsed.Tokens)-1]
	if last.Type != "field" || last.Field != "zone-offset(iso,Z07:00)" {
		t.Errorf("last token = %+v", last)
	}
}
