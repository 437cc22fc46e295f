package output

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON. Quiet mode emits only the summary.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.encode(w, report.Summary)
	}
	return f.encode(w, report)
}

// FormatParse renders parse results as a JSON array.
func (f *JSONFormatter) FormatParse(_ context.Context, results []ParseResult, w io.Writer) error {
	if results == nil {
		results = []ParseResult{}
	}
	return f.encode(w, results)
}

// FormatTokens renders the token list as JSON.
func (f *JSONFormatter) FormatTokens(_ context.Context, tokens *TokenList, w io.Writer) error {
	return f.encode(w, tokens)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
