package parser

import "context"

// LogSource yields timestamped log lines. Implementations are used
// sequentially, never concurrently.
type LogSource interface {
	// Next returns the next line that carried a parseable timestamp, or
	// io.EOF once the source is exhausted.
	Next(ctx context.Context) (*ParsedLine, error)

	Close() error
}

// StatsSource is a LogSource that counts what it has read.
type StatsSource interface {
	LogSource
	Stats() Stats
}
