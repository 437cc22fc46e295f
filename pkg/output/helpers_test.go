package output

import (
	"errors"
	"testing"
	"time"

	"github.com/ccollicutt/gotime/pkg/parser"
	"github.com/ccollicutt/gotime/pkg/timeparse"
)

func createTestReport(t *testing.T) *Report {
	t.Helper()

	rec, err := timeparse.ParseLayout("2006-01-02 15:04:05", "2024-01-15 10:00:00")
	if err != nil {
		t.Fatal(err)
	}
	first := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	report := &Report{
		Metadata: Metadata{
			ConfigFile: "gotime.yaml",
			Layout:     "2006-01-02 15:04:05",
			Location:   "UTC",
			ScannedAt:  first.Add(time.Hour),
			Duration:   1500 * time.Millisecond,
		},
		Entries: []Entry{{
			Time:   first,
			Source: "/var/log/app.log",
			Line:   1,
			Record: rec,
			Raw:    "[2024-01-15 10:00:00] started",
		}},
	}
	report.AddSource("/var/log/app.log", parser.Stats{Lines: 10, Parsed: 7, Unmatched: 2, Failed: 1}, []parser.Failure{{
		LogLine: parser.LogLine{Content: "[2024-01-15 25:00:00] boom", Source: "/var/log/app.log", LineNum: 4},
		Text:    "2024-01-15 25:00:00",
		Err:     errors.New("hour out of range"),
	}})
	report.AddSource("/var/log/db.log", parser.Stats{Lines: 5, Parsed: 5}, nil)
	report.Observe(first)
	report.Observe(first.Add(90 * time.Minute))
	report.Observe(first.Add(30 * time.Minute))
	return report
}
