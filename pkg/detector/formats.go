package detector

import (
	"regexp"

	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// Layouts that are not reference layouts and are handled by the detector
// itself.
const (
	UnixSeconds = "UNIX_SECONDS"
	UnixMillis  = "UNIX_MILLIS"
)

// TimestampFormat is a known timestamp format: a regular expression that
// captures the timestamp text and the reference layout that parses it.
type TimestampFormat struct {
	Name       string
	Pattern    *regexp.Regexp // compiled from PatternStr
	PatternStr string
	Layout     string
	Examples   []string
	Ambiguous  bool // MM/DD vs DD/MM

	compiled *timeparse.Layout // nil for the Unix formats
}

// IsUnix reports whether the format is an epoch timestamp rather than a
// reference layout.
func (f *TimestampFormat) IsUnix() bool {
	return f.Layout == UnixSeconds || f.Layout == UnixMillis
}

// DefaultFormats returns the built-in timestamp formats, roughly ordered
// from most to least specific.
func DefaultFormats() []*TimestampFormat {
	formats := []*TimestampFormat{
		{
			Name:       "ISO 8601 with timezone",
			PatternStr: `^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2}))`,
			Layout:     "2006-01-02T15:04:05.999999999Z07:00",
			Examples:   []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00.123-05:00"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?)(?:\s|$)`,
			Layout:     "2006-01-02T15:04:05.999999999",
			Examples:   []string{"2024-01-15T10:30:00", "2024-01-15T10:30:00.123"},
		},
		{
			Name:       "Go time.Time default",
			PatternStr: `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)? [+-]\d{4} [A-Za-z]{2,5})`,
			Layout:     "2006-01-02 15:04:05.999999999 -0700 MST",
			Examples:   []string{"2024-01-15 10:30:00.5 -0800 PST"},
		},
		{
			Name:       "Bracketed datetime",
			PatternStr: `^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:[.,]\d+)?)\]`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"[2024-01-15 10:30:00]", "[2024-01-15 10:30:00.250]"},
		},
		{
			Name:       "Syslog with year",
			PatternStr: `^(\w{3}\s+\d{1,2}\s+\d{4}\s+\d{2}:\d{2}:\d{2})`,
			Layout:     "Jan _2 2006 15:04:05",
			Examples:   []string{"Jun 14 2024 15:16:01"},
		},
		{
			Name:       "Syslog (BSD)",
			PatternStr: `^(\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})`,
			Layout:     "Jan _2 15:04:05",
			Examples:   []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
		},
		{
			Name:       "Apache/NGINX CLF",
			PatternStr: `\[(\d{2}/\w{3}/\d{4}:\d{2}:\d{2}:\d{2}\s+[+-]\d{4})\]`,
			Layout:     "02/Jan/2006:15:04:05 -0700",
			Examples:   []string{"[15/Jun/2024:10:30:00 +0000]"},
		},
		{
			Name:       "Apache error log",
			PatternStr: `^\[(\w{3} \w{3}\s+\d{1,2} \d{2}:\d{2}:\d{2}(?:\.\d+)? \d{4})\]`,
			Layout:     "Mon Jan _2 15:04:05 2006",
			Examples:   []string{"[Sun Dec 04 04:47:44 2005]", "[Wed Oct 11 14:32:52.123456 2023]"},
		},
		{
			Name:       "Spark/Hadoop short date",
			PatternStr: `^(\d{2}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`,
			Layout:     "06/01/02 15:04:05",
			Examples:   []string{"17/06/09 20:10:40"},
		},
		{
			Name:       "HDFS compact",
			PatternStr: `^(\d{6} \d{6})`,
			Layout:     "060102 150405",
			Examples:   []string{"081109 203615"},
		},
		{
			Name:       "Python logging",
			PatternStr: `^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2},\d{3})`,
			Layout:     "2006-01-02 15:04:05,000",
			Examples:   []string{"2024-01-15 10:30:00,123"},
		},
		{
			Name:       "Log4j/Java logging",
			PatternStr: `^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3})`,
			Layout:     "2006-01-02 15:04:05.000",
			Examples:   []string{"2024-01-15 10:30:00.123"},
		},
		{
			Name:       "Datetime (space-separated)",
			PatternStr: `^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00"},
		},
		{
			Name:       "Kubernetes JSON timestamp",
			PatternStr: `"time":"(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z)"`,
			Layout:     "2006-01-02T15:04:05.999999999Z07:00",
			Examples:   []string{`"time":"2024-01-15T10:30:00.123456789Z"`},
		},
		{
			Name:       "Kitchen clock",
			PatternStr: `^(\d{1,2}:\d{2}[AaPp][Mm])\b`,
			Layout:     "3:04PM",
			Examples:   []string{"3:04PM", "11:30am"},
		},
		{
			Name:       "Unix timestamp (seconds)",
			PatternStr: `^(\d{10})(?:\s|$|\])`,
			Layout:     UnixSeconds,
			Examples:   []string{"1705315800"},
		},
		{
			Name:       "Unix timestamp (milliseconds)",
			PatternStr: `^(\d{13})(?:\s|$|\])`,
			Layout:     UnixMillis,
			Examples:   []string{"1705315800000"},
		},
		{
			Name:       "US date format (MM/DD/YYYY)",
			PatternStr: `^(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2})`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"01/15/2024 10:30:00"},
			Ambiguous:  true,
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
		if !f.IsUnix() {
			f.compiled = timeparse.MustCompile(f.Layout)
		}
	}

	return formats
}
