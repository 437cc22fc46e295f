package timeparse

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Part identifies one component of a Record.
type Part uint16

const (
	Year Part = 1 << iota
	Month
	Day
	WeekDay
	Hour
	Minutes
	Seconds
	Nanos
	ZoneOffset
	ZoneName
)

// allParts lists parts in output order.
var allParts = []Part{Year, Month, Day, WeekDay, Hour, Minutes, Seconds, Nanos, ZoneOffset, ZoneName}

var partNames = map[Part]string{
	Year:       "Year",
	Month:      "Month",
	Day:        "Day",
	WeekDay:    "WeekDay",
	Hour:       "Hour",
	Minutes:    "Minutes",
	Seconds:    "Seconds",
	Nanos:      "Nanos",
	ZoneOffset: "ZoneOffsetSeconds",
	ZoneName:   "ZoneName",
}

func (p Part) String() string {
	if name, ok := partNames[p]; ok {
		return name
	}
	return fmt.Sprintf("part(%d)", uint16(p))
}

// Record is the result of parsing one input against one layout. Only the
// parts named by the layout are present; the parser never fills in
// defaults for the rest.
type Record struct {
	Year    int
	Month   int // 1-12
	Day     int // 1-31
	WeekDay string

	Hour    int // 0-23, after AM/PM adjustment
	Minutes int
	Seconds int
	Nanos   int

	// ZoneOffset is in seconds east of UTC.
	ZoneOffset int
	ZoneName   string

	present Part
}

// Has reports whether p was produced by the layout.
func (r *Record) Has(p Part) bool {
	return r.present&p != 0
}

// Parts returns the present parts in a stable order.
func (r *Record) Parts() []Part {
	var parts []Part
	for _, p := range allParts {
		if r.Has(p) {
			parts = append(parts, p)
		}
	}
	return parts
}

func (r *Record) mark(p Part) {
	r.present |= p
}

// Value returns the value of p, or nil when p is absent.
func (r *Record) Value(p Part) any {
	if !r.Has(p) {
		return nil
	}
	switch p {
	case Year:
		return r.Year
	case Month:
		return r.Month
	case Day:
		return r.Day
	case WeekDay:
		return r.WeekDay
	case Hour:
		return r.Hour
	case Minutes:
		return r.Minutes
	case Seconds:
		return r.Seconds
	case Nanos:
		return r.Nanos
	case ZoneOffset:
		return r.ZoneOffset
	case ZoneName:
		return r.ZoneName
	}
	return nil
}

// Map returns the present parts keyed by name.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(allParts))
	for _, p := range r.Parts() {
		m[p.String()] = r.Value(p)
	}
	return m
}

// MarshalJSON encodes only the present parts.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// String renders the record as space-separated Name=value pairs.
func (r *Record) String() string {
	var sb strings.Builder
	for i, p := range r.Parts() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", p, r.Value(p))
	}
	return sb.String()
}
