// Package resolve turns a parsed Record into a time.Time.
//
// The parser only reports what the input said. Resolution fills in
// defaults for absent parts, rejects impossible dates and picks a
// location for the zone information that was present.
package resolve

import (
	"errors"
	"fmt"
	"time"

	"github.com/ccollicutt/gotime/pkg/timeparse"
)

// ErrInvalidDate is returned for a day that does not exist in its month,
// such as February 30.
var ErrInvalidDate = errors.New("invalid date")

// Option configures Time.
type Option func(*options)

type options struct {
	loc *time.Location
}

// WithLocation sets the location used when the record carries no zone,
// and the location whose abbreviations are recognised. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// Time resolves rec. Absent parts default to year 0, January, day 1 and
// midnight. The weekday is not checked against the date.
func Time(rec *timeparse.Record, opts ...Option) (time.Time, error) {
	o := options{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	year, month, day := 0, 1, 1
	if rec.Has(timeparse.Year) {
		year = rec.Year
	}
	if rec.Has(timeparse.Month) {
		month = rec.Month
	}
	if rec.Has(timeparse.Day) {
		day = rec.Day
	}

	// Checked against UTC so a DST gap in the location cannot shift the day.
	probe := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if probe.Day() != day || int(probe.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	wall := func(loc *time.Location) time.Time {
		return time.Date(year, time.Month(month), day, rec.Hour, rec.Minutes, rec.Seconds, rec.Nanos, loc)
	}
	return wall(location(rec, o.loc, wall)), nil
}

// location picks the zone for rec. wall builds the record's wall clock
// time in a candidate location.
func location(rec *timeparse.Record, def *time.Location, wall func(*time.Location) time.Time) *time.Location {
	hasOffset := rec.Has(timeparse.ZoneOffset)
	hasName := rec.Has(timeparse.ZoneName)

	switch {
	case hasOffset:
		if _, off := wall(def).Zone(); off == rec.ZoneOffset {
			if !hasName || matchesAbbrev(def, rec.ZoneName, wall) {
				return def
			}
		}
		if rec.ZoneOffset == 0 && (!hasName || isUTC(rec.ZoneName)) {
			return time.UTC
		}
		return time.FixedZone(rec.ZoneName, rec.ZoneOffset)

	case hasName:
		if isUTC(rec.ZoneName) {
			return time.UTC
		}
		if matchesAbbrev(def, rec.ZoneName, wall) {
			return def
		}
		return time.FixedZone(rec.ZoneName, 0)
	}
	return def
}

func matchesAbbrev(loc *time.Location, name string, wall func(*time.Location) time.Time) bool {
	abbrev, _ := wall(loc).Zone()
	return abbrev == name
}

func isUTC(name string) bool {
	switch name {
	case "UTC", "GMT", "Z":
		return true
	}
	return false
}
