// Package layout compiles reference-moment layouts such as
// "Mon Jan _2 15:04:05 2006" into an ordered list of tokens.
//
// A layout is an example of the time Mon Jan 2 15:04:05 MST 2006 written
// the way inputs are expected to look. Every recognised piece of the
// reference moment becomes a Field; everything else is kept verbatim as a
// Literal.
package layout

import (
	"fmt"
	"strings"
)

// Kind is the semantic category of a field token.
type Kind int

const (
	KindYear Kind = iota + 1
	KindMonth
	KindDay
	KindWeekday
	KindHour
	KindMinute
	KindSecond
	KindFraction
	KindMeridiem
	KindZoneOffset
	KindZoneAbbrev
)

var kindNames = map[Kind]string{
	KindYear:       "year",
	KindMonth:      "month",
	KindDay:        "day",
	KindWeekday:    "weekday",
	KindHour:       "hour",
	KindMinute:     "minute",
	KindSecond:     "second",
	KindFraction:   "fraction",
	KindMeridiem:   "meridiem",
	KindZoneOffset: "zone-offset",
	KindZoneAbbrev: "zone-abbrev",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Form distinguishes numeric and named spellings of months and weekdays.
type Form int

const (
	FormNumeric Form = iota
	FormShortName
	FormLongName
)

// FractionStyle selects between the two fractional-second grammars.
type FractionStyle int

const (
	// FractionFixed requires exactly Digits digits (".000").
	FractionFixed FractionStyle = iota + 1
	// FractionVariable accepts any number of digits, including none (".999").
	FractionVariable
)

// ZoneStyle is the spelling of a numeric zone offset.
type ZoneStyle int

const (
	ZoneHours        ZoneStyle = iota + 1 // -07
	ZoneHHMM                              // -0700
	ZoneColon                             // -07:00
	ZoneHHMMSS                            // -070000
	ZoneColonSeconds                      // -07:00:00
)

// Token is either a Literal or a Field. No other implementations exist.
type Token interface {
	fmt.Stringer
	token()
}

// Literal is a span of layout text that must appear in the input.
type Literal struct {
	Text string

	// Fold marks an upper-case abbreviation such as "GMT" or "UTC" that
	// matches input case-insensitively.
	Fold bool
}

func (Literal) token() {}

// String returns the literal text.
func (l Literal) String() string { return l.Text }

// Field is a recognised piece of the reference moment.
type Field struct {
	Kind Kind

	// Ref is the layout text the field was compiled from, e.g. "Jan" or "_2".
	Ref string

	Form Form

	// MinDigits and MaxDigits bound numeric fields.
	MinDigits int
	MaxDigits int

	// SpacePad allows one leading space in place of a digit ("_2").
	SpacePad bool

	// Clock12 marks 12-hour clock hours ("03", "3").
	Clock12 bool

	// Fraction fields only.
	Fraction FractionStyle
	Sep      byte
	Digits   int

	// Zone offset fields only. ISO marks the "Z07:00" spellings.
	Zone ZoneStyle
	ISO  bool
}

func (Field) token() {}

// String returns the reference text of the field.
func (f Field) String() string { return f.Ref }

// Numeric reports whether the field is parsed as a run of digits.
func (f Field) Numeric() bool {
	switch f.Kind {
	case KindYear, KindDay, KindHour, KindMinute, KindSecond:
		return true
	case KindMonth:
		return f.Form == FormNumeric
	}
	return false
}

// Describe returns a short human-readable description of the field,
// e.g. "month(short)" or "fraction(fixed,3)".
func (f Field) Describe() string {
	switch f.Kind {
	case KindMonth, KindWeekday:
		switch f.Form {
		case FormShortName:
			return f.Kind.String() + "(short)"
		case FormLongName:
			return f.Kind.String() + "(long)"
		}
	case KindHour:
		if f.Clock12 {
			return fmt.Sprintf("hour(12h,%d-%d)", f.MinDigits, f.MaxDigits)
		}
		return fmt.Sprintf("hour(24h,%d-%d)", f.MinDigits, f.MaxDigits)
	case KindFraction:
		if f.Fraction == FractionFixed {
			return fmt.Sprintf("fraction(fixed,%d)", f.Digits)
		}
		return fmt.Sprintf("fraction(variable,%d)", f.Digits)
	case KindZoneOffset:
		if f.ISO {
			return "zone-offset(iso," + f.Ref + ")"
		}
		return "zone-offset(" + f.Ref + ")"
	case KindMeridiem, KindZoneAbbrev:
		return f.Kind.String()
	}
	if f.SpacePad {
		return fmt.Sprintf("%s(%d-%d,space)", f.Kind, f.MinDigits, f.MaxDigits)
	}
	return fmt.Sprintf("%s(%d-%d)", f.Kind, f.MinDigits, f.MaxDigits)
}

// Skeleton renders tokens back into a stable textual form: literals
// verbatim, fields as <ref>. Tokenizing the same layout twice always
// yields the same skeleton.
func Skeleton(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch t := tok.(type) {
		case Literal:
			sb.WriteString(t.Text)
		case Field:
			sb.WriteByte('<')
			sb.WriteString(t.Ref)
			sb.WriteByte('>')
		}
	}
	return sb.String()
}

// Error reports a malformed layout.
type Error struct {
	Layout string
	Pos    int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout %q: %s at offset %d", e.Layout, e.Msg, e.Pos)
}
