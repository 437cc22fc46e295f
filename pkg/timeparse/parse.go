// Package timeparse drives a compiled layout over an input string and
// extracts the fields it names into a Record.
//
// Parsing is a single left-to-right pass: each token consumes input at
// the cursor or fails. Calendar validation, defaults for absent fields and
// zone resolution are left to the caller (see package resolve).
package timeparse

import (
	"strings"

	"github.com/ccollicutt/gotime/pkg/layout"
)

var pow10 = [...]int{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// Parse matches input against tokens. On failure it returns a *ParseError
// and no record.
func Parse(input string, tokens []layout.Token) (*Record, error) {
	p := &parser{input: input, rec: &Record{}}

	for i, tok := range tokens {
		var err error
		switch t := tok.(type) {
		case layout.Literal:
			err = p.literal(t)
		case layout.Field:
			err = p.field(t, nextToken(tokens, i))
		}
		if err != nil {
			return nil, err
		}
	}

	if p.pos < len(p.input) {
		return nil, p.fail(TrailingInput, "")
	}
	p.applyMeridiem()
	return p.rec, nil
}

func nextToken(tokens []layout.Token, i int) layout.Token {
	if i+1 < len(tokens) {
		return tokens[i+1]
	}
	return nil
}

type parser struct {
	input string
	pos   int
	rec   *Record

	// meridiem is 'A', 'P' or 0 when the layout has no AM/PM field.
	meridiem byte
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *parser) fail(kind ErrorKind, elem string) *ParseError {
	return &ParseError{Kind: kind, Pos: p.pos, Elem: elem, Input: p.input}
}

// failAt reports kind, or UnexpectedEnd when the input is exhausted.
func (p *parser) failAt(kind ErrorKind, elem string) *ParseError {
	if p.atEnd() {
		return p.fail(UnexpectedEnd, elem)
	}
	return p.fail(kind, elem)
}

// literal matches layout text. A run of whitespace in the layout matches
// a run of one or more whitespace characters in the input.
func (p *parser) literal(l layout.Literal) error {
	lit := l.Text
	for len(lit) > 0 {
		if isSpace(lit[0]) {
			lit = strings.TrimLeft(lit, spaceChars)
			if p.atEnd() || !isSpace(p.input[p.pos]) {
				return p.failAt(LiteralMismatch, l.Text)
			}
			for !p.atEnd() && isSpace(p.input[p.pos]) {
				p.pos++
			}
			continue
		}
		if p.atEnd() {
			return p.fail(UnexpectedEnd, l.Text)
		}
		c := p.input[p.pos]
		if c != lit[0] && !(l.Fold && lower(c) == lower(lit[0])) {
			return p.fail(LiteralMismatch, l.Text)
		}
		lit = lit[1:]
		p.pos++
	}
	return nil
}

func (p *parser) field(f layout.Field, next layout.Token) error {
	switch f.Kind {
	case layout.KindYear:
		v, err := p.number(f)
		if err != nil {
			return err
		}
		if f.MaxDigits == 2 {
			if v >= 69 {
				v += 1900
			} else {
				v += 2000
			}
		}
		p.rec.Year = v
		p.rec.mark(Year)

	case layout.KindMonth:
		if f.Form != layout.FormNumeric {
			table := layout.ShortMonthNames
			if f.Form == layout.FormLongName {
				table = layout.LongMonthNames
			}
			idx, err := p.lookup(f, table)
			if err != nil {
				return err
			}
			p.rec.Month = idx + 1
		} else {
			v, err := p.ranged(f, 1, 12)
			if err != nil {
				return err
			}
			p.rec.Month = v
		}
		p.rec.mark(Month)

	case layout.KindDay:
		v, err := p.ranged(f, 1, 31)
		if err != nil {
			return err
		}
		p.rec.Day = v
		p.rec.mark(Day)

	case layout.KindWeekday:
		table := layout.ShortDayNames
		if f.Form == layout.FormLongName {
			table = layout.LongDayNames
		}
		idx, err := p.lookup(f, table)
		if err != nil {
			return err
		}
		p.rec.WeekDay = layout.ShortDayNames[idx]
		p.rec.mark(WeekDay)

	case layout.KindHour:
		hi := 23
		if f.Clock12 {
			hi = 12
		}
		v, err := p.ranged(f, 0, hi)
		if err != nil {
			return err
		}
		p.rec.Hour = v
		p.rec.mark(Hour)

	case layout.KindMinute:
		v, err := p.ranged(f, 0, 59)
		if err != nil {
			return err
		}
		p.rec.Minutes = v
		p.rec.mark(Minutes)

	case layout.KindSecond:
		v, err := p.ranged(f, 0, 59)
		if err != nil {
			return err
		}
		p.rec.Seconds = v
		p.rec.mark(Seconds)
		p.trailingFraction(next)

	case layout.KindFraction:
		return p.fraction(f)

	case layout.KindMeridiem:
		return p.meridiemField(f)

	case layout.KindZoneOffset:
		return p.zoneOffset(f)

	case layout.KindZoneAbbrev:
		return p.zoneAbbrev(f)

	default:
		return p.fail(LiteralMismatch, f.Ref)
	}
	return nil
}

// number consumes between f.MinDigits and f.MaxDigits digits. A
// space-padded field may skip one leading space first.
func (p *parser) number(f layout.Field) (int, error) {
	if f.SpacePad && !p.atEnd() && p.input[p.pos] == ' ' {
		p.pos++
	}
	n, i := 0, 0
	for i < f.MaxDigits && isDigit(p.input, p.pos+i) {
		n = n*10 + int(p.input[p.pos+i]-'0')
		i++
	}
	if i < f.MinDigits || i == 0 {
		return 0, p.failAt(BadNumber, f.Ref)
	}
	p.pos += i
	return n, nil
}

func (p *parser) ranged(f layout.Field, lo, hi int) (int, error) {
	start := p.pos
	v, err := p.number(f)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, &ParseError{Kind: OutOfRange, Pos: start, Elem: f.Ref, Input: p.input}
	}
	return v, nil
}

// lookup matches a name from table case-insensitively. A candidate that
// is directly followed by a lower-case letter is rejected and the next
// candidate is tried at the same position.
func (p *parser) lookup(f layout.Field, table []string) (int, error) {
	rest := p.rest()
	for i, name := range table {
		if len(rest) < len(name) || !foldEqual(rest[:len(name)], name) {
			continue
		}
		if startsWithLower(rest[len(name):]) {
			continue
		}
		p.pos += len(name)
		return i, nil
	}
	return 0, p.failAt(UnknownName, f.Ref)
}

// trailingFraction accepts fractional seconds that the layout does not
// mention, as in "15:04:05" matching "21:00:57.012". It stays out of the
// way when the layout itself continues with a fraction or with the same
// separator.
func (p *parser) trailingFraction(next layout.Token) {
	rest := p.rest()
	if len(rest) < 2 || !isFractionSep(rest[0]) || !isDigit(rest, 1) {
		return
	}
	switch t := next.(type) {
	case layout.Field:
		if t.Kind == layout.KindFraction {
			return
		}
	case layout.Literal:
		if t.Text != "" && t.Text[0] == rest[0] {
			return
		}
	}
	p.pos++
	p.rec.Nanos = p.digits(layout.MaxFractionDigits)
	p.rec.mark(Nanos)
}

func (p *parser) fraction(f layout.Field) error {
	rest := p.rest()
	if f.Fraction == layout.FractionVariable {
		p.rec.mark(Nanos)
		if len(rest) < 2 || rest[0] != f.Sep || !isDigit(rest, 1) {
			// Omitted: no separator or no digits after it.
			p.rec.Nanos = 0
			return nil
		}
		p.pos++
		p.rec.Nanos = p.digits(layout.MaxFractionDigits)
		return nil
	}

	if len(rest) == 0 {
		return p.fail(UnexpectedEnd, f.Ref)
	}
	if rest[0] != f.Sep {
		return p.fail(LiteralMismatch, f.Ref)
	}
	n := 1
	for isDigit(rest, n) {
		n++
	}
	if n-1 != f.Digits {
		return p.fail(BadNumber, f.Ref)
	}
	p.pos++
	p.rec.Nanos = p.digits(f.Digits)
	p.rec.mark(Nanos)
	return nil
}

// digits consumes up to limit digits and scales them to nanoseconds.
func (p *parser) digits(limit int) int {
	v, n := 0, 0
	for n < limit && isDigit(p.input, p.pos) {
		v = v*10 + int(p.input[p.pos]-'0')
		p.pos++
		n++
	}
	return v * pow10[layout.MaxFractionDigits-n]
}

func (p *parser) meridiemField(f layout.Field) error {
	rest := p.rest()
	if len(rest) < 2 {
		return p.failAt(UnknownName, f.Ref)
	}
	switch {
	case foldEqual(rest[:2], "AM"):
		p.meridiem = 'A'
	case foldEqual(rest[:2], "PM"):
		p.meridiem = 'P'
	default:
		return p.fail(UnknownName, f.Ref)
	}
	p.pos += 2
	return nil
}

func (p *parser) applyMeridiem() {
	if !p.rec.Has(Hour) {
		return
	}
	switch p.meridiem {
	case 'P':
		if p.rec.Hour >= 1 && p.rec.Hour < 12 {
			p.rec.Hour += 12
		}
	case 'A':
		if p.rec.Hour == 12 {
			p.rec.Hour = 0
		}
	}
}

// zoneShape gives the number of two-digit groups of a zone style and
// whether they are colon-separated.
func zoneShape(s layout.ZoneStyle) (groups int, colon bool) {
	switch s {
	case layout.ZoneHours:
		return 1, false
	case layout.ZoneHHMM:
		return 2, false
	case layout.ZoneColon:
		return 2, true
	case layout.ZoneHHMMSS:
		return 3, false
	case layout.ZoneColonSeconds:
		return 3, true
	}
	return 0, false
}

func (p *parser) zoneOffset(f layout.Field) error {
	rest := p.rest()
	if len(rest) == 0 {
		return p.fail(UnexpectedEnd, f.Ref)
	}
	if rest[0] == 'Z' {
		p.pos++
		p.rec.ZoneOffset = 0
		p.rec.mark(ZoneOffset)
		return nil
	}
	if hasGMT(rest) {
		return p.gmt(f)
	}

	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return p.fail(ZoneMismatch, f.Ref)
	}

	groups, colon := zoneShape(f.Zone)
	var vals [3]int
	i := 1
	for g := 0; g < groups; g++ {
		if g > 0 && colon {
			if i >= len(rest) || rest[i] != ':' {
				return p.failAt(ZoneMismatch, f.Ref)
			}
			i++
		}
		if !isDigit(rest, i) || !isDigit(rest, i+1) {
			return p.failAt(ZoneMismatch, f.Ref)
		}
		vals[g] = int(rest[i]-'0')*10 + int(rest[i+1]-'0')
		i += 2
	}
	if vals[0] > 24 || vals[1] > 59 || vals[2] > 59 {
		return p.fail(OutOfRange, f.Ref)
	}

	p.pos += i
	p.rec.ZoneOffset = sign * (vals[0]*3600 + vals[1]*60 + vals[2])
	p.rec.mark(ZoneOffset)
	return nil
}

// zoneAbbrev consumes a 2-5 letter abbreviation such as PST. The name is
// kept as-is (upper-cased); only a GMT prefix carries an offset.
func (p *parser) zoneAbbrev(f layout.Field) error {
	rest := p.rest()
	if hasGMT(rest) {
		return p.gmt(f)
	}
	n := 0
	for n < len(rest) && isLetter(rest[n]) {
		n++
	}
	if n < 2 || n > 5 {
		return p.failAt(ZoneMismatch, f.Ref)
	}
	p.pos += n
	p.rec.ZoneName = strings.ToUpper(rest[:n])
	p.rec.mark(ZoneName)
	return nil
}

// gmt consumes "GMT" and an optional signed one or two digit hour, as in
// "GMT-8".
func (p *parser) gmt(f layout.Field) error {
	p.pos += 3
	offset := 0
	rest := p.rest()
	if len(rest) >= 2 && (rest[0] == '+' || rest[0] == '-') && isDigit(rest, 1) {
		n := 1
		hours := 0
		for n < 3 && isDigit(rest, n) {
			hours = hours*10 + int(rest[n]-'0')
			n++
		}
		if hours > 24 {
			return p.fail(OutOfRange, f.Ref)
		}
		offset = hours * 3600
		if rest[0] == '-' {
			offset = -offset
		}
		p.pos += n
	}
	p.rec.ZoneName = "GMT"
	p.rec.ZoneOffset = offset
	p.rec.mark(ZoneName | ZoneOffset)
	return nil
}

// hasGMT reports whether s starts with the word GMT in any case.
func hasGMT(s string) bool {
	return len(s) >= 3 && foldEqual(s[:3], "GMT") && (len(s) == 3 || !isLetter(s[3]))
}

const spaceChars = " \t\n\v\f\r"

func isSpace(c byte) bool {
	return strings.IndexByte(spaceChars, c) >= 0
}

func isDigit(s string, i int) bool {
	return i < len(s) && '0' <= s[i] && s[i] <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isFractionSep(c byte) bool {
	return c == '.' || c == ','
}

func startsWithLower(s string) bool {
	return len(s) > 0 && 'a' <= s[0] && s[0] <= 'z'
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// foldEqual compares two equal-length ASCII strings ignoring case.
func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}
