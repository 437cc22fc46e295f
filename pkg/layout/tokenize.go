package layout

import "strings"

// Tokenize compiles a layout into its token sequence. The result is never
// mutated by this package and may be shared by concurrent parses.
func Tokenize(layout string) ([]Token, error) {
	var tokens []Token
	litStart := 0
	for i := 0; i < len(layout); {
		field, n, err := matchAt(layout, i)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			i++
			continue
		}
		tokens = appendLiteral(tokens, layout[litStart:i])
		tokens = append(tokens, field)
		i += n
		litStart = i
	}
	tokens = appendLiteral(tokens, layout[litStart:])
	return tokens, nil
}

// MustTokenize is like Tokenize but panics on a malformed layout. It is
// meant for package-level layout tables.
func MustTokenize(layout string) []Token {
	tokens, err := Tokenize(layout)
	if err != nil {
		panic(err)
	}
	return tokens
}

// matchAt returns the field starting at layout[i] and its length, or a
// zero length when layout[i] belongs to a literal.
func matchAt(layout string, i int) (Field, int, error) {
	if c := layout[i]; c == '.' || c == ',' {
		if f, n, ok := matchFraction(layout, i); ok {
			if f.Digits > MaxFractionDigits {
				return Field{}, 0, &Error{Layout: layout, Pos: i, Msg: "fractional second exceeds nanosecond precision"}
			}
			return f, n, nil
		}
	}

	rest := layout[i:]
	for _, p := range patterns {
		if !strings.HasPrefix(rest, p.ref) {
			continue
		}
		if p.reject != nil && p.reject(rest[len(p.ref):]) {
			continue
		}
		return p.field, len(p.ref), nil
	}
	return Field{}, 0, nil
}

// matchFraction recognises a '.' or ',' followed by a run of '0' (fixed
// width) or '9' (variable width). A run followed by another digit is
// not a fraction: "2006.01.02" keeps its separators.
func matchFraction(layout string, i int) (Field, int, bool) {
	if i+1 >= len(layout) {
		return Field{}, 0, false
	}
	ch := layout[i+1]
	if ch != '0' && ch != '9' {
		return Field{}, 0, false
	}
	j := i + 1
	for j < len(layout) && layout[j] == ch {
		j++
	}
	if isDigit(layout, j) {
		return Field{}, 0, false
	}

	f := Field{
		Kind:   KindFraction,
		Ref:    layout[i:j],
		Sep:    layout[i],
		Digits: j - i - 1,
	}
	if ch == '0' {
		f.Fraction = FractionFixed
	} else {
		f.Fraction = FractionVariable
	}
	return f, j - i, true
}

// appendLiteral appends text as one or more literals, splitting out
// upper-case abbreviations (two or more capitals not touching another
// letter) so they can be matched case-insensitively.
func appendLiteral(tokens []Token, text string) []Token {
	start := 0
	for i := 0; i < len(text); {
		if !isUpper(text[i]) || (i > 0 && isLetter(text[i-1])) {
			i++
			continue
		}
		j := i
		for j < len(text) && isUpper(text[j]) {
			j++
		}
		if j-i < 2 || (j < len(text) && isLetter(text[j])) {
			i = j
			continue
		}
		if i > start {
			tokens = append(tokens, Literal{Text: text[start:i]})
		}
		tokens = append(tokens, Literal{Text: text[i:j], Fold: true})
		start, i = j, j
	}
	if start < len(text) {
		tokens = append(tokens, Literal{Text: text[start:]})
	}
	return tokens
}
