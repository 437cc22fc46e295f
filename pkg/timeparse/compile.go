package timeparse

import (
	"slices"
	"sync"

	"github.com/ccollicutt/gotime/pkg/layout"
)

// Layout is a compiled layout. It is immutable and safe for concurrent use.
type Layout struct {
	text   string
	tokens []layout.Token
}

// Compile tokenizes text once so it can be used for many parses.
func Compile(text string) (*Layout, error) {
	tokens, err := layout.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return &Layout{text: text, tokens: tokens}, nil
}

// MustCompile is like Compile but panics on a malformed layout.
func MustCompile(text string) *Layout {
	l, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse matches input against the layout.
func (l *Layout) Parse(input string) (*Record, error) {
	return Parse(input, l.tokens)
}

// Tokens returns a copy of the compiled tokens.
func (l *Layout) Tokens() []layout.Token {
	return slices.Clone(l.tokens)
}

// String returns the layout text.
func (l *Layout) String() string {
	return l.text
}

// compiled memoizes layouts for ParseLayout. Entries are never removed;
// the set of layouts a program uses is small and fixed in practice.
var compiled sync.Map // map[string]*Layout

// ParseLayout parses input against the layout text, compiling it on first
// use and reusing the compiled form afterwards.
func ParseLayout(text, input string) (*Record, error) {
	l, err := cachedLayout(text)
	if err != nil {
		return nil, err
	}
	return l.Parse(input)
}

func cachedLayout(text string) (*Layout, error) {
	if v, ok := compiled.Load(text); ok {
		return v.(*Layout), nil
	}
	l, err := Compile(text)
	if err != nil {
		return nil, err
	}
	v, _ := compiled.LoadOrStore(text, l)
	return v.(*Layout), nil
}
