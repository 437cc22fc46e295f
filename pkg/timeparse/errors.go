package timeparse

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	LiteralMismatch ErrorKind = iota + 1
	BadNumber
	UnknownName
	ZoneMismatch
	OutOfRange
	TrailingInput
	UnexpectedEnd
)

// Sentinels for errors.Is; every *ParseError unwraps to the one matching
// its kind.
var (
	ErrLiteralMismatch = errors.New("literal mismatch")
	ErrBadNumber       = errors.New("bad number")
	ErrUnknownName     = errors.New("unknown name")
	ErrZoneMismatch    = errors.New("zone mismatch")
	ErrOutOfRange      = errors.New("value out of range")
	ErrTrailingInput   = errors.New("extra text")
	ErrUnexpectedEnd   = errors.New("unexpected end of input")
)

var kindErrors = map[ErrorKind]error{
	LiteralMismatch: ErrLiteralMismatch,
	BadNumber:       ErrBadNumber,
	UnknownName:     ErrUnknownName,
	ZoneMismatch:    ErrZoneMismatch,
	OutOfRange:      ErrOutOfRange,
	TrailingInput:   ErrTrailingInput,
	UnexpectedEnd:   ErrUnexpectedEnd,
}

func (k ErrorKind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// ParseError reports where and why an input did not match a layout.
type ParseError struct {
	Kind ErrorKind

	// Pos is the byte offset into Input at which parsing failed.
	Pos int

	// Elem is the layout element being matched, e.g. "Jan" or ":".
	Elem string

	Input string
}

func (e *ParseError) Error() string {
	rest := ""
	if e.Pos <= len(e.Input) {
		rest = e.Input[e.Pos:]
	}
	switch e.Kind {
	case TrailingInput:
		return fmt.Sprintf("parsing time %q: extra text %q at offset %d", e.Input, rest, e.Pos)
	case UnexpectedEnd:
		return fmt.Sprintf("parsing time %q: input ended while expecting %q", e.Input, e.Elem)
	}
	return fmt.Sprintf("parsing time %q: %s: cannot parse %q as %q at offset %d", e.Input, e.Kind, rest, e.Elem, e.Pos)
}

// Unwrap returns the sentinel for the error's kind.
func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}
