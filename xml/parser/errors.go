package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidData matches every error returned by the parser.
	ErrInvalidData = errors.New("invalid data")
	// ErrDepthLimit matches errors caused by element nesting deeper than
	// the configured maximum.
	ErrDepthLimit = errors.New("element depth exceeds limit")
)

type Category int

const (
	// Structural errors report a missing delimiter or literal.
	Structural Category = iota + 1
	// Semantic errors report well-delimited input that is inconsistent,
	// such as mismatched tag names.
	Semantic
	// Lexical errors report malformed tokens: names, references, characters.
	Lexical
	// Limit errors report input exceeding a configured bound.
	Limit
)

var categoryNames = map[Category]string{
	Structural: "structural",
	Semantic:   "semantic",
	Lexical:    "lexical",
	Limit:      "limit",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a positioned parse failure. Offset counts runes from the start
// of the input; Line and Column are 1-based.
type Error struct {
	Category Category
	Message  string
	File     string
	Offset   int
	Line     int
	Column   int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", e.Line, e.Column)
	}
	if e.File != "" {
		loc = e.File + ":" + loc
		if e.Line == 0 {
			loc += " "
		}
	}
	return loc + ErrInvalidData.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return ErrInvalidData
}

func (e *Error) Is(target error) bool {
	return target == ErrDepthLimit && e.Category == Limit
}

func (p *parser) errorf(category Category, format string, args ...any) error {
	return p.errorAt(p.cur.Offset(), category, format, args...)
}

// errorAt records the failure as the furthest one seen when no earlier
// failure got further into the input.
func (p *parser) errorAt(offset int, category Category, format string, args ...any) error {
	err := &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		File:     p.file,
		Offset:   offset,
	}
	if p.furthest == nil || err.Offset >= p.furthest.Offset {
		p.furthest = err
	}
	return err
}

// report picks the error surfaced to the caller and fills in its position.
// Depth limit errors are reported as they are; anything else reports the
// failure that got furthest into the input.
func (p *parser) report(err error) error {
	var perr *Error
	if !errors.As(err, &perr) {
		return err
	}
	if perr.Category != Limit && p.furthest != nil {
		perr = p.furthest
	}
	pos := p.cur.Position(perr.Offset)
	perr.Line = pos.Line
	perr.Column = pos.Column
	return perr
}
