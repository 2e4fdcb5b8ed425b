// Package parser implements a recursive-descent parser for XML documents.
//
// Every production runs inside a rollback guard: when it fails, the cursor
// and the pending text are exactly where they were before the production
// started. Alternatives are ordered and the first one that succeeds wins.
//
// DTDs, external entities and namespace declarations are not processed.
// Element and attribute names are tagged with the namespace passed to
// Parse.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/scan"
	"github.com/tliron/commonlog"
)

// DefaultMaxDepth bounds element nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 256

type Option func(*parser)

// WithMaxDepth sets the maximum element nesting depth. Zero disables the
// limit.
func WithMaxDepth(n int) Option {
	return func(p *parser) {
		p.maxDepth = max(n, 0)
	}
}

// WithStrict rejects input that the default mode tolerates: duplicate
// attribute names, "--" inside comments, a '&' in an attribute value that
// does not start a reference and anything after the root element that is
// not a comment, PI or whitespace.
func WithStrict() Option {
	return func(p *parser) {
		p.strict = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithFile sets the file name reported in errors.
func WithFile(name string) Option {
	return func(p *parser) {
		p.file = name
	}
}

type parser struct {
	cur      *scan.Cursor
	ns       string
	text     textBuffer
	mark     int
	depth    int
	maxDepth int
	strict   bool
	file     string
	log      commonlog.Logger
	furthest *Error
}

func newParser(input []rune, ns string, opts ...Option) *parser {
	p := &parser{
		cur:      scan.New(input),
		ns:       ns,
		maxDepth: DefaultMaxDepth,
		log:      commonlog.GetLogger("webxml.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses input as a complete document. Every element and attribute
// name is tagged with ns. On failure no tree is returned and the error is
// an *Error matching ErrInvalidData.
func Parse(input []rune, ns string, opts ...Option) (*dom.Document, error) {
	p := newParser(input, ns, opts...)
	doc, err := p.parseDocument()
	if err != nil {
		return nil, p.report(err)
	}
	return doc, nil
}

func ParseString(s string, ns string, opts ...Option) (*dom.Document, error) {
	return Parse([]rune(s), ns, opts...)
}

var byteOrderMark = []byte("\uFEFF")

// ParseReader reads all of r as UTF-8, drops a leading byte order mark and
// parses the result.
func ParseReader(r io.Reader, ns string, opts ...Option) (*dom.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimPrefix(data, byteOrderMark)
	if !utf8.Valid(data) {
		p := newParser(nil, ns, opts...)
		return nil, &Error{
			Category: Lexical,
			Message:  "input is not valid UTF-8",
			File:     p.file,
		}
	}
	return Parse(bytes.Runes(data), ns, opts...)
}

func (p *parser) trace(production string) {
	p.log.Debug("parsing "+production, "offset", p.cur.Offset())
}

// guard is a cursor rollback point that also restores the pending text.
type guard struct {
	p    *parser
	rb   *scan.RollbackPoint
	text int
}

func (p *parser) rollbackPoint() *guard {
	return &guard{
		p:    p,
		rb:   p.cur.RollbackPoint(),
		text: p.text.len(),
	}
}

func (g *guard) disarm() {
	g.rb.Disarm()
}

func (g *guard) arm() {
	g.rb.Arm()
}

func (g *guard) release() {
	if g.rb.Armed() {
		g.p.text.truncate(g.text)
	}
	g.rb.Release()
}
