// Package scan provides a transactional cursor over decoded runes.
//
// A Cursor only moves forward, except when a RollbackPoint that was not
// disarmed is released. Rollback points nest strictly: a point created
// after another one must be released before it.
package scan

import "fmt"

// EOF is returned by Curr, Peek and Next when the cursor has no more input.
const EOF rune = -1

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Cursor struct {
	input []rune
	pos   int
	open  int
}

func New(input []rune) *Cursor {
	return &Cursor{input: input}
}

func NewString(s string) *Cursor {
	return New([]rune(s))
}

func (c *Cursor) Ended() bool {
	return c.pos >= len(c.input)
}

func (c *Cursor) Curr() rune {
	return c.Peek(0)
}

func (c *Cursor) Peek(n int) rune {
	if c.pos+n >= len(c.input) || c.pos+n < 0 {
		return EOF
	}
	return c.input[c.pos+n]
}

// Ahead reports whether p matches at the current offset without consuming.
func (c *Cursor) Ahead(p Pattern) bool {
	return p.match(c.input, c.pos) >= 0
}

func (c *Cursor) Match(p Pattern) Match {
	if c.Ahead(p) {
		return Yes
	}
	return No
}

// Skip consumes the span matched by p. The offset is left unchanged when p
// does not match.
func (c *Cursor) Skip(p Pattern) bool {
	n := p.match(c.input, c.pos)
	if n < 0 {
		return false
	}
	c.pos += n
	return true
}

func (c *Cursor) Next() rune {
	if c.Ended() {
		return EOF
	}
	r := c.input[c.pos]
	c.pos++
	return r
}

// Token consumes the longest run of runes that belong to class.
func (c *Cursor) Token(class Class) string {
	start := c.pos
	for c.pos < len(c.input) && class.Contains(c.input[c.pos]) {
		c.pos++
	}
	return string(c.input[start:c.pos])
}

func (c *Cursor) Offset() int {
	return c.pos
}

func (c *Cursor) Slice(from, to int) string {
	from = max(0, min(from, len(c.input)))
	to = max(from, min(to, len(c.input)))
	return string(c.input[from:to])
}

// Position converts a rune offset into a 1-based line and column.
func (c *Cursor) Position(offset int) Position {
	offset = max(0, min(offset, len(c.input)))
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		switch c.input[i] {
		case '\n':
			line++
			col = 1
		case '\r':
			if i+1 < len(c.input) && c.input[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		default:
			col++
		}
	}
	return Position{Offset: offset, Line: line, Column: col}
}

// RollbackPoint captures the current offset. The returned point is armed:
// releasing it restores the offset unless Disarm was called.
//
//	rb := c.RollbackPoint()
//	defer rb.Release()
func (c *Cursor) RollbackPoint() *RollbackPoint {
	c.open++
	return &RollbackPoint{
		cursor: c,
		offset: c.pos,
		depth:  c.open,
		armed:  true,
	}
}

type RollbackPoint struct {
	cursor   *Cursor
	offset   int
	depth    int
	armed    bool
	released bool
}

// Disarm commits the input consumed since the point was created.
func (rb *RollbackPoint) Disarm() {
	rb.armed = false
}

// Arm forces a rollback on release, even after Disarm.
func (rb *RollbackPoint) Arm() {
	rb.armed = true
}

func (rb *RollbackPoint) Armed() bool {
	return rb.armed
}

func (rb *RollbackPoint) Offset() int {
	return rb.offset
}

// Release resolves the point. It is safe to call more than once; only the
// first call has an effect.
func (rb *RollbackPoint) Release() {
	if rb.released {
		return
	}
	c := rb.cursor
	if rb.depth != c.open {
		panic(fmt.Sprintf("scan: rollback point released out of order (depth %d, open %d)", rb.depth, c.open))
	}
	rb.released = true
	c.open--
	if rb.armed {
		c.pos = rb.offset
	}
}
