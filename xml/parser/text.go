package parser

import "github.com/dhamidi/webxml/xml/dom"

// textBuffer collects literal and reference-decoded runes until they are
// materialized as a Text node. Elements scope the buffer with a mark: a
// flush only takes the runes appended after the innermost open element
// started.
type textBuffer struct {
	runes []rune
}

func (b *textBuffer) append(r ...rune) {
	b.runes = append(b.runes, r...)
}

func (b *textBuffer) len() int {
	return len(b.runes)
}

func (b *textBuffer) truncate(n int) {
	if n < len(b.runes) {
		b.runes = b.runes[:n]
	}
}

// flush returns the runes above mark as a string and drops them.
func (b *textBuffer) flush(mark int) string {
	if mark >= len(b.runes) {
		return ""
	}
	s := string(b.runes[mark:])
	b.runes = b.runes[:mark]
	return s
}

type container interface {
	AppendChild(dom.Node)
}

// flushInto appends pending text of the current element to parent. An
// empty buffer produces no node.
func (p *parser) flushInto(parent container) {
	if s := p.text.flush(p.mark); s != "" {
		parent.AppendChild(dom.NewText(s))
	}
}
