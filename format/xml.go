package format

import (
	"io"
	"strings"

	"github.com/dhamidi/webxml/xml/dom"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// XMLEncoder writes a document back as markup. Names are written with
// their local part only. Parsing the output without indentation yields a
// tree equal to the encoded one.
type XMLEncoder struct {
	w      io.Writer
	doc    *dom.Document
	indent string
}

type XMLOption func(*XMLEncoder)

// WithIndent puts each child of an element on its own line, prefixed by
// one copy of indent per nesting level. Elements containing text are kept
// on one line so their text is not changed.
func WithIndent(indent string) XMLOption {
	return func(e *XMLEncoder) {
		e.indent = indent
	}
}

func NewXMLEncoder(w io.Writer, opts ...XMLOption) *XMLEncoder {
	e := &XMLEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *XMLEncoder) Encode(doc *dom.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *XMLEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.doc

	if d.Version != "" {
		quote := `"`
		if strings.Contains(d.Version, quote) {
			quote = "'"
		}
		sb.WriteString("<?xml version=" + quote + d.Version + quote + "?>\n")
	}

	for _, child := range d.Children {
		e.writeNode(&sb, child, 0)
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

func (e *XMLEncoder) writeNode(sb *strings.Builder, n dom.Node, depth int) {
	switch n := n.(type) {
	case *dom.Element:
		e.writeElement(sb, n, depth)
	case *dom.Text:
		textEscaper.WriteString(sb, n.Data)
	case *dom.Comment:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	}
}

func (e *XMLEncoder) writeElement(sb *strings.Builder, el *dom.Element, depth int) {
	sb.WriteString("<")
	sb.WriteString(el.Name.Local)
	for _, a := range el.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name.Local)
		sb.WriteString(`="`)
		attrEscaper.WriteString(sb, a.Value)
		sb.WriteString(`"`)
	}

	if len(el.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")

	pretty := e.indent != "" && !hasText(el)
	for _, child := range el.Children {
		if pretty {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(e.indent, depth+1))
		}
		e.writeNode(sb, child, depth+1)
	}
	if pretty {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(e.indent, depth))
	}

	sb.WriteString("</")
	sb.WriteString(el.Name.Local)
	sb.WriteString(">")
}

func hasText(el *dom.Element) bool {
	for _, child := range el.Children {
		if child.Type() == dom.TextNode {
			return true
		}
	}
	return false
}
