package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/webxml/xml/dom"
)

// LineEncoder writes one tab-separated line per node. Elements are
// identified by the path of local names from the root; text and comments
// carry the path of their parent.
//
//	document	1.0
//	element	/a	b=1
//	text	/a	"hello"
type LineEncoder struct {
	w   io.Writer
	doc *dom.Document
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *dom.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "document\t%s\n", orDash(e.doc.Version))
	for _, child := range e.doc.Children {
		e.writeNode(&sb, child, "")
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, n dom.Node, parent string) {
	switch n := n.(type) {
	case *dom.Element:
		path := parent + "/" + n.Name.Local
		fmt.Fprintf(sb, "element\t%s\t%s\n", path, e.attributesStr(n.Attrs))
		for _, child := range n.Children {
			e.writeNode(sb, child, path)
		}
	case *dom.Text:
		fmt.Fprintf(sb, "text\t%s\t%s\n", orSlash(parent), strconv.Quote(n.Data))
	case *dom.Comment:
		fmt.Fprintf(sb, "comment\t%s\t%s\n", orSlash(parent), strconv.Quote(n.Data))
	}
}

func (e *LineEncoder) attributesStr(attrs []dom.Attr) string {
	if len(attrs) == 0 {
		return "-"
	}
	var parts []string
	for _, a := range attrs {
		parts = append(parts, a.Name.Local+"="+strconv.Quote(a.Value))
	}
	return strings.Join(parts, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orSlash(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
