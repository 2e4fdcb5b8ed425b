// Package dom holds the tree produced by the markup parser.
//
// Each container exclusively owns its children. Processing instructions are
// not represented.
package dom

import (
	"strings"
)

type NodeType int

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	CommentNode
)

var nodeTypeNames = map[NodeType]string{
	DocumentNode: "Document",
	ElementNode:  "Element",
	TextNode:     "Text",
	CommentNode:  "Comment",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

type Node interface {
	Type() NodeType
}

// Name is a local name qualified by an opaque namespace tag that was
// resolved before parsing.
type Name struct {
	Space string
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

type Attr struct {
	Name  Name
	Value string
}

type Document struct {
	// Version is the version declared by the XML declaration, if any. It
	// is recorded as written.
	Version  string
	Children []Node
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Type() NodeType { return DocumentNode }

func (d *Document) AppendChild(child Node) {
	if child != nil {
		d.Children = append(d.Children, child)
	}
}

// DocumentElement returns the root element, or nil when there is none.
func (d *Document) DocumentElement() *Element {
	for _, child := range d.Children {
		if el, ok := child.(*Element); ok {
			return el
		}
	}
	return nil
}

type Element struct {
	Name     Name
	Attrs    []Attr
	Children []Node
}

func NewElement(name Name) *Element {
	return &Element{Name: name}
}

func (e *Element) Type() NodeType { return ElementNode }

func (e *Element) AppendChild(child Node) {
	if child != nil {
		e.Children = append(e.Children, child)
	}
}

// SetAttribute sets name to value. An existing attribute keeps its
// position and has its value replaced.
func (e *Element) SetAttribute(name Name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

func (e *Element) Attribute(name Name) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) HasAttribute(name Name) bool {
	_, ok := e.Attribute(name)
	return ok
}

// ChildElements returns the element children in document order.
func (e *Element) ChildElements() []*Element {
	var result []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			result = append(result, el)
		}
	}
	return result
}

// TextContent concatenates all descendant text.
func (e *Element) TextContent() string {
	var sb strings.Builder
	writeText(&sb, e)
	return sb.String()
}

func writeText(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		sb.WriteString(n.Data)
	case *Element:
		for _, child := range n.Children {
			writeText(sb, child)
		}
	}
}

type Comment struct {
	Data string
}

func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

func (c *Comment) Type() NodeType { return CommentNode }

type Text struct {
	Data string
}

func NewText(data string) *Text {
	return &Text{Data: data}
}

func (t *Text) Type() NodeType { return TextNode }
