package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/webxml/xml/dom"
)

type JSONEncoder struct {
	w   io.Writer
	doc *dom.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *dom.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.doc), "", "  ")
}

type jsonNode struct {
	Kind       string      `json:"kind"`
	Version    string      `json:"version,omitempty"`
	Name       string      `json:"name,omitempty"`
	Namespace  string      `json:"namespace,omitempty"`
	Attributes []jsonAttr  `json:"attributes,omitempty"`
	Data       string      `json:"data,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

type jsonAttr struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Value     string `json:"value"`
}

func nodeToJSON(n dom.Node) *jsonNode {
	jn := &jsonNode{Kind: n.Type().String()}

	var children []dom.Node
	switch n := n.(type) {
	case *dom.Document:
		jn.Version = n.Version
		children = n.Children
	case *dom.Element:
		jn.Name = n.Name.Local
		jn.Namespace = n.Name.Space
		for _, a := range n.Attrs {
			jn.Attributes = append(jn.Attributes, jsonAttr{
				Name:      a.Name.Local,
				Namespace: a.Name.Space,
				Value:     a.Value,
			})
		}
		children = n.Children
	case *dom.Text:
		jn.Data = n.Data
	case *dom.Comment:
		jn.Data = n.Data
	}

	if len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
