// Package format renders parsed documents.
package format

import (
	"encoding"

	"github.com/dhamidi/webxml/xml/dom"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *dom.Document) error
}
