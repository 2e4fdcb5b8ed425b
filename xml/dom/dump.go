package dom

import (
	"strconv"
	"strings"
)

// Dump renders n and its descendants one node per line, children indented
// by two spaces.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Type().String())

	var children []Node
	switch n := n.(type) {
	case *Document:
		if n.Version != "" {
			sb.WriteString(" version=" + strconv.Quote(n.Version))
		}
		children = n.Children
	case *Element:
		sb.WriteString(" " + n.Name.String())
		for _, a := range n.Attrs {
			sb.WriteString(" " + a.Name.String() + "=" + strconv.Quote(a.Value))
		}
		children = n.Children
	case *Text:
		sb.WriteString(" " + strconv.Quote(n.Data))
	case *Comment:
		sb.WriteString(" " + strconv.Quote(n.Data))
	}
	sb.WriteString("\n")

	for _, child := range children {
		dump(sb, child, indent+1)
	}
}
