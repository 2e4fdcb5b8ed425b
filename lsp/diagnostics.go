package lsp

import (
	"bytes"
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/webxml/xml/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts the parse error of a document into LSP diagnostics.
// A nil error yields an empty, non-nil list so that publishing it clears
// earlier diagnostics.
func Diagnostics(content []byte, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	message := err.Error()
	var start protocol.Position

	var perr *parser.Error
	if errors.As(err, &perr) {
		message = perr.Message
		if perr.Line > 0 {
			start = protocol.Position{
				Line:      protocol.UInteger(perr.Line - 1),
				Character: protocol.UInteger(utf16Column(content, perr.Line, perr.Column)),
			}
		}
	}
	end := start
	end.Character++

	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	})
}

// utf16Column converts a 1-based rune column into the 0-based UTF-16
// offset LSP clients expect.
func utf16Column(content []byte, line, column int) int {
	text, ok := lineAt(content, line)
	if !ok {
		return max(column-1, 0)
	}

	n := 0
	for i := 1; i < column && len(text) > 0; i++ {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// lineAt returns the 1-based line of content. Lines end at "\r\n", "\n"
// or a lone "\r", the same breaks the parser counts in error positions.
func lineAt(content []byte, line int) ([]byte, bool) {
	if line <= 0 {
		return nil, false
	}
	for n := 1; ; n++ {
		i := bytes.IndexAny(content, "\r\n")
		if n == line {
			if i < 0 {
				return content, true
			}
			return content[:i], true
		}
		if i < 0 {
			return nil, false
		}
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			i++
		}
		content = content[i+1:]
	}
}
