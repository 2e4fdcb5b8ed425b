// Package grammar describes the accepted document syntax as an EBNF
// grammar and tokenizes input with it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the embedded grammar.
const Start = "Document"

//go:embed xml.ebnf
var source []byte

// Source returns the text of the embedded grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("xml.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// LoadFile loads an EBNF grammar from a file.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Verify checks that every production used is defined, every production
// is reachable from start and lexical productions only refer to lexical
// productions.
func Verify(grammar ebnf.Grammar, start string) error {
	if err := ebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}
