package parser

import (
	"strconv"

	"github.com/dhamidi/webxml/xml/scan"
)

var (
	charRefStart    = scan.Lit("&#")
	hexCharRefStart = scan.Lit("&#x")
	entityRefStart  = scan.Lit("&")
)

var predefinedEntities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

// Reference ::= EntityRef | CharRef
func (p *parser) parseReference() (rune, error) {
	p.trace("reference")

	if r, err := p.parseCharRef(); err == nil {
		return r, nil
	} else if p.cur.Ahead(charRefStart) {
		return 0, err
	}
	return p.parseEntityRef()
}

// CharRef ::= '&#' [0-9]+ ';' | '&#x' [0-9a-fA-F]+ ';'
func (p *parser) parseCharRef() (rune, error) {
	p.trace("character reference")

	g := p.rollbackPoint()
	defer g.release()

	base, digits, kind := 10, scan.Digit, "decimal"
	switch {
	case p.cur.Skip(hexCharRefStart):
		base, digits, kind = 16, scan.HexDigit, "hexadecimal"
	case p.cur.Skip(charRefStart):
	default:
		return 0, p.errorf(Structural, "expected '&#'")
	}

	start := p.cur.Offset()
	text := p.cur.Token(digits)
	if text == "" {
		return 0, p.errorf(Lexical, "expected %s number", kind)
	}
	n, err := strconv.ParseUint(text, base, 32)
	if err != nil || !scan.Char.Contains(rune(n)) {
		return 0, p.errorAt(start, Lexical, "character reference &#%s; does not denote a character", text)
	}

	if !p.cur.Skip(semicolon) {
		return 0, p.errorf(Structural, "expected ';'")
	}

	g.disarm()
	return rune(n), nil
}

// EntityRef ::= '&' Name ';'
//
// Only the five predefined entities are known. An unknown name fails after
// the reference was read completely, so the guard is armed again to give
// the input back.
func (p *parser) parseEntityRef() (rune, error) {
	p.trace("entity reference")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(entityRefStart) {
		return 0, p.errorf(Structural, "expected '&'")
	}

	start := p.cur.Offset()
	name, err := p.parseName()
	if err != nil {
		return 0, err
	}

	if !p.cur.Skip(semicolon) {
		return 0, p.errorf(Structural, "expected ';'")
	}

	g.disarm()
	if r, ok := predefinedEntities[name]; ok {
		return r, nil
	}

	g.arm()
	return 0, p.errorAt(start, Lexical, "unknown entity reference &%s;", name)
}
