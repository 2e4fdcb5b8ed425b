package parser

import (
	"strings"

	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/scan"
)

// CharData ::= [^<&]* - ([^<&]* ']]>' [^<&]*)
//
// CharData never fails; it stops before '<', '&', ']]>' or a rune that is
// not a Char.
func (p *parser) parseCharData() {
	p.trace("character data")

	for !p.cur.Ended() && p.cur.Ahead(scan.CharData) && !p.cur.Ahead(cdataEnd) {
		p.text.append(p.cur.Next())
	}
}

// Comment ::= '<!--' ((Char - '-') | ('-' (Char - '-')))* '-->'
//
// A "--" inside the comment is only rejected in strict mode.
func (p *parser) parseComment() (*dom.Comment, error) {
	p.trace("comment")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(commentStart) {
		return nil, p.errorf(Structural, "expected '<!--'")
	}

	var sb strings.Builder
	for !p.cur.Ended() && !p.cur.Ahead(commentEnd) {
		r := p.cur.Next()
		if !scan.Char.Contains(r) {
			return nil, p.errorAt(p.cur.Offset()-1, Lexical, "invalid character %U in comment", r)
		}
		if p.strict && r == '-' && p.cur.Curr() == '-' {
			return nil, p.errorAt(p.cur.Offset()-1, Lexical, "'--' is not allowed in comments")
		}
		sb.WriteRune(r)
	}

	if !p.cur.Skip(commentEnd) {
		return nil, p.errorf(Structural, "expected '-->'")
	}

	g.disarm()
	return dom.NewComment(sb.String()), nil
}

// PI ::= '<?' PITarget (S (Char* - (Char* '?>' Char*)))? '?>'
//
// The instruction is validated and discarded.
func (p *parser) parsePI() error {
	p.trace("processing instruction")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(piStart) {
		return p.errorf(Structural, "expected '<?'")
	}
	if err := p.parsePITarget(); err != nil {
		return err
	}

	for !p.cur.Ended() && !p.cur.Ahead(piEnd) {
		if r := p.cur.Next(); !scan.Char.Contains(r) {
			return p.errorAt(p.cur.Offset()-1, Lexical, "invalid character %U in processing instruction", r)
		}
	}

	if !p.cur.Skip(piEnd) {
		return p.errorf(Structural, "expected '?>'")
	}

	g.disarm()
	return nil
}

// PITarget ::= Name - (('X' | 'x') ('M' | 'm') ('L' | 'l'))
func (p *parser) parsePITarget() error {
	p.trace("processing instruction target")

	start := p.cur.Offset()
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if scan.EqualFold(name, "xml") {
		return p.errorAt(start, Lexical, "processing instruction target must not be %q", name)
	}
	return nil
}

// CDSect ::= '<![CDATA[' (Char* - (Char* ']]>' Char*)) ']]>'
//
// The section's runes are added to the pending text verbatim.
func (p *parser) parseCDSect() error {
	p.trace("CDATA section")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(cdataStart) {
		return p.errorf(Structural, "expected '<![CDATA['")
	}

	for !p.cur.Ended() && p.cur.Match(cdataEnd) == scan.No {
		r := p.cur.Next()
		if !scan.Char.Contains(r) {
			return p.errorAt(p.cur.Offset()-1, Lexical, "invalid character %U in CDATA section", r)
		}
		p.text.append(r)
	}

	if !p.cur.Skip(cdataEnd) {
		return p.errorf(Structural, "expected ']]>'")
	}

	g.disarm()
	return nil
}
