package parser

import (
	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/scan"
)

var (
	xmlDeclStart = scan.Lit("<?xml")
	piStart      = scan.Lit("<?")
	piEnd        = scan.Lit("?>")
	commentStart = scan.Lit("<!--")
	commentEnd   = scan.Lit("-->")
	cdataStart   = scan.Lit("<![CDATA[")
	cdataEnd     = scan.Lit("]]>")
	lt           = scan.Lit("<")
	gt           = scan.Lit(">")
	emptyTagEnd  = scan.Lit("/>")
	endTagStart  = scan.Lit("</")
	eq           = scan.Lit("=")
	semicolon    = scan.Lit(";")
	versionKw    = scan.Lit("version")
)

// document ::= prolog element Misc*
func (p *parser) parseDocument() (*dom.Document, error) {
	p.trace("document")

	doc := dom.NewDocument()
	if err := p.parseProlog(doc); err != nil {
		return nil, err
	}

	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	doc.AppendChild(root)

	for !p.cur.Ended() {
		if err := p.parseMisc(doc); err != nil {
			break
		}
	}
	if p.strict && !p.cur.Ended() {
		return nil, p.errorf(Structural, "unexpected content after root element")
	}

	return doc, nil
}

// S ::= (#x20 | #x9 | #xD | #xA)+
func (p *parser) parseS() error {
	p.trace("whitespace")

	if p.cur.Token(scan.Whitespace) == "" {
		return p.errorf(Structural, "expected whitespace")
	}
	return nil
}

// optionalS consumes S? and reports whether anything was consumed.
func (p *parser) optionalS() bool {
	return p.cur.Token(scan.Whitespace) != ""
}

// Name ::= NameStartChar (NameChar)*
func (p *parser) parseName() (string, error) {
	p.trace("name")

	if !p.cur.Ahead(scan.NameStartChar) {
		return "", p.errorf(Lexical, "expected name")
	}
	start := p.cur.Offset()
	p.cur.Next()
	p.cur.Token(scan.NameChar)
	return p.cur.Slice(start, p.cur.Offset()), nil
}

// prolog ::= XMLDecl? Misc*
func (p *parser) parseProlog(doc *dom.Document) error {
	p.trace("prolog")

	g := p.rollbackPoint()
	defer g.release()

	if p.cur.Ahead(scan.Seq(xmlDeclStart, scan.Whitespace)) {
		if err := p.parseXMLDecl(doc); err != nil {
			return err
		}
	}

	for !p.cur.Ended() {
		if err := p.parseMisc(doc); err != nil {
			break
		}
	}

	g.disarm()
	return nil
}

// XMLDecl ::= '<?xml' VersionInfo EncodingDecl? SDDecl? S? '?>'
//
// Only the version is interpreted. Its value is recorded as written; the
// rest of the declaration is skipped.
func (p *parser) parseXMLDecl(doc *dom.Document) error {
	p.trace("XML declaration")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(xmlDeclStart) {
		return p.errorf(Structural, "expected '<?xml'")
	}

	version, err := p.parseVersionInfo()
	if err != nil {
		return err
	}

	for !p.cur.Ended() && !p.cur.Ahead(piEnd) {
		if r := p.cur.Next(); !scan.Char.Contains(r) {
			return p.errorAt(p.cur.Offset()-1, Lexical, "invalid character %U in XML declaration", r)
		}
	}
	if !p.cur.Skip(piEnd) {
		return p.errorf(Structural, "expected '?>'")
	}

	doc.Version = version
	g.disarm()
	return nil
}

// VersionInfo ::= S 'version' Eq ("'" VersionNum "'" | '"' VersionNum '"')
func (p *parser) parseVersionInfo() (string, error) {
	p.trace("version info")

	g := p.rollbackPoint()
	defer g.release()

	if err := p.parseS(); err != nil {
		return "", err
	}
	if !p.cur.Skip(versionKw) {
		return "", p.errorf(Structural, "expected 'version'")
	}

	version := ""
	p.optionalS()
	if p.cur.Skip(eq) {
		p.optionalS()
		quote := p.cur.Curr()
		if quote != '"' && quote != '\'' {
			return "", p.errorf(Structural, "expected '\"' or '''")
		}
		p.cur.Next()
		start := p.cur.Offset()
		for !p.cur.Ended() && p.cur.Curr() != quote && !p.cur.Ahead(piEnd) {
			p.cur.Next()
		}
		if p.cur.Curr() != quote {
			return "", p.errorf(Structural, "expected closing quote")
		}
		version = p.cur.Slice(start, p.cur.Offset())
		p.cur.Next()
	}

	g.disarm()
	return version, nil
}

// Misc ::= Comment | PI | S
//
// A Misc that matches none of its alternatives fails; callers use that
// failure to end their loop.
func (p *parser) parseMisc(doc *dom.Document) error {
	p.trace("miscellaneous")

	g := p.rollbackPoint()
	defer g.release()

	switch {
	case p.cur.Ahead(commentStart):
		c, err := p.parseComment()
		if err != nil {
			return err
		}
		doc.AppendChild(c)
	case p.cur.Ahead(piStart):
		if err := p.parsePI(); err != nil {
			return err
		}
	case p.cur.Ahead(scan.Whitespace):
		if err := p.parseS(); err != nil {
			return err
		}
	default:
		return p.errorf(Structural, "expected comment, processing instruction or whitespace")
	}

	g.disarm()
	return nil
}
