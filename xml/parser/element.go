package parser

import (
	"errors"
	"strings"

	"github.com/dhamidi/webxml/xml/dom"
	"github.com/dhamidi/webxml/xml/scan"
)

var elementStart = scan.Seq(lt, scan.NameStartChar)

// element ::= EmptyElemTag | STag content ETag
func (p *parser) parseElement() (*dom.Element, error) {
	p.trace("element")

	if p.maxDepth > 0 && p.depth >= p.maxDepth && p.cur.Ahead(elementStart) {
		return nil, p.errorf(Limit, "element nesting exceeds maximum depth of %d", p.maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	g := p.rollbackPoint()
	defer g.release()

	if el, err := p.parseEmptyElementTag(); err == nil {
		g.disarm()
		return el, nil
	}

	el, err := p.parseStartTag()
	if err != nil {
		return nil, err
	}

	outer := p.mark
	p.mark = p.text.len()
	defer func() { p.mark = outer }()

	if err := p.parseContent(el); err != nil {
		return nil, err
	}
	if err := p.parseEndTag(el); err != nil {
		return nil, err
	}
	p.flushInto(el)

	g.disarm()
	return el, nil
}

// STag ::= '<' Name (S Attribute)* S? '>'
func (p *parser) parseStartTag() (*dom.Element, error) {
	p.trace("start tag")
	return p.parseTag(gt, "'>'")
}

// EmptyElemTag ::= '<' Name (S Attribute)* S? '/>'
func (p *parser) parseEmptyElementTag() (*dom.Element, error) {
	p.trace("empty element tag")
	return p.parseTag(emptyTagEnd, "'/>'")
}

func (p *parser) parseTag(end scan.Pattern, expected string) (*dom.Element, error) {
	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(lt) {
		return nil, p.errorf(Structural, "expected '<'")
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	el := dom.NewElement(dom.Name{Space: p.ns, Local: name})

	for {
		spaced := p.optionalS()
		if p.cur.Skip(end) {
			break
		}
		if p.cur.Ended() || p.cur.Ahead(gt) || p.cur.Ahead(emptyTagEnd) {
			return nil, p.errorf(Structural, "expected %s", expected)
		}
		if !spaced {
			return nil, p.errorf(Structural, "expected whitespace before attribute")
		}
		if err := p.parseAttribute(el); err != nil {
			return nil, err
		}
	}

	g.disarm()
	return el, nil
}

// Attribute ::= Name Eq AttValue
// Eq        ::= S? '=' S?
//
// A repeated attribute name overwrites the earlier value unless the parser
// is strict.
func (p *parser) parseAttribute(el *dom.Element) error {
	p.trace("attribute")

	g := p.rollbackPoint()
	defer g.release()

	start := p.cur.Offset()
	local, err := p.parseName()
	if err != nil {
		return err
	}
	name := dom.Name{Space: p.ns, Local: local}
	if p.strict && el.HasAttribute(name) {
		return p.errorAt(start, Semantic, "duplicate attribute %q", local)
	}

	p.optionalS()
	if !p.cur.Skip(eq) {
		return p.errorf(Structural, "expected '='")
	}
	p.optionalS()

	value, err := p.parseAttValue()
	if err != nil {
		return err
	}
	el.SetAttribute(name, value)

	g.disarm()
	return nil
}

// AttValue ::= '"' ([^<&"] | Reference)* '"'
//
//	| "'" ([^<&'] | Reference)* "'"
//
// A '&' that does not start a reference is kept as a literal character
// unless the parser is strict.
func (p *parser) parseAttValue() (string, error) {
	p.trace("attribute value")

	g := p.rollbackPoint()
	defer g.release()

	quote := p.cur.Curr()
	if quote != '"' && quote != '\'' {
		return "", p.errorf(Structural, "expected '\"' or '''")
	}
	p.cur.Next()

	var sb strings.Builder
	for !p.cur.Ended() && p.cur.Curr() != quote {
		switch p.cur.Curr() {
		case '<':
			return "", p.errorf(Lexical, "'<' is not allowed in attribute values")
		case '&':
			r, err := p.parseReference()
			if err == nil {
				sb.WriteRune(r)
				continue
			}
			if p.strict {
				return "", err
			}
		}
		r := p.cur.Next()
		if !scan.Char.Contains(r) {
			return "", p.errorAt(p.cur.Offset()-1, Lexical, "invalid character %U in attribute value", r)
		}
		sb.WriteRune(r)
	}

	if p.cur.Curr() != quote {
		return "", p.errorf(Structural, "expected closing quote")
	}
	p.cur.Next()

	g.disarm()
	return sb.String(), nil
}

// ETag ::= '</' Name S? '>'
func (p *parser) parseEndTag(el *dom.Element) error {
	p.trace("end tag")

	g := p.rollbackPoint()
	defer g.release()

	if !p.cur.Skip(endTagStart) {
		return p.errorf(Structural, "expected '</'")
	}

	start := p.cur.Offset()
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if name != el.Name.Local {
		return p.errorAt(start, Semantic, "end tag </%s> does not match start tag <%s>", name, el.Name.Local)
	}

	p.optionalS()
	if !p.cur.Skip(gt) {
		return p.errorf(Structural, "expected '>'")
	}

	g.disarm()
	return nil
}

// content ::= CharData? ((element | Reference | CDSect | PI | Comment) CharData?)*
//
// A content item that fails ends the loop; the end tag that follows
// reports the problem. Depth limit errors are the exception and are
// returned as they are.
func (p *parser) parseContent(el *dom.Element) error {
	p.trace("content")

	p.parseCharData()
	for !p.cur.Ended() {
		if err := p.parseContentItem(el); err != nil {
			if errors.Is(err, ErrDepthLimit) {
				return err
			}
			break
		}
		p.parseCharData()
	}
	return nil
}

// parseContentItem tries element, Reference, CDSect, PI and Comment in
// that order. Pending text is flushed before a child element, a reference
// or a comment is appended, so text and structure keep their document
// order. The decoded rune of a reference starts the next text node.
func (p *parser) parseContentItem(el *dom.Element) error {
	p.trace("content item")

	child, err := p.parseElement()
	if err == nil {
		p.flushInto(el)
		el.AppendChild(child)
		return nil
	}
	if errors.Is(err, ErrDepthLimit) {
		return err
	}

	if r, err := p.parseReference(); err == nil {
		p.flushInto(el)
		p.text.append(r)
		return nil
	}

	if err := p.parseCDSect(); err == nil {
		return nil
	}

	if err := p.parsePI(); err == nil {
		return nil
	}

	if c, err := p.parseComment(); err == nil {
		p.flushInto(el)
		el.AppendChild(c)
		return nil
	}

	return p.errorf(Structural, "expected content item")
}
