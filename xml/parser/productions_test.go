package parser

import (
	"testing"

	"github.com/tliron/commonlog"
)

func newTestParser(input string, opts ...Option) *parser {
	opts = append([]Option{WithLogger(commonlog.MOCK_LOGGER)}, opts...)
	return newParser([]rune(input), "", opts...)
}

func TestFailedProductionsRestoreOffset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parse func(p *parser) error
	}{
		{"mismatched element", "<a></b>", func(p *parser) error {
			_, err := p.parseElement()
			return err
		}},
		{"unterminated element", "<a><b>text</b>", func(p *parser) error {
			_, err := p.parseElement()
			return err
		}},
		{"unknown entity", "&bogus;", func(p *parser) error {
			_, err := p.parseReference()
			return err
		}},
		{"char ref without semicolon", "&#65", func(p *parser) error {
			_, err := p.parseReference()
			return err
		}},
		{"unterminated comment", "<!-- x -", func(p *parser) error {
			_, err := p.parseComment()
			return err
		}},
		{"unterminated cdata", "<![CDATA[abc]]", func(p *parser) error {
			return p.parseCDSect()
		}},
		{"reserved pi target", "<?xml version='1.0'?>", func(p *parser) error {
			return p.parsePI()
		}},
		{"attribute without value", "b=", func(p *parser) error {
			return p.parseAttribute(nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.input)
			if err := tt.parse(p); err == nil {
				t.Fatal("expected an error")
			}
			if got := p.cur.Offset(); got != 0 {
				t.Errorf("Offset = %d, want 0", got)
			}
			if got := p.text.len(); got != 0 {
				t.Errorf("pending text = %d runes, want 0", got)
			}
		})
	}
}

func TestParseReferenceValues(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"&#65;", 'A'},
		{"&#x41;", 'A'},
		{"&#x1F600;", '😀'},
		{"&amp;", '&'},
		{"&lt;", '<'},
		{"&gt;", '>'},
		{"&apos;", '\''},
		{"&quot;", '"'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			got, err := p.parseReference()
			if err != nil {
				t.Fatalf("parseReference() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseReference() = %q, want %q", got, tt.want)
			}
			if !p.cur.Ended() {
				t.Errorf("Offset = %d, want end of input", p.cur.Offset())
			}
		})
	}
}

func TestParseCDSectKeepsTextPending(t *testing.T) {
	p := newTestParser("<![CDATA[a<b]]>")
	if err := p.parseCDSect(); err != nil {
		t.Fatal(err)
	}
	if got := p.text.flush(0); got != "a<b" {
		t.Errorf("pending text = %q, want %q", got, "a<b")
	}
}

func TestParseCharDataStops(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abc<d", "abc"},
		{"abc&amp;", "abc"},
		{"a]]>b", "a"},
		{"a]b", "a]b"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			p.parseCharData()
			if got := p.text.flush(0); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextBufferFlushAboveMark(t *testing.T) {
	var b textBuffer
	b.append([]rune("outer")...)
	mark := b.len()
	b.append([]rune("inner")...)

	if got := b.flush(mark); got != "inner" {
		t.Errorf("flush(mark) = %q, want %q", got, "inner")
	}
	if got := b.flush(mark); got != "" {
		t.Errorf("second flush(mark) = %q, want empty", got)
	}
	if got := b.flush(0); got != "outer" {
		t.Errorf("flush(0) = %q, want %q", got, "outer")
	}
}

func TestFurthestErrorWins(t *testing.T) {
	p := newTestParser("<a><b>")
	near := p.errorAt(1, Structural, "near")
	far := p.errorAt(4, Lexical, "far")
	p.errorAt(2, Structural, "between")

	got := p.report(near)
	if got != far {
		t.Fatalf("report() = %v, want %v", got, far)
	}
	perr := got.(*Error)
	if perr.Line != 1 || perr.Column != 5 {
		t.Errorf("position = %d:%d, want 1:5", perr.Line, perr.Column)
	}
}

func TestDepthLimitIsNotReplaced(t *testing.T) {
	p := newTestParser("<a>")
	p.errorAt(3, Structural, "far")
	limit := p.errorAt(0, Limit, "too deep")

	if got := p.report(limit); got != limit {
		t.Errorf("report() = %v, want %v", got, limit)
	}
}
