package scan

import (
	"testing"
)

func TestCursorSkipAndAhead(t *testing.T) {
	c := NewString("<!--x-->")

	if !c.Ahead(Lit("<!--")) {
		t.Fatal("Ahead(<!--) = false, want true")
	}
	if c.Offset() != 0 {
		t.Errorf("Ahead moved the cursor to %d", c.Offset())
	}
	if c.Match(Lit("<?")) != No {
		t.Errorf("Match(<?) = Yes, want No")
	}
	if c.Skip(Lit("<?")) {
		t.Errorf("Skip(<?) = true, want false")
	}
	if c.Offset() != 0 {
		t.Errorf("failed Skip moved the cursor to %d", c.Offset())
	}
	if !c.Skip(Lit("<!--")) {
		t.Fatal("Skip(<!--) = false, want true")
	}
	if c.Offset() != 4 {
		t.Errorf("Offset = %d, want 4", c.Offset())
	}
	if got := c.Next(); got != 'x' {
		t.Errorf("Next = %q, want 'x'", got)
	}
}

func TestCursorEnded(t *testing.T) {
	c := NewString("a")
	if c.Ended() {
		t.Fatal("Ended = true on fresh cursor")
	}
	c.Next()
	if !c.Ended() {
		t.Fatal("Ended = false after consuming all input")
	}
	if c.Curr() != EOF {
		t.Errorf("Curr = %q, want EOF", c.Curr())
	}
	if c.Next() != EOF {
		t.Errorf("Next past end did not return EOF")
	}
	if c.Offset() != 1 {
		t.Errorf("Next past end moved the cursor to %d", c.Offset())
	}
}

func TestCursorToken(t *testing.T) {
	tests := []struct {
		input string
		class Class
		want  string
		rest  rune
	}{
		{"   x", Whitespace, "   ", 'x'},
		{"abc-1.d e", NameChar, "abc-1.d", ' '},
		{"1a", NameStartChar, "", '1'},
		{"ff0Z", HexDigit, "ff0", 'Z'},
		{"", Digit, "", EOF},
		{"héllo wörld", NameChar, "héllo", ' '},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := NewString(tt.input)
			if got := c.Token(tt.class); got != tt.want {
				t.Errorf("Token(%s) = %q, want %q", tt.class, got, tt.want)
			}
			if c.Curr() != tt.rest {
				t.Errorf("Curr = %q, want %q", c.Curr(), tt.rest)
			}
		})
	}
}

func TestCursorPatterns(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pattern Pattern
		want    int
	}{
		{"fold", "<?XmL ", Fold("<?xml"), 5},
		{"fold mismatch", "<?xmm", Fold("<?xml"), 0},
		{"one or more", " \t\nx", OneOrMore(Whitespace), 3},
		{"one or more empty", "x", OneOrMore(Whitespace), 0},
		{"seq", "<?xml version", Seq(Lit("<?xml"), Whitespace), 6},
		{"seq short", "<?xml", Seq(Lit("<?xml"), Whitespace), 0},
		{"class", "a", NameStartChar, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewString(tt.input)
			ok := c.Skip(tt.pattern)
			if ok != (tt.want > 0) {
				t.Fatalf("Skip = %v, want %v", ok, tt.want > 0)
			}
			if c.Offset() != tt.want {
				t.Errorf("Offset = %d, want %d", c.Offset(), tt.want)
			}
		})
	}
}

func TestRollbackPointRestores(t *testing.T) {
	c := NewString("abcdef")
	c.Next()

	func() {
		rb := c.RollbackPoint()
		defer rb.Release()
		c.Next()
		c.Next()
	}()

	if c.Offset() != 1 {
		t.Errorf("Offset = %d after rollback, want 1", c.Offset())
	}
}

func TestRollbackPointDisarm(t *testing.T) {
	c := NewString("abcdef")

	func() {
		rb := c.RollbackPoint()
		defer rb.Release()
		c.Next()
		c.Next()
		rb.Disarm()
	}()

	if c.Offset() != 2 {
		t.Errorf("Offset = %d after disarm, want 2", c.Offset())
	}
}

func TestRollbackPointRearm(t *testing.T) {
	c := NewString("&bogus;")

	func() {
		rb := c.RollbackPoint()
		defer rb.Release()
		c.Token(NameChar)
		c.Skip(Lit("&"))
		c.Token(NameChar)
		rb.Disarm()
		rb.Arm()
	}()

	if c.Offset() != 0 {
		t.Errorf("Offset = %d after re-arm, want 0", c.Offset())
	}
}

func TestRollbackPointNested(t *testing.T) {
	c := NewString("abcdef")

	outer := c.RollbackPoint()
	c.Next()
	inner := c.RollbackPoint()
	c.Next()
	if inner.Offset() < outer.Offset() {
		t.Fatalf("inner offset %d < outer offset %d", inner.Offset(), outer.Offset())
	}
	inner.Disarm()
	inner.Release()
	if c.Offset() != 2 {
		t.Errorf("Offset = %d after inner commit, want 2", c.Offset())
	}
	outer.Release()
	if c.Offset() != 0 {
		t.Errorf("Offset = %d after outer rollback, want 0", c.Offset())
	}
}

func TestRollbackPointReleaseTwice(t *testing.T) {
	c := NewString("abc")
	rb := c.RollbackPoint()
	c.Next()
	rb.Release()
	c.Next()
	rb.Release()
	if c.Offset() != 1 {
		t.Errorf("Offset = %d, second Release must be a no-op", c.Offset())
	}
}

func TestRollbackPointOutOfOrderPanics(t *testing.T) {
	c := NewString("abc")
	outer := c.RollbackPoint()
	_ = c.RollbackPoint()

	defer func() {
		if recover() == nil {
			t.Error("releasing the outer point first did not panic")
		}
	}()
	outer.Release()
}

func TestRollbackPointOnPanic(t *testing.T) {
	c := NewString("abc")

	func() {
		defer func() { recover() }()
		rb := c.RollbackPoint()
		defer rb.Release()
		c.Next()
		panic("boom")
	}()

	if c.Offset() != 0 {
		t.Errorf("Offset = %d after panic, want 0", c.Offset())
	}
}

func TestCursorPosition(t *testing.T) {
	c := NewString("a\nbc\r\nd")
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{4, 2, 3},
		{6, 3, 1},
		{7, 3, 2},
	}

	for _, tt := range tests {
		pos := c.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold("XmL", "xml") {
		t.Error("EqualFold(XmL, xml) = false")
	}
	if EqualFold("xmls", "xml") {
		t.Error("EqualFold(xmls, xml) = true")
	}
}
