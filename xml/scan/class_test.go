package scan

import "testing"

func TestClassMembership(t *testing.T) {
	tests := []struct {
		class Class
		in    []rune
		out   []rune
	}{
		{Whitespace, []rune{' ', '\t', '\r', '\n'}, []rune{'a', 0xA0, 0x2003, EOF}},
		{NameStartChar, []rune{':', 'A', '_', 'z', 0xC0, 0xF8, 0x37F, 0x3001, 0x10000}, []rune{'-', '.', '1', 0xB7, 0xD7, 0x300, 0x37E, 0xF0000}},
		{NameChar, []rune{'-', '.', '0', '9', 0xB7, 0x300, 0x36F, 0x203F, 0x2040, 'a'}, []rune{' ', '<', '>', '/', '=', 0xD7, 0x2041}},
		{Char, []rune{'\t', '\n', '\r', ' ', 0xD7FF, 0xE000, 0xFFFD, 0x10FFFF}, []rune{0x00, 0x08, 0x0B, 0xD800, 0xFFFE, 0xFFFF}},
		{CharData, []rune{'a', '>', ']', 0x20AC}, []rune{'<', '&', 0x01}},
		{Digit, []rune{'0', '9'}, []rune{'a', 0x0660}},
		{HexDigit, []rune{'0', 'a', 'F'}, []rune{'g', 'G', 'x'}},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			for _, r := range tt.in {
				if !tt.class.Contains(r) {
					t.Errorf("%s.Contains(%U) = false, want true", tt.class, r)
				}
			}
			for _, r := range tt.out {
				if tt.class.Contains(r) {
					t.Errorf("%s.Contains(%U) = true, want false", tt.class, r)
				}
			}
		})
	}
}

func TestNameStartIsSubsetOfNameChar(t *testing.T) {
	for r := rune(0); r <= 0x3100; r++ {
		if NameStartChar.Contains(r) && !NameChar.Contains(r) {
			t.Fatalf("%U is a name start char but not a name char", r)
		}
	}
}
