package scan

import (
	"unicode"
	"unicode/utf8"
)

// Class is a set of code points. A Class is also a Pattern matching a
// single rune.
type Class struct {
	name  string
	ascii [utf8.RuneSelf]bool
	table *unicode.RangeTable
	not   []rune
}

func newClass(name string, table *unicode.RangeTable, not ...rune) Class {
	c := Class{name: name, table: table, not: not}
	for r := rune(0); r < utf8.RuneSelf; r++ {
		c.ascii[r] = c.slowContains(r)
	}
	return c
}

func (c Class) slowContains(r rune) bool {
	for _, n := range c.not {
		if r == n {
			return false
		}
	}
	return unicode.Is(c.table, r)
}

func (c Class) Contains(r rune) bool {
	if r < 0 {
		return false
	}
	if r < utf8.RuneSelf {
		return c.ascii[r]
	}
	return c.slowContains(r)
}

func (c Class) String() string {
	return c.name
}

func (c Class) match(input []rune, pos int) int {
	if pos < len(input) && c.Contains(input[pos]) {
		return 1
	}
	return -1
}

// XML 1.0 (fifth edition) §2.2 and §2.3.
var (
	whitespaceTable = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x09, Hi: 0x0A, Stride: 1},
			{Lo: 0x0D, Hi: 0x0D, Stride: 1},
			{Lo: 0x20, Hi: 0x20, Stride: 1},
		},
		LatinOffset: 3,
	}

	charTable = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x09, Hi: 0x0A, Stride: 1},
			{Lo: 0x0D, Hi: 0x0D, Stride: 1},
			{Lo: 0x20, Hi: 0xD7FF, Stride: 1},
			{Lo: 0xE000, Hi: 0xFFFD, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10000, Hi: 0x10FFFF, Stride: 1},
		},
		LatinOffset: 2,
	}

	nameStartTable = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: ':', Hi: ':', Stride: 1},
			{Lo: 'A', Hi: 'Z', Stride: 1},
			{Lo: '_', Hi: '_', Stride: 1},
			{Lo: 'a', Hi: 'z', Stride: 1},
			{Lo: 0xC0, Hi: 0xD6, Stride: 1},
			{Lo: 0xD8, Hi: 0xF6, Stride: 1},
			{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
			{Lo: 0x370, Hi: 0x37D, Stride: 1},
			{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
			{Lo: 0x200C, Hi: 0x200D, Stride: 1},
			{Lo: 0x2070, Hi: 0x218F, Stride: 1},
			{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
			{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
			{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
			{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
		},
		LatinOffset: 6,
	}

	nameTable = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: '-', Hi: '.', Stride: 1},
			{Lo: '0', Hi: ':', Stride: 1},
			{Lo: 'A', Hi: 'Z', Stride: 1},
			{Lo: '_', Hi: '_', Stride: 1},
			{Lo: 'a', Hi: 'z', Stride: 1},
			{Lo: 0xB7, Hi: 0xB7, Stride: 1},
			{Lo: 0xC0, Hi: 0xD6, Stride: 1},
			{Lo: 0xD8, Hi: 0xF6, Stride: 1},
			{Lo: 0xF8, Hi: 0x37D, Stride: 1},
			{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
			{Lo: 0x200C, Hi: 0x200D, Stride: 1},
			{Lo: 0x203F, Hi: 0x2040, Stride: 1},
			{Lo: 0x2070, Hi: 0x218F, Stride: 1},
			{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
			{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
			{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
			{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
		},
		LatinOffset: 8,
	}

	digitTable = &unicode.RangeTable{
		R16:         []unicode.Range16{{Lo: '0', Hi: '9', Stride: 1}},
		LatinOffset: 1,
	}

	hexDigitTable = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: '0', Hi: '9', Stride: 1},
			{Lo: 'A', Hi: 'F', Stride: 1},
			{Lo: 'a', Hi: 'f', Stride: 1},
		},
		LatinOffset: 3,
	}
)

var (
	Whitespace    = newClass("S", whitespaceTable)
	Char          = newClass("Char", charTable)
	CharData      = newClass("CharData", charTable, '<', '&')
	NameStartChar = newClass("NameStartChar", nameStartTable)
	NameChar      = newClass("NameChar", nameTable)
	Digit         = newClass("Digit", digitTable)
	HexDigit      = newClass("HexDigit", hexDigitTable)
)
