package scan

type Match int

const (
	No Match = iota
	Yes
)

func (m Match) String() string {
	if m == Yes {
		return "Yes"
	}
	return "No"
}

// Pattern is anything the cursor can test for at its current offset.
// match returns the number of runes matched, or -1.
type Pattern interface {
	match(input []rune, pos int) int
}

type literal []rune

// Lit matches s exactly.
func Lit(s string) Pattern {
	return literal(s)
}

func (l literal) match(input []rune, pos int) int {
	if pos+len(l) > len(input) {
		return -1
	}
	for i, r := range l {
		if input[pos+i] != r {
			return -1
		}
	}
	return len(l)
}

type folded []rune

// Fold matches s ignoring ASCII letter case.
func Fold(s string) Pattern {
	return folded(s)
}

func (f folded) match(input []rune, pos int) int {
	if pos+len(f) > len(input) {
		return -1
	}
	for i, r := range f {
		if lowerASCII(input[pos+i]) != lowerASCII(r) {
			return -1
		}
	}
	return len(f)
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// EqualFold reports whether a and b are equal ignoring ASCII letter case.
func EqualFold(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	return folded(rb).match(ra, 0) == len(ra)
}

type oneOrMore struct {
	class Class
}

func OneOrMore(c Class) Pattern {
	return oneOrMore{class: c}
}

func (o oneOrMore) match(input []rune, pos int) int {
	n := 0
	for pos+n < len(input) && o.class.Contains(input[pos+n]) {
		n++
	}
	if n == 0 {
		return -1
	}
	return n
}

type sequence []Pattern

// Seq matches each pattern in turn.
func Seq(patterns ...Pattern) Pattern {
	return sequence(patterns)
}

func (s sequence) match(input []rune, pos int) int {
	total := 0
	for _, p := range s {
		n := p.match(input, pos+total)
		if n < 0 {
			return -1
		}
		total += n
	}
	return total
}
