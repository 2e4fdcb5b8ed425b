package grammar

import (
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Position represents a location in the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

const (
	EOF   = "EOF"
	Error = "ERROR"
)

const noMatch = -1

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input with the lexical productions of an EBNF grammar.
// At every offset the longest match among the token productions wins; on
// a tie the production declared first wins.
type Lexer struct {
	grammar  ebnf.Grammar
	tokens   []string
	input    []rune
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length or noMatch
	visiting map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer producing the tokens listed by
// TokenProductions.
func NewLexer(grammar ebnf.Grammar, input []rune, filename string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		tokens:   TokenProductions(grammar),
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// TokenProductions returns the lexical productions referenced directly by
// structural ones, in declaration order.
func TokenProductions(grammar ebnf.Grammar) []string {
	seen := make(map[string]bool)
	for name, prod := range grammar {
		if isLexical(name) {
			continue
		}
		collectLexical(prod.Expr, seen)
	}

	var names []string
	for name := range seen {
		if prod, ok := grammar[name]; ok && prod.Expr != nil {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return grammar[names[i]].Pos().Offset < grammar[names[j]].Pos().Offset
	})
	return names
}

func collectLexical(expr ebnf.Expression, seen map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectLexical(x, seen)
		}
	case ebnf.Sequence:
		for _, x := range e {
			collectLexical(x, seen)
		}
	case *ebnf.Group:
		collectLexical(e.Body, seen)
	case *ebnf.Option:
		collectLexical(e.Body, seen)
	case *ebnf.Repetition:
		collectLexical(e.Body, seen)
	case *ebnf.Name:
		if isLexical(e.String) {
			seen[e.String] = true
		}
	}
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// NextToken returns the next token from the input. A rune that starts no
// token is returned as a single-rune ERROR token. At the end of the input
// it returns an EOF token and io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	// Lengths cut short by cycle detection must not leak into the next token.
	l.memo = make(map[memoKey]int)

	var bestKind string
	bestLen := 0
	for _, name := range l.tokens {
		l.visiting = make(map[memoKey]bool)
		if n := l.matchName(name, startOffset); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		return Token{
			Kind:     Error,
			Literal:  string(l.advance()),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// match returns the number of runes expr matches at offset, or noMatch.
// Repetitions and options are greedy and never backtrack.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return l.matchToken(e.String, offset)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		return max(l.match(e.Body, offset), 0)

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)

	default:
		return noMatch
	}
}

// matchName matches a named production with memoization and cycle
// detection.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		return result
	}

	// A production reached again at the same offset is left recursive.
	if l.visiting[key] {
		return noMatch
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	result := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

func (l *Lexer) matchToken(token string, offset int) int {
	runes := []rune(token)
	if offset+len(runes) > len(l.input) {
		return noMatch
	}
	for i, r := range runes {
		if l.input[offset+i] != r {
			return noMatch
		}
	}
	return len(runes)
}

// matchRange matches a single rune in a range such as "a" … "z".
func (l *Lexer) matchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return noMatch
	}
	lo, n := utf8.DecodeRuneInString(begin)
	if n != len(begin) {
		return noMatch
	}
	hi, n := utf8.DecodeRuneInString(end)
	if n != len(end) {
		return noMatch
	}
	if r := l.input[offset]; r >= lo && r <= hi {
		return 1
	}
	return noMatch
}

// Tokenize reads all tokens from input. The last token is EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}
