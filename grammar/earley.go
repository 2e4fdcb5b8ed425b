package grammar

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// symbol is a grammar symbol in a desugared rule. Terminals match a token
// either by kind (a lexical production) or by literal text.
type symbol struct {
	name     string
	terminal bool
	literal  bool
}

func (s symbol) matches(tok Token) bool {
	if s.literal {
		return tok.Literal == s.name
	}
	return tok.Kind == s.name
}

func (s symbol) String() string {
	if s.literal {
		return fmt.Sprintf("%q", s.name)
	}
	return s.name
}

// rule is a plain BNF rule. Options, repetitions and groups of the EBNF
// source are turned into helper nonterminals named "<production>#<n>".
type rule struct {
	lhs string
	rhs []symbol
}

// Recognizer decides whether a token stream is derived from the structural
// productions of a grammar. It runs an Earley parser, so any context-free
// grammar is accepted, including left-recursive and ambiguous ones.
type Recognizer struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
}

// NewRecognizer prepares a recognizer for the structural productions
// reachable from start. Lexical productions are terminals: they match a
// token whose Kind is the production name.
func NewRecognizer(grammar ebnf.Grammar, start string) (*Recognizer, error) {
	if prod, ok := grammar[start]; !ok || prod.Expr == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	if isLexical(start) {
		return nil, fmt.Errorf("start production %q is lexical", start)
	}

	c := &compiler{grammar: grammar, done: make(map[string]bool)}
	if err := c.production(start); err != nil {
		return nil, err
	}

	r := &Recognizer{
		start: start,
		rules: c.rules,
		byLHS: make(map[string][]int),
	}
	for i, rl := range r.rules {
		r.byLHS[rl.lhs] = append(r.byLHS[rl.lhs], i)
	}
	r.computeNullable()
	return r, nil
}

type compiler struct {
	grammar ebnf.Grammar
	rules   []rule
	done    map[string]bool
	fresh   int
}

func (c *compiler) production(name string) error {
	if c.done[name] {
		return nil
	}
	c.done[name] = true

	prod, ok := c.grammar[name]
	if !ok {
		return fmt.Errorf("missing production %s", name)
	}
	alts, err := c.expand(name, prod.Expr)
	if err != nil {
		return err
	}
	for _, rhs := range alts {
		c.rules = append(c.rules, rule{lhs: name, rhs: rhs})
	}
	return nil
}

func (c *compiler) expand(owner string, expr ebnf.Expression) ([][]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return [][]symbol{{}}, nil
	case ebnf.Alternative:
		var alts [][]symbol
		for _, x := range e {
			sub, err := c.expand(owner, x)
			if err != nil {
				return nil, err
			}
			alts = append(alts, sub...)
		}
		return alts, nil
	case ebnf.Sequence:
		rhs := make([]symbol, 0, len(e))
		for _, x := range e {
			sym, err := c.symbol(owner, x)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, sym)
		}
		return [][]symbol{rhs}, nil
	default:
		sym, err := c.symbol(owner, expr)
		if err != nil {
			return nil, err
		}
		return [][]symbol{{sym}}, nil
	}
}

func (c *compiler) symbol(owner string, expr ebnf.Expression) (symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		if isLexical(e.String) {
			return symbol{name: e.String, terminal: true}, nil
		}
		return symbol{name: e.String}, c.production(e.String)

	case *ebnf.Token:
		return symbol{name: e.String, terminal: true, literal: true}, nil

	case *ebnf.Group:
		return c.helper(owner, e.Body, false, false)

	case *ebnf.Option:
		return c.helper(owner, e.Body, true, false)

	case *ebnf.Repetition:
		return c.helper(owner, e.Body, true, true)

	case *ebnf.Range:
		return symbol{}, fmt.Errorf("%s: character range in structural production %s", e.Pos(), owner)

	default:
		return symbol{}, fmt.Errorf("production %s: unsupported expression %T", owner, expr)
	}
}

// helper introduces a nonterminal for body. An optional helper derives the
// empty string; a repeating helper derives body any number of times.
func (c *compiler) helper(owner string, body ebnf.Expression, optional, repeat bool) (symbol, error) {
	c.fresh++
	name := fmt.Sprintf("%s#%d", owner, c.fresh)
	sym := symbol{name: name}

	alts, err := c.expand(owner, body)
	if err != nil {
		return symbol{}, err
	}
	if optional {
		c.rules = append(c.rules, rule{lhs: name})
	}
	for _, rhs := range alts {
		if repeat {
			rhs = append(rhs[:len(rhs):len(rhs)], sym)
		}
		c.rules = append(c.rules, rule{lhs: name, rhs: rhs})
	}
	return sym, nil
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, rl := range r.rules {
			if r.nullable[rl.lhs] {
				continue
			}
			all := true
			for _, sym := range rl.rhs {
				if sym.terminal || !r.nullable[sym.name] {
					all = false
					break
				}
			}
			if all {
				r.nullable[rl.lhs] = true
				changed = true
			}
		}
	}
}

// item is an Earley item: a rule, a dot position in its right-hand side
// and the chart position where recognition of the rule started.
type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

func (r *Recognizer) next(it item) (symbol, bool) {
	rhs := r.rules[it.rule].rhs
	if it.dot >= len(rhs) {
		return symbol{}, false
	}
	return rhs[it.dot], true
}

// SyntaxError reports the first token the grammar could not account for.
type SyntaxError struct {
	Token    Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	var what string
	if e.Token.Kind == EOF {
		what = "unexpected end of input"
	} else {
		what = fmt.Sprintf("unexpected %s %q", e.Token.Kind, e.Token.Literal)
	}
	msg := fmt.Sprintf("%s: %s", e.Token.Position, what)
	if len(e.Expected) > 0 {
		msg += ", expected " + strings.Join(e.Expected, " or ")
	}
	return msg
}

// Recognize reports whether tokens form a sentence of the start
// production. A trailing EOF token is ignored. On failure the error is a
// *SyntaxError for the furthest token reached.
func (r *Recognizer) Recognize(tokens []Token) error {
	end := Token{Kind: EOF}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == EOF {
		end = tokens[n-1]
		tokens = tokens[:n-1]
	} else if n > 0 {
		end.Position = tokens[n-1].Position
	}

	n := len(tokens)
	chart := make([]itemSet, n+1)
	for _, i := range r.byLHS[r.start] {
		chart[0].add(item{rule: i})
	}

	for pos := 0; pos <= n; pos++ {
		// Items are appended while the set is processed.
		for j := 0; j < len(chart[pos].items); j++ {
			it := chart[pos].items[j]
			sym, ok := r.next(it)
			switch {
			case !ok:
				r.complete(chart, pos, it)
			case sym.terminal:
				if pos < n && sym.matches(tokens[pos]) {
					chart[pos+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
			default:
				for _, i := range r.byLHS[sym.name] {
					chart[pos].add(item{rule: i, origin: pos})
				}
				if r.nullable[sym.name] {
					chart[pos].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
			}
		}
	}

	for _, it := range chart[n].items {
		if r.rules[it.rule].lhs == r.start && it.origin == 0 {
			if _, more := r.next(it); !more {
				return nil
			}
		}
	}

	furthest := 0
	for pos := n; pos >= 0; pos-- {
		if len(chart[pos].items) > 0 {
			furthest = pos
			break
		}
	}
	err := &SyntaxError{Token: end, Expected: r.expected(chart[furthest])}
	if furthest < n {
		err.Token = tokens[furthest]
	}
	return err
}

func (r *Recognizer) complete(chart []itemSet, pos int, done item) {
	lhs := r.rules[done.rule].lhs
	// chart[pos] may be the origin set itself when the rule derived the
	// empty string, so iterate by index.
	origin := &chart[done.origin]
	for j := 0; j < len(origin.items); j++ {
		it := origin.items[j]
		if sym, ok := r.next(it); ok && !sym.terminal && sym.name == lhs {
			chart[pos].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}

func (r *Recognizer) expected(set itemSet) []string {
	seen := make(map[string]bool)
	var names []string
	for _, it := range set.items {
		if sym, ok := r.next(it); ok && sym.terminal && !seen[sym.String()] {
			seen[sym.String()] = true
			names = append(names, sym.String())
		}
	}
	sort.Strings(names)
	return names
}
