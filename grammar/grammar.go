// Package grammar stores context-free grammars and recognizes their languages with CYK.
package grammar

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/geange/automaton/v2"
)

type (
	Symbol = automaton.Symbol
	Word   = automaton.Word
)

// Production is one rule Lhs -> Rhs. An empty Rhs derives the empty word.
type Production struct {
	Lhs Symbol
	Rhs []Symbol
}

func (p Production) String() string {
	return string(p.Lhs) + " -> " + rhsString(p.Rhs)
}

func rhsString(rhs []Symbol) string {
	if len(rhs) == 0 {
		return "ε"
	}
	return automaton.Word(rhs).String()
}

func rhsKey(rhs []Symbol) string {
	parts := make([]string, len(rhs))
	for i, s := range rhs {
		parts[i] = string(s)
	}
	return strings.Join(parts, "\x00")
}

type options struct {
	name   string
	logger *slog.Logger
}

// Option configures a Grammar.
type Option func(*options)

func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger routes normalization diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Grammar is a context-free grammar G = (N, A, P, S). Productions of any shape may be stored;
// only the recognizer cares about normal form.
type Grammar struct {
	opts         *options
	nonterminals automaton.Set[Symbol]
	terminals    automaton.Set[Symbol]
	start        Symbol
	productions  map[Symbol]map[string][]Symbol
}

// New creates a grammar without productions. N and A must be disjoint, neither may contain
// Epsilon, and start must be in N.
func New(nonterminals, terminals automaton.Set[Symbol], start Symbol, opts ...Option) (*Grammar, error) {
	o := &options{name: "grammar", logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}
	if nonterminals.Has(automaton.Epsilon) || terminals.Has(automaton.Epsilon) {
		return nil, fmt.Errorf("%w: epsilon cannot be a grammar symbol", automaton.ErrInvalidSymbol)
	}
	if !nonterminals.Has(start) {
		return nil, fmt.Errorf("%w: S = %s not in N = %v", automaton.ErrInvariantViolation, start, nonterminals)
	}
	if nonterminals.Intersects(terminals) {
		return nil, fmt.Errorf("%w: N = %v and A = %v overlap", automaton.ErrInvariantViolation, nonterminals, terminals)
	}
	return &Grammar{
		opts:         o,
		nonterminals: nonterminals.Clone(),
		terminals:    terminals.Clone(),
		start:        start,
		productions:  make(map[Symbol]map[string][]Symbol),
	}, nil
}

func (g *Grammar) Name() string {
	return g.opts.name
}

func (g *Grammar) Start() Symbol {
	return g.start
}

func (g *Grammar) Nonterminals() automaton.Set[Symbol] {
	return g.nonterminals.Clone()
}

func (g *Grammar) Terminals() automaton.Set[Symbol] {
	return g.terminals.Clone()
}

// AddProduction adds lhs -> rhs. lhs must be a nonterminal and every rhs symbol must belong to
// N ∪ A.
func (g *Grammar) AddProduction(lhs Symbol, rhs ...Symbol) error {
	if !g.nonterminals.Has(lhs) {
		return fmt.Errorf("%w: %s not in N = %v", automaton.ErrInvalidSymbol, lhs, g.nonterminals)
	}
	for _, s := range rhs {
		if !g.nonterminals.Has(s) && !g.terminals.Has(s) {
			return fmt.Errorf("%w: %s not in N ∪ A", automaton.ErrInvalidSymbol, s)
		}
	}
	g.add(lhs, rhs)
	return nil
}

// AddProductionString adds lhs -> rhs reading each character of rhs as one symbol, so
// AddProductionString("S", "aSb") adds S -> a S b.
func (g *Grammar) AddProductionString(lhs Symbol, rhs string) error {
	return g.AddProduction(lhs, automaton.ParseWord(rhs)...)
}

func (g *Grammar) add(lhs Symbol, rhs []Symbol) {
	rules, ok := g.productions[lhs]
	if !ok {
		rules = make(map[string][]Symbol)
		g.productions[lhs] = rules
	}
	rules[rhsKey(rhs)] = append([]Symbol(nil), rhs...)
}

// RemoveProduction discards lhs -> rhs if present. The nonterminal keeps an (empty) entry.
func (g *Grammar) RemoveProduction(lhs Symbol, rhs ...Symbol) {
	rules, ok := g.productions[lhs]
	if !ok {
		return
	}
	delete(rules, rhsKey(rhs))
}

// RemoveProductionString is RemoveProduction with rhs read one character per symbol.
func (g *Grammar) RemoveProductionString(lhs Symbol, rhs string) {
	g.RemoveProduction(lhs, automaton.ParseWord(rhs)...)
}

func (g *Grammar) NumProductions() int {
	total := 0
	for _, rules := range g.productions {
		total += len(rules)
	}
	return total
}

// ProductionsOf returns the rules for lhs ordered by right-hand side.
func (g *Grammar) ProductionsOf(lhs Symbol) []Production {
	rules := g.productions[lhs]
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Production, 0, len(keys))
	for _, k := range keys {
		out = append(out, Production{Lhs: lhs, Rhs: append([]Symbol(nil), rules[k]...)})
	}
	return out
}

// Productions returns every rule, start symbol first, then by nonterminal.
func (g *Grammar) Productions() []Production {
	var out []Production
	for _, lhs := range g.lhsOrder() {
		out = append(out, g.ProductionsOf(lhs)...)
	}
	return out
}

func (g *Grammar) lhsOrder() []Symbol {
	order := make([]Symbol, 0, len(g.productions))
	for lhs := range g.productions {
		if lhs != g.start {
			order = append(order, lhs)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	if _, ok := g.productions[g.start]; ok {
		order = append([]Symbol{g.start}, order...)
	}
	return order
}

// String prints one line per nonterminal with rules, "A -> x | y", or "A -> ø" once every rule
// for A has been removed.
func (g *Grammar) String() string {
	lines := make([]string, 0, len(g.productions))
	for _, lhs := range g.lhsOrder() {
		rules := g.ProductionsOf(lhs)
		if len(rules) == 0 {
			lines = append(lines, string(lhs)+" -> ø")
			continue
		}
		alts := make([]string, len(rules))
		for i, p := range rules {
			alts[i] = rhsString(p.Rhs)
		}
		lines = append(lines, string(lhs)+" -> "+strings.Join(alts, " | "))
	}
	return strings.Join(lines, "\n")
}

// IsNormalForm reports whether every rule is A -> a with a terminal or A -> B C with B and C
// nonterminals.
func (g *Grammar) IsNormalForm() bool {
	for _, rules := range g.productions {
		for _, rhs := range rules {
			if !g.isNormal(rhs) {
				return false
			}
		}
	}
	return true
}

func (g *Grammar) isNormal(rhs []Symbol) bool {
	switch len(rhs) {
	case 1:
		return g.terminals.Has(rhs[0])
	case 2:
		return g.nonterminals.Has(rhs[0]) && g.nonterminals.Has(rhs[1])
	}
	return false
}

// Clone returns an independent copy.
func (g *Grammar) Clone() *Grammar {
	c := &Grammar{
		opts:         g.opts,
		nonterminals: g.nonterminals.Clone(),
		terminals:    g.terminals.Clone(),
		start:        g.start,
		productions:  make(map[Symbol]map[string][]Symbol, len(g.productions)),
	}
	for lhs, rules := range g.productions {
		c.productions[lhs] = make(map[string][]Symbol, len(rules))
		for k, rhs := range rules {
			c.productions[lhs][k] = rhs
		}
	}
	return c
}
