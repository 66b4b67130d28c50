package grammar

import (
	"fmt"

	"github.com/geange/automaton/v2"
)

// ToNormalForm returns an equivalent grammar in Chomsky normal form, except that the empty word
// is dropped from the language: normal form has no rule with an empty right-hand side. The steps
// are the textbook ones applied to a copy:
//
//   - TERM: inside rules of length two or more, terminal a is replaced by a fresh <a> -> a.
//   - BIN: A -> X1 X2 ... Xk becomes a chain of rules with two symbols each.
//   - DEL: rules are duplicated without their nullable symbols, then empty rules are dropped.
//   - UNIT: A -> B is replaced by the non-unit rules of everything B derives by unit steps.
func (g *Grammar) ToNormalForm() (*Grammar, error) {
	c := g.Clone()
	c.opts = &options{name: g.opts.name + ".cnf", logger: g.opts.logger}

	c.replaceTerminals()
	c.binarize()
	c.dropNullable()
	c.dropUnits()

	if !c.IsNormalForm() {
		return nil, fmt.Errorf("%w: %s did not reach normal form", automaton.ErrInvariantViolation, g.opts.name)
	}
	g.opts.logger.Debug("normal form computed",
		"name", g.opts.name, "productions", g.NumProductions(), "normal_productions", c.NumProductions(),
		"nonterminals", len(c.nonterminals))
	return c, nil
}

// fresh returns an unused nonterminal named after base.
func (g *Grammar) fresh(base string) Symbol {
	candidate := Symbol(base)
	for i := 1; g.nonterminals.Has(candidate) || g.terminals.Has(candidate); i++ {
		candidate = Symbol(fmt.Sprintf("%s%d", base, i))
	}
	g.nonterminals.Add(candidate)
	return candidate
}

func (g *Grammar) replaceTerminals() {
	wrappers := make(map[Symbol]Symbol)
	wrap := func(a Symbol) Symbol {
		if nt, ok := wrappers[a]; ok {
			return nt
		}
		nt := g.fresh("<" + string(a) + ">")
		wrappers[a] = nt
		g.add(nt, []Symbol{a})
		return nt
	}

	for _, p := range g.Productions() {
		if len(p.Rhs) < 2 {
			continue
		}
		rhs := make([]Symbol, len(p.Rhs))
		changed := false
		for i, s := range p.Rhs {
			if g.terminals.Has(s) {
				rhs[i] = wrap(s)
				changed = true
			} else {
				rhs[i] = s
			}
		}
		if changed {
			g.RemoveProduction(p.Lhs, p.Rhs...)
			g.add(p.Lhs, rhs)
		}
	}
}

func (g *Grammar) binarize() {
	for _, p := range g.Productions() {
		if len(p.Rhs) <= 2 {
			continue
		}
		g.RemoveProduction(p.Lhs, p.Rhs...)
		lhs := p.Lhs
		rest := p.Rhs
		for len(rest) > 2 {
			next := g.fresh(string(p.Lhs) + "_")
			g.add(lhs, []Symbol{rest[0], next})
			lhs = next
			rest = rest[1:]
		}
		g.add(lhs, rest)
	}
}

// nullable is the least fixpoint of {A | A -> X1...Xk with every Xi nullable}.
func (g *Grammar) nullable() automaton.Set[Symbol] {
	null := automaton.Of[Symbol]()
	for changed := true; changed; {
		changed = false
		for lhs, rules := range g.productions {
			if null.Has(lhs) {
				continue
			}
			for _, rhs := range rules {
				all := true
				for _, s := range rhs {
					if !null.Has(s) {
						all = false
						break
					}
				}
				if all {
					null.Add(lhs)
					changed = true
					break
				}
			}
		}
	}
	return null
}

func (g *Grammar) dropNullable() {
	null := g.nullable()
	if len(null) == 0 {
		return
	}
	for _, p := range g.Productions() {
		// after binarize every rule has at most two symbols
		if len(p.Rhs) == 2 {
			if null.Has(p.Rhs[0]) {
				g.add(p.Lhs, p.Rhs[1:])
			}
			if null.Has(p.Rhs[1]) {
				g.add(p.Lhs, p.Rhs[:1])
			}
		}
	}
	for lhs := range g.productions {
		g.RemoveProduction(lhs)
	}
}

func (g *Grammar) dropUnits() {
	isUnit := func(rhs []Symbol) bool {
		return len(rhs) == 1 && g.nonterminals.Has(rhs[0])
	}

	// reach[A] holds every B with A =>* B by unit rules alone.
	reach := make(map[Symbol]automaton.Set[Symbol], len(g.productions))
	for lhs := range g.productions {
		seen := automaton.Of(lhs)
		work := []Symbol{lhs}
		for len(work) > 0 {
			a := work[len(work)-1]
			work = work[:len(work)-1]
			for _, rhs := range g.productions[a] {
				if isUnit(rhs) && !seen.Has(rhs[0]) {
					seen.Add(rhs[0])
					work = append(work, rhs[0])
				}
			}
		}
		reach[lhs] = seen
	}

	units := make([]Production, 0)
	for _, p := range g.Productions() {
		if isUnit(p.Rhs) {
			units = append(units, p)
		}
	}
	for _, p := range units {
		g.RemoveProduction(p.Lhs, p.Rhs...)
	}
	for lhs, targets := range reach {
		for b := range targets {
			if b == lhs {
				continue
			}
			for _, rhs := range g.productions[b] {
				if !isUnit(rhs) {
					g.add(lhs, rhs)
				}
			}
		}
	}
}
