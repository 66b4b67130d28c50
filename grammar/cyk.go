package grammar

import (
	"fmt"

	"github.com/geange/automaton/v2"
)

type binaryRule struct {
	lhs, left, right Symbol
}

// CYK reports whether word is derivable from the start symbol.
//
// The table cell T[i][j] holds every nonterminal deriving word[i:j]. Cells of length one come
// from the rules A -> a; longer spans are filled shortest first, adding A to T[i][j] whenever some
// split i < k < j and rule A -> B C have B in T[i][k] and C in T[k][j]. The word is accepted iff
// S is in T[0][n]. This costs O(n³ · |P|).
//
// A grammar not in normal form is normalized first (see ToNormalForm). Normal form has no empty
// rules, so the empty word is never accepted. A symbol outside the terminal set fails with
// ErrInvalidSymbol rather than simply not deriving.
func (g *Grammar) CYK(word Word) (bool, error) {
	for i, s := range word {
		if !g.terminals.Has(s) {
			return false, fmt.Errorf("%w: symbol %d (%s) not in A = %v", automaton.ErrInvalidSymbol, i, s, g.terminals)
		}
	}
	n := len(word)
	if n == 0 {
		return false, nil
	}

	cnf := g
	if !g.IsNormalForm() {
		var err error
		if cnf, err = g.ToNormalForm(); err != nil {
			return false, err
		}
	}

	units := make(map[Symbol][]Symbol)
	var binary []binaryRule
	for lhs, rules := range cnf.productions {
		for _, rhs := range rules {
			switch len(rhs) {
			case 1:
				units[rhs[0]] = append(units[rhs[0]], lhs)
			case 2:
				binary = append(binary, binaryRule{lhs: lhs, left: rhs[0], right: rhs[1]})
			}
		}
	}

	table := make([][]automaton.Set[Symbol], n)
	for i := range table {
		table[i] = make([]automaton.Set[Symbol], n+1)
		for j := i + 1; j <= n; j++ {
			table[i][j] = automaton.Of[Symbol]()
		}
	}

	for i, s := range word {
		table[i][i+1].Add(units[s]...)
	}
	for span := 2; span <= n; span++ {
		for i := 0; i+span <= n; i++ {
			j := i + span
			cell := table[i][j]
			for k := i + 1; k < j; k++ {
				left, right := table[i][k], table[k][j]
				if len(left) == 0 || len(right) == 0 {
					continue
				}
				for _, r := range binary {
					if left.Has(r.left) && right.Has(r.right) {
						cell.Add(r.lhs)
					}
				}
			}
		}
	}
	return table[0][n].Has(cnf.start), nil
}

// CYKString is CYK with each character of s read as one symbol.
func (g *Grammar) CYKString(s string) (bool, error) {
	return g.CYK(automaton.ParseWord(s))
}
