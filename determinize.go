package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// maxPowersetStates bounds ToDFA whatever the configured limit: subsets are enumerated as uint64
// masks.
const maxPowersetStates = 64

// subsets precomputes δ(q, s) as bitsets over a universe so that subset construction can take
// unions word-at-a-time.
type subsets[S comparable] struct {
	u       *Universe[S]
	symbols []Symbol
	succ    map[edgeKey[uint]]*bitset.BitSet
}

func newSubsets[S comparable](n *NFA[S]) *subsets[S] {
	u := NewUniverse(n.states)
	p := &subsets[S]{
		u:       u,
		symbols: n.alphabet.Slice(),
		succ:    make(map[edgeKey[uint]]*bitset.BitSet, len(n.delta)),
	}
	for k, to := range n.delta {
		p.succ[edgeKey[uint]{u.index[k.state], k.symbol}] = u.Freeze(to).bitset()
	}
	return p
}

func (p *subsets[S]) move(x *bitset.BitSet, s Symbol) *bitset.BitSet {
	next := p.u.newBits()
	for i, ok := x.NextSet(0); ok; i, ok = x.NextSet(i + 1) {
		if succ, found := p.succ[edgeKey[uint]{i, s}]; found {
			next.InPlaceUnion(succ)
		}
	}
	return next
}

// ToDFA runs the powerset construction: the result has one state for every subset of Q (2^|Q|
// of them), start state Q0, a subset final iff it meets F, and δ(X, s) = ⋃ δ(q, s) over q in X.
// Most subsets are usually unreachable; follow with RemoveUnreachableStates, or use Determinize to
// build only the reachable part. Fails with ErrTooComplex when |Q| exceeds the powerset limit.
func (n *NFA[S]) ToDFA() (*DFA[FrozenSet[S]], error) {
	size := len(n.states)
	if size > n.opts.powersetLimit || size >= maxPowersetStates {
		return nil, fmt.Errorf("%w: %d states exceeds powerset limit %d", ErrTooComplex, size, min(n.opts.powersetLimit, maxPowersetStates-1))
	}
	p := newSubsets(n)

	all := make([]FrozenSet[S], 0, 1<<size)
	bits := make([]*bitset.BitSet, 0, 1<<size)
	states := make(Set[FrozenSet[S]], 1<<size)
	final := make(Set[FrozenSet[S]])
	for mask := uint64(0); mask < 1<<size; mask++ {
		b := p.u.newBits()
		for i := uint(0); i < uint(size); i++ {
			if mask&(1<<i) != 0 {
				b.Set(i)
			}
		}
		x := p.u.freeze(b)
		all = append(all, x)
		bits = append(bits, b)
		states.Add(x)
		if x.Intersects(n.final) {
			final.Add(x)
		}
	}

	d, err := newDFA(states, n.alphabet, p.u.Freeze(n.start), final, newOptions(n.opts.derive(n.opts.name+".to_dfa")...))
	if err != nil {
		return nil, err
	}
	for i, x := range all {
		for _, s := range p.symbols {
			d.delta[edgeKey[FrozenSet[S]]{x, s}] = p.u.freeze(p.move(bits[i], s))
		}
	}
	n.opts.logger.Debug("powerset constructed", "name", n.opts.name, "nfa_states", size, "dfa_states", len(states))
	return d, nil
}

// Determinize is the worklist form of subset construction: starting from Q0 it only creates the
// subsets that are reachable. The empty subset appears when some word gets every branch stuck, and
// the result is total.
func (n *NFA[S]) Determinize() (*DFA[FrozenSet[S]], error) {
	p := newSubsets(n)

	startBits := p.u.Freeze(n.start).bitset()
	start := p.u.freeze(startBits)
	states := Of(start)
	final := make(Set[FrozenSet[S]])
	delta := make(map[edgeKey[FrozenSet[S]]]FrozenSet[S])

	worklist := []*bitset.BitSet{startBits}
	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		x := p.u.freeze(b)
		if x.Intersects(n.final) {
			final.Add(x)
		}
		for _, s := range p.symbols {
			nb := p.move(b, s)
			y := p.u.freeze(nb)
			delta[edgeKey[FrozenSet[S]]{x, s}] = y
			if !states.Has(y) {
				states.Add(y)
				worklist = append(worklist, nb)
			}
		}
	}

	d, err := newDFA(states, n.alphabet, start, final, newOptions(n.opts.derive(n.opts.name+".determinized")...))
	if err != nil {
		return nil, err
	}
	d.delta = delta
	n.opts.logger.Debug("determinized", "name", n.opts.name, "nfa_states", len(n.states), "dfa_states", len(states))
	return d, nil
}
