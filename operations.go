package automaton

import (
	"fmt"
)

// Join builds the product of a and b. A pair (p, q) moves on symbol s only when both δa(p, s) and
// δb(q, s) are defined, so a word that gets either operand stuck also gets the product stuck. A
// pair is final iff combine(p ∈ Fa, q ∈ Fb). Both operands must share one alphabet.
//
// The full cross product is built; use RemoveUnreachableStates to prune it.
func Join[L, R comparable](a *DFA[L], b *DFA[R], combine func(inA, inB bool) bool, opts ...Option) (*DFA[Pair[L, R]], error) {
	if !a.alphabet.Equal(b.alphabet) {
		return nil, fmt.Errorf("%w: A = %v != A = %v", ErrInvariantViolation, a.alphabet, b.alphabet)
	}

	states := make(Set[Pair[L, R]], len(a.states)*len(b.states))
	final := make(Set[Pair[L, R]])
	for p := range a.states {
		for q := range b.states {
			pq := PairOf(p, q)
			states.Add(pq)
			if combine(a.final.Has(p), b.final.Has(q)) {
				final.Add(pq)
			}
		}
	}

	o := newOptions(append(a.opts.derive(a.opts.name+" × "+b.opts.name), opts...)...)
	m, err := newDFA(states, a.alphabet, PairOf(a.start, b.start), final, o)
	if err != nil {
		return nil, err
	}
	for ka, ta := range a.delta {
		for q := range b.states {
			tb, ok := b.delta[edgeKey[R]{q, ka.symbol}]
			if !ok {
				continue
			}
			m.delta[edgeKey[Pair[L, R]]{PairOf(ka.state, q), ka.symbol}] = PairOf(ta, tb)
		}
	}
	o.logger.Debug("product built",
		"name", o.name, "states", len(states), "final", len(final), "transitions", len(m.delta))
	return m, nil
}

// Union accepts the words accepted by a or b.
func Union[L, R comparable](a *DFA[L], b *DFA[R], opts ...Option) (*DFA[Pair[L, R]], error) {
	return Join(a, b, func(x, y bool) bool { return x || y }, opts...)
}

// Intersect accepts the words accepted by both a and b.
func Intersect[L, R comparable](a *DFA[L], b *DFA[R], opts ...Option) (*DFA[Pair[L, R]], error) {
	return Join(a, b, func(x, y bool) bool { return x && y }, opts...)
}

// Complement returns a DFA over the same transitions with final set Q∖F. A partial DFA rejects
// stuck words whichever states are final, so the result would not be a complement; d must be
// total. Use Totalize first when it is not.
func (d *DFA[S]) Complement() (*DFA[S], error) {
	if !d.IsTotal() {
		return nil, fmt.Errorf("%w: complement of %s requires a total transition function", ErrInvariantViolation, d.opts.name)
	}
	c, err := newDFA(d.states, d.alphabet, d.start, d.states.Difference(d.final), newOptions(d.opts.derive(d.opts.name+".complement")...))
	if err != nil {
		return nil, err
	}
	for k, to := range d.delta {
		c.delta[k] = to
	}
	return c, nil
}

// Totalize returns a copy of d in which every undefined δ(q, s) goes to sink, a fresh non-final
// state looping on every symbol. A DFA that is already total is copied unchanged.
func (d *DFA[S]) Totalize(sink S) (*DFA[S], error) {
	if d.IsTotal() {
		return d.Clone(), nil
	}
	if d.states.Has(sink) {
		return nil, fmt.Errorf("%w: sink %s already in Q", ErrInvariantViolation, label(sink))
	}
	t := d.Clone()
	t.addState(sink, false)
	for q := range t.states {
		for s := range t.alphabet {
			k := edgeKey[S]{q, s}
			if _, ok := t.delta[k]; !ok {
				t.delta[k] = sink
			}
		}
	}
	return t, nil
}

// reachable returns the states reachable from the start state along defined transitions.
func (d *DFA[S]) reachable() Set[S] {
	u := NewUniverse(d.states)
	seen := u.newBits()
	seen.Set(u.index[d.start])

	stack := []S{d.start}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for s := range d.alphabet {
			to, ok := d.delta[edgeKey[S]{q, s}]
			if !ok {
				continue
			}
			if i := u.index[to]; !seen.Test(i) {
				seen.Set(i)
				stack = append(stack, to)
			}
		}
	}
	return u.freeze(seen).Set()
}

// RemoveUnreachableStates deletes, in place, every state a depth-first walk from the start state
// never visits, together with its transitions. The start state is always visited.
func (d *DFA[S]) RemoveUnreachableStates() *DFA[S] {
	visited := d.reachable()
	removed := 0
	for q := range d.states.Difference(visited) {
		d.dropState(q)
		removed++
	}
	d.opts.logger.Debug("removed unreachable states", "name", d.opts.name, "removed", removed, "kept", len(d.states))
	return d
}

// IsEmpty reports whether d accepts no word at all.
func (d *DFA[S]) IsEmpty() bool {
	if d.final.Has(d.start) {
		return false
	}
	return !d.reachable().Intersects(d.final)
}
