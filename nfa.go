package automaton

import (
	"fmt"
	"iter"
)

// NFA is a nondeterministic finite automaton: every (state, symbol) row holds a set of successors,
// and there is a set of start states. An empty row is never stored.
type NFA[S comparable] struct {
	automaton[S]
	start Set[S]
	delta map[edgeKey[S]]Set[S]
}

// NewNFA creates an NFA with no transitions. Start and final must be subsets of states; the
// alphabet may not contain Epsilon.
func NewNFA[S comparable](states Set[S], alphabet Set[Symbol], start, final Set[S], opts ...Option) (*NFA[S], error) {
	return newNFA(states, alphabet, start, final, false, newOptions(opts...))
}

func newNFA[S comparable](states Set[S], alphabet Set[Symbol], start, final Set[S], allowEpsilon bool, o *options) (*NFA[S], error) {
	base, err := newAutomaton(states, alphabet, final, allowEpsilon, o)
	if err != nil {
		return nil, err
	}
	if !start.IsSubset(base.states) {
		return nil, fmt.Errorf("%w: Q0 = %v not a subset of Q = %v", ErrInvariantViolation, start, base.states)
	}
	return &NFA[S]{
		automaton: base,
		start:     start.Clone(),
		delta:     make(map[edgeKey[S]]Set[S]),
	}, nil
}

// FromDFA embeds d as an NFA with start set {q0} and singleton successor sets.
func FromDFA[S comparable](d *DFA[S]) *NFA[S] {
	n := &NFA[S]{}
	n.LoadFromDFA(d)
	return n
}

// LoadFromDFA reinitializes n as the trivial embedding of d.
func (n *NFA[S]) LoadFromDFA(d *DFA[S]) {
	n.automaton = automaton[S]{
		opts:     newOptions(d.opts.derive(d.opts.name + ".nfa")...),
		states:   d.states.Clone(),
		alphabet: d.alphabet.Clone(),
		final:    d.final.Clone(),
	}
	n.start = Of(d.start)
	n.delta = make(map[edgeKey[S]]Set[S], len(d.delta))
	for k, to := range d.delta {
		n.delta[k] = Of(to)
	}
}

// Start returns a copy of the start set.
func (n *NFA[S]) Start() Set[S] {
	return n.start.Clone()
}

// AddState adds q, optionally marking it as a start and/or final state.
func (n *NFA[S]) AddState(q S, start, final bool) {
	n.addState(q, final)
	if start {
		n.start.Add(q)
	}
}

// RemoveState deletes q from every set it belongs to and drops every transition touching it.
func (n *NFA[S]) RemoveState(q S) {
	if !n.states.Has(q) {
		return
	}
	n.removeState(q)
	n.start.Remove(q)
	for k, to := range n.delta {
		if k.state == q {
			delete(n.delta, k)
			continue
		}
		to.Remove(q)
		if len(to) == 0 {
			delete(n.delta, k)
		}
	}
}

// AddTransition adds to to the successors of (from, s).
func (n *NFA[S]) AddTransition(from S, s Symbol, to S) error {
	if err := n.checkEdge(from, s, to); err != nil {
		return err
	}
	k := edgeKey[S]{from, s}
	if n.delta[k] == nil {
		n.delta[k] = make(Set[S])
	}
	n.delta[k].Add(to)
	return nil
}

// RemoveTransition discards to from the successors of (from, s), dropping the row once it is
// empty.
func (n *NFA[S]) RemoveTransition(from S, s Symbol, to S) error {
	if err := n.checkEdge(from, s, to); err != nil {
		return err
	}
	k := edgeKey[S]{from, s}
	succ, ok := n.delta[k]
	if !ok {
		return nil
	}
	succ.Remove(to)
	if len(succ) == 0 {
		delete(n.delta, k)
	}
	return nil
}

// Successors returns δ(q, s); the set is empty when no transition is defined.
func (n *NFA[S]) Successors(q S, s Symbol) Set[S] {
	return n.delta[edgeKey[S]{q, s}].Clone()
}

// NumTransitions counts (from, symbol, to) triples.
func (n *NFA[S]) NumTransitions() int {
	total := 0
	for _, to := range n.delta {
		total += len(to)
	}
	return total
}

// Transitions yields every edge in a stable order.
func (n *NFA[S]) Transitions() iter.Seq[Transition[S]] {
	return func(yield func(Transition[S]) bool) {
		for _, q := range n.states.Slice() {
			for _, s := range n.alphabet.Slice() {
				for _, to := range n.delta[edgeKey[S]{q, s}].Slice() {
					if !yield(Transition[S]{From: q, Symbol: s, To: to}) {
						return
					}
				}
			}
		}
	}
}

// ClearTransitions drops every transition, keeping states, alphabet, start and final sets.
func (n *NFA[S]) ClearTransitions() *NFA[S] {
	n.delta = make(map[edgeKey[S]]Set[S])
	return n
}

// move returns ⋃ δ(q, s) over q in x.
func (n *NFA[S]) move(x Set[S], s Symbol) Set[S] {
	next := make(Set[S])
	for q := range x {
		next.AddAll(n.delta[edgeKey[S]{q, s}])
	}
	return next
}

// ExtendedTransition computes δ̂(X, word) one symbol at a time.
func (n *NFA[S]) ExtendedTransition(x Set[S], word Word) (Set[S], error) {
	if !x.IsSubset(n.states) {
		return nil, fmt.Errorf("%w: X = %v not a subset of Q = %v", ErrInvalidState, x, n.states)
	}
	return n.extended(x.Clone(), word), nil
}

func (n *NFA[S]) extended(x Set[S], word Word) Set[S] {
	for _, s := range word {
		if len(x) == 0 {
			break
		}
		x = n.move(x, s)
	}
	return x
}

// Accepts reports whether δ̂(Q0, word) contains a final state.
func (n *NFA[S]) Accepts(word Word) bool {
	return n.extended(n.start.Clone(), word).Intersects(n.final)
}

// Clone returns an independent copy.
func (n *NFA[S]) Clone() *NFA[S] {
	c := &NFA[S]{
		automaton: automaton[S]{
			opts:     n.opts,
			states:   n.states.Clone(),
			alphabet: n.alphabet.Clone(),
			final:    n.final.Clone(),
		},
		start: n.start.Clone(),
		delta: make(map[edgeKey[S]]Set[S], len(n.delta)),
	}
	for k, to := range n.delta {
		c.delta[k] = to.Clone()
	}
	return c
}

// Describe returns the node/edge description a renderer draws.
func (n *NFA[S]) Describe() Graph {
	return describe(n.opts.name, n.states, n.start.Has, n.final, n.Transitions())
}
