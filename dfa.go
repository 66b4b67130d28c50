package automaton

import (
	"fmt"
	"iter"
)

// DFA is a deterministic finite automaton with a partial transition function. A missing
// (state, symbol) entry means the machine is stuck, which rejects the word; it is not an error.
type DFA[S comparable] struct {
	automaton[S]
	start S
	delta map[edgeKey[S]]S
}

// Transition is one edge of a transition table.
type Transition[S comparable] struct {
	From   S
	Symbol Symbol
	To     S
}

// NewDFA creates a DFA with no transitions. Start must be in states and final must be a subset of
// states; the alphabet may not contain Epsilon.
func NewDFA[S comparable](states Set[S], alphabet Set[Symbol], start S, final Set[S], opts ...Option) (*DFA[S], error) {
	return newDFA(states, alphabet, start, final, newOptions(opts...))
}

func newDFA[S comparable](states Set[S], alphabet Set[Symbol], start S, final Set[S], o *options) (*DFA[S], error) {
	base, err := newAutomaton(states, alphabet, final, false, o)
	if err != nil {
		return nil, err
	}
	if !base.states.Has(start) {
		return nil, fmt.Errorf("%w: start %s not in Q = %v", ErrInvariantViolation, label(start), base.states)
	}
	return &DFA[S]{
		automaton: base,
		start:     start,
		delta:     make(map[edgeKey[S]]S),
	}, nil
}

func (d *DFA[S]) Start() S {
	return d.start
}

// AddState adds q to the state set, marking it final if asked. Adding an existing state only
// ever adds the final mark.
func (d *DFA[S]) AddState(q S, final bool) {
	d.addState(q, final)
}

// RemoveState deletes q together with every transition into or out of it. Removing an unknown
// state is a no-op; removing the start state fails.
func (d *DFA[S]) RemoveState(q S) error {
	if !d.states.Has(q) {
		return nil
	}
	if q == d.start {
		return fmt.Errorf("%w: %s is the start state, cannot remove it", ErrInvariantViolation, label(q))
	}
	d.dropState(q)
	return nil
}

// dropState removes q and every transition touching it. q must not be the start state.
func (d *DFA[S]) dropState(q S) {
	d.removeState(q)
	for k, to := range d.delta {
		if k.state == q || to == q {
			delete(d.delta, k)
		}
	}
}

// AddTransition sets δ(from, s) = to, replacing any previous target.
func (d *DFA[S]) AddTransition(from S, s Symbol, to S) error {
	if err := d.checkEdge(from, s, to); err != nil {
		return err
	}
	d.delta[edgeKey[S]{from, s}] = to
	return nil
}

// RemoveTransition deletes δ(from, s) if it is defined.
func (d *DFA[S]) RemoveTransition(from S, s Symbol) error {
	if err := d.checkState(from); err != nil {
		return err
	}
	if err := d.checkSymbol(s); err != nil {
		return err
	}
	delete(d.delta, edgeKey[S]{from, s})
	return nil
}

// Transition looks up δ(q, s).
func (d *DFA[S]) Transition(q S, s Symbol) (S, bool) {
	to, ok := d.delta[edgeKey[S]{q, s}]
	return to, ok
}

func (d *DFA[S]) NumTransitions() int {
	return len(d.delta)
}

// Transitions yields every defined edge in a stable order.
func (d *DFA[S]) Transitions() iter.Seq[Transition[S]] {
	return func(yield func(Transition[S]) bool) {
		for _, q := range d.states.Slice() {
			for _, s := range d.alphabet.Slice() {
				to, ok := d.delta[edgeKey[S]{q, s}]
				if !ok {
					continue
				}
				if !yield(Transition[S]{From: q, Symbol: s, To: to}) {
					return
				}
			}
		}
	}
}

// ClearTransitions drops the whole transition table; states, alphabet and final set stay.
func (d *DFA[S]) ClearTransitions() *DFA[S] {
	d.delta = make(map[edgeKey[S]]S)
	return d
}

// IsTotal reports whether δ is defined for every (state, symbol) pair.
func (d *DFA[S]) IsTotal() bool {
	for q := range d.states {
		for s := range d.alphabet {
			if _, ok := d.delta[edgeKey[S]{q, s}]; !ok {
				return false
			}
		}
	}
	return true
}

// Run walks the word from the start state. It returns the visited path and whether the last
// state is final; on the first missing transition it stops and rejects with the partial path.
func (d *DFA[S]) Run(word Word) ([]S, bool) {
	q := d.start
	path := make([]S, 1, len(word)+1)
	path[0] = q
	for _, s := range word {
		next, ok := d.delta[edgeKey[S]{q, s}]
		if !ok {
			return path, false
		}
		q = next
		path = append(path, q)
	}
	return path, d.final.Has(q)
}

// ExtendedTransition computes δ̂(X, word), the states reachable from X by reading word.
func (d *DFA[S]) ExtendedTransition(x Set[S], word Word) (Set[S], error) {
	if !x.IsSubset(d.states) {
		return nil, fmt.Errorf("%w: X = %v not a subset of Q = %v", ErrInvalidState, x, d.states)
	}
	return d.extended(x.Clone(), word), nil
}

func (d *DFA[S]) extended(x Set[S], word Word) Set[S] {
	for _, s := range word {
		if len(x) == 0 {
			break
		}
		next := make(Set[S], len(x))
		for q := range x {
			if to, ok := d.delta[edgeKey[S]{q, s}]; ok {
				next.Add(to)
			}
		}
		x = next
	}
	return x
}

// Accepts reports whether δ̂({q0}, word) contains a final state.
func (d *DFA[S]) Accepts(word Word) bool {
	return d.extended(Of(d.start), word).Intersects(d.final)
}

// Clone returns an independent copy.
func (d *DFA[S]) Clone() *DFA[S] {
	c := &DFA[S]{
		automaton: automaton[S]{
			opts:     d.opts,
			states:   d.states.Clone(),
			alphabet: d.alphabet.Clone(),
			final:    d.final.Clone(),
		},
		start: d.start,
		delta: make(map[edgeKey[S]]S, len(d.delta)),
	}
	for k, to := range d.delta {
		c.delta[k] = to
	}
	return c
}

// Describe returns the node/edge description a renderer draws.
func (d *DFA[S]) Describe() Graph {
	return describe(d.opts.name, d.states, func(q S) bool { return q == d.start }, d.final, d.Transitions())
}
