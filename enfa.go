package automaton

import (
	"fmt"
)

// ENFA is an NFA whose alphabet also holds Epsilon; an Epsilon edge moves without reading input.
//
// Epsilon closures are memoized per state. The memo is a view of the Epsilon edges, so every
// mutation of the transition table drops it and the next query recomputes what it needs.
type ENFA[S comparable] struct {
	nfa      *NFA[S]
	closures map[S]Set[S]
}

// NewENFA creates an epsilon automaton with no transitions. Epsilon is added to the alphabet.
func NewENFA[S comparable](states Set[S], alphabet Set[Symbol], start, final Set[S], opts ...Option) (*ENFA[S], error) {
	withEpsilon := alphabet.Clone()
	withEpsilon.Add(Epsilon)
	n, err := newNFA(states, withEpsilon, start, final, true, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	return &ENFA[S]{nfa: n}, nil
}

func (e *ENFA[S]) invalidate() {
	e.closures = nil
}

func (e *ENFA[S]) Name() string {
	return e.nfa.Name()
}

func (e *ENFA[S]) Size() int {
	return e.nfa.Size()
}

func (e *ENFA[S]) NumSymbols() int {
	return e.nfa.NumSymbols()
}

func (e *ENFA[S]) States() Set[S] {
	return e.nfa.States()
}

func (e *ENFA[S]) Alphabet() Set[Symbol] {
	return e.nfa.Alphabet()
}

func (e *ENFA[S]) Final() Set[S] {
	return e.nfa.Final()
}

func (e *ENFA[S]) Start() Set[S] {
	return e.nfa.Start()
}

func (e *ENFA[S]) HasState(q S) bool {
	return e.nfa.HasState(q)
}

func (e *ENFA[S]) IsFinal(q S) bool {
	return e.nfa.IsFinal(q)
}

func (e *ENFA[S]) NumTransitions() int {
	return e.nfa.NumTransitions()
}

func (e *ENFA[S]) Successors(q S, s Symbol) Set[S] {
	return e.nfa.Successors(q, s)
}

// AddState adds q, optionally marking it as a start and/or final state.
func (e *ENFA[S]) AddState(q S, start, final bool) {
	e.nfa.AddState(q, start, final)
	e.invalidate()
}

// RemoveState deletes q and every transition touching it.
func (e *ENFA[S]) RemoveState(q S) {
	e.nfa.RemoveState(q)
	e.invalidate()
}

// AddTransition adds an edge; s may be Epsilon.
func (e *ENFA[S]) AddTransition(from S, s Symbol, to S) error {
	if err := e.nfa.AddTransition(from, s, to); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

func (e *ENFA[S]) RemoveTransition(from S, s Symbol, to S) error {
	if err := e.nfa.RemoveTransition(from, s, to); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

func (e *ENFA[S]) ClearTransitions() *ENFA[S] {
	e.nfa.ClearTransitions()
	e.invalidate()
	return e
}

// Closure returns the states reachable from q using Epsilon edges only, q included.
func (e *ENFA[S]) Closure(q S) (Set[S], error) {
	if err := e.nfa.checkState(q); err != nil {
		return nil, err
	}
	return e.closure(q).Clone(), nil
}

// ClosureOf returns the union of the closures of every state in x.
func (e *ENFA[S]) ClosureOf(x Set[S]) (Set[S], error) {
	if !x.IsSubset(e.nfa.states) {
		return nil, fmt.Errorf("%w: X = %v not a subset of Q = %v", ErrInvalidState, x, e.nfa.states)
	}
	return e.closureOf(x), nil
}

// closure walks the Epsilon subgraph with a work-list; the visited set keeps it finite on cycles.
func (e *ENFA[S]) closure(q S) Set[S] {
	if c, ok := e.closures[q]; ok {
		return c
	}
	c := Of(q)
	work := []S{q}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		for r := range e.nfa.delta[edgeKey[S]{p, Epsilon}] {
			if !c.Has(r) {
				c.Add(r)
				work = append(work, r)
			}
		}
	}
	if e.closures == nil {
		e.closures = make(map[S]Set[S])
	}
	e.closures[q] = c
	return c
}

func (e *ENFA[S]) closureOf(x Set[S]) Set[S] {
	c := make(Set[S], len(x))
	for q := range x {
		c.AddAll(e.closure(q))
	}
	return c
}

// ExtendedTransition closes X, then for each symbol moves and closes again.
func (e *ENFA[S]) ExtendedTransition(x Set[S], word Word) (Set[S], error) {
	if !x.IsSubset(e.nfa.states) {
		return nil, fmt.Errorf("%w: X = %v not a subset of Q = %v", ErrInvalidState, x, e.nfa.states)
	}
	return e.extended(x, word), nil
}

func (e *ENFA[S]) extended(x Set[S], word Word) Set[S] {
	x = e.closureOf(x)
	for _, s := range word {
		if len(x) == 0 {
			break
		}
		x = e.closureOf(e.nfa.move(x, s))
	}
	return x
}

// Accepts reports whether the closed extended transition from the start set meets F.
func (e *ENFA[S]) Accepts(word Word) bool {
	return e.extended(e.nfa.start, word).Intersects(e.nfa.final)
}

// ToNFA eliminates Epsilon edges. The new start set is the closure of the old one and each
// δ'(q, s) is every state reachable from q by reading s with Epsilon moves before and after.
// Final states are unchanged.
func (e *ENFA[S]) ToNFA() (*NFA[S], error) {
	alphabet := e.nfa.alphabet.Clone()
	alphabet.Remove(Epsilon)

	o := newOptions(e.nfa.opts.derive(e.nfa.opts.name + ".to_nfa")...)
	n, err := newNFA(e.nfa.states, alphabet, e.closureOf(e.nfa.start), e.nfa.final, false, o)
	if err != nil {
		return nil, err
	}
	for q := range e.nfa.states {
		from := e.closure(q)
		for s := range alphabet {
			to := e.closureOf(e.nfa.move(from, s))
			if len(to) > 0 {
				n.delta[edgeKey[S]{q, s}] = to
			}
		}
	}
	o.logger.Debug("epsilon transitions eliminated",
		"name", o.name, "states", len(n.states), "transitions", n.NumTransitions())
	return n, nil
}

// ToDFA is ToNFA followed by the full powerset construction.
func (e *ENFA[S]) ToDFA() (*DFA[FrozenSet[S]], error) {
	n, err := e.ToNFA()
	if err != nil {
		return nil, err
	}
	return n.ToDFA()
}

// Determinize is ToNFA followed by the reachable-subset construction.
func (e *ENFA[S]) Determinize() (*DFA[FrozenSet[S]], error) {
	n, err := e.ToNFA()
	if err != nil {
		return nil, err
	}
	return n.Determinize()
}

// Describe returns the node/edge description a renderer draws. Epsilon edges are labelled ε.
func (e *ENFA[S]) Describe() Graph {
	return e.nfa.Describe()
}
