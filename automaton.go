package automaton

import "fmt"

// automaton is the part every machine shares: a finite state set, an alphabet and the final
// states. The sets are owned by the automaton; accessors hand out copies.
type automaton[S comparable] struct {
	opts     *options
	states   Set[S]
	alphabet Set[Symbol]
	final    Set[S]
}

func newAutomaton[S comparable](states Set[S], alphabet Set[Symbol], final Set[S], allowEpsilon bool, opts *options) (automaton[S], error) {
	a := automaton[S]{
		opts:     opts,
		states:   states.Clone(),
		alphabet: alphabet.Clone(),
		final:    final.Clone(),
	}
	if !allowEpsilon && a.alphabet.Has(Epsilon) {
		return a, fmt.Errorf("%w: epsilon is reserved for epsilon automata", ErrInvalidSymbol)
	}
	if !a.final.IsSubset(a.states) {
		return a, fmt.Errorf("%w: F = %v not a subset of Q = %v", ErrInvariantViolation, a.final, a.states)
	}
	return a, nil
}

// Name is the display name given with WithName.
func (a *automaton[S]) Name() string {
	return a.opts.name
}

// Size returns the number of states.
func (a *automaton[S]) Size() int {
	return len(a.states)
}

func (a *automaton[S]) NumSymbols() int {
	return len(a.alphabet)
}

func (a *automaton[S]) States() Set[S] {
	return a.states.Clone()
}

func (a *automaton[S]) Alphabet() Set[Symbol] {
	return a.alphabet.Clone()
}

func (a *automaton[S]) Final() Set[S] {
	return a.final.Clone()
}

func (a *automaton[S]) HasState(q S) bool {
	return a.states.Has(q)
}

func (a *automaton[S]) IsFinal(q S) bool {
	return a.final.Has(q)
}

func (a *automaton[S]) checkState(q S) error {
	if !a.states.Has(q) {
		return fmt.Errorf("%w: %s not in Q = %v", ErrInvalidState, label(q), a.states)
	}
	return nil
}

func (a *automaton[S]) checkSymbol(s Symbol) error {
	if !a.alphabet.Has(s) {
		return fmt.Errorf("%w: %s not in A = %v", ErrInvalidSymbol, s, a.alphabet)
	}
	return nil
}

func (a *automaton[S]) checkEdge(from S, s Symbol, to S) error {
	if err := a.checkState(from); err != nil {
		return err
	}
	if err := a.checkState(to); err != nil {
		return err
	}
	return a.checkSymbol(s)
}

func (a *automaton[S]) addState(q S, final bool) {
	a.states.Add(q)
	if final {
		a.final.Add(q)
	}
}

func (a *automaton[S]) removeState(q S) {
	a.states.Remove(q)
	a.final.Remove(q)
}

// edgeKey addresses one row of a transition table.
type edgeKey[S comparable] struct {
	state  S
	symbol Symbol
}
