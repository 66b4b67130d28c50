package automaton

import "fmt"

// Automata builds small DFAs over integer states.
type Automata struct {
}

// MakeEmpty
// Returns a DFA over alphabet with the empty language.
func (*Automata) MakeEmpty(alphabet Set[Symbol], opts ...Option) (*DFA[int], error) {
	return NewDFA(Range(1), alphabet, 0, Of[int](), opts...)
}

// MakeEmptyString
// Returns a DFA over alphabet that accepts only the empty word.
func (*Automata) MakeEmptyString(alphabet Set[Symbol], opts ...Option) (*DFA[int], error) {
	return NewDFA(Range(1), alphabet, 0, Of(0), opts...)
}

// MakeAnyString
// Returns a total DFA over alphabet that accepts every word.
func (*Automata) MakeAnyString(alphabet Set[Symbol], opts ...Option) (*DFA[int], error) {
	a, err := NewDFA(Range(1), alphabet, 0, Of(0), opts...)
	if err != nil {
		return nil, err
	}
	for s := range alphabet {
		if err := a.AddTransition(0, s, 0); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MakeString
// Returns a DFA accepting exactly w. State i means "read the first i symbols".
func (*Automata) MakeString(alphabet Set[Symbol], w Word, opts ...Option) (*DFA[int], error) {
	a, err := NewDFA(Range(len(w)+1), alphabet, 0, Of(len(w)), opts...)
	if err != nil {
		return nil, err
	}
	for i, s := range w {
		if err := a.AddTransition(i, s, i+1); err != nil {
			return nil, fmt.Errorf("symbol %d of %q: %w", i, w, err)
		}
	}
	return a, nil
}
