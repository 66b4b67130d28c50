package automaton

import "errors"

var (
	// ErrInvalidState is returned when an operation names a state outside the declared state set.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidSymbol is returned when an operation names a symbol outside the declared alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvariantViolation covers start/final sets that are not subsets of the states, mismatched
	// alphabets in a product, removal of the start state and complementing a partial DFA.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrTooComplex is returned by the full powerset construction when the source has more states
	// than the configured limit.
	ErrTooComplex = errors.New("automaton too complex to determinize")
)
