package automaton

// Run reports whether a accepts s, reading each character of s as one symbol.
func Run[S comparable](a *DFA[S], s string) bool {
	_, ok := a.Run(ParseWord(s))
	return ok
}
