package automaton

// Symbol is one input token of an alphabet.
type Symbol string

// Epsilon is the reserved "consume no input" symbol. It only ever belongs to the alphabet of an
// ENFA; DFA and NFA alphabets reject it.
const Epsilon Symbol = ""

// Word is a sequence of symbols read left to right.
type Word []Symbol

// ParseWord splits s into single-character symbols, so "010" becomes [0 1 0].
func ParseWord(s string) Word {
	w := make(Word, 0, len(s))
	for _, r := range s {
		w = append(w, Symbol(r))
	}
	return w
}

// Alphabet builds a symbol set from the characters of s.
func Alphabet(s string) Set[Symbol] {
	return Of(ParseWord(s)...)
}

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(s)
}

func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	n := 0
	for _, a := range w {
		n += len(a)
	}
	buf := make([]byte, 0, n)
	for _, a := range w {
		buf = append(buf, a...)
	}
	return string(buf)
}
