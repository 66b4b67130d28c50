package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// allWords lists every word over alphabet of length at most maxLen, shortest first.
func allWords(alphabet Set[Symbol], maxLen int) []Word {
	symbols := alphabet.Slice()
	words := []Word{{}}
	frontier := []Word{{}}
	for n := 1; n <= maxLen; n++ {
		var next []Word
		for _, w := range frontier {
			for _, s := range symbols {
				nw := append(append(Word{}, w...), s)
				next = append(next, nw)
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}

type acceptor interface {
	Accepts(Word) bool
}

func requireSameLanguage(t *testing.T, alphabet Set[Symbol], maxLen int, want, got acceptor) {
	t.Helper()
	for _, w := range allWords(alphabet, maxLen) {
		require.Equalf(t, want.Accepts(w), got.Accepts(w), "word %q", w)
	}
}

// containsOne is the DFA accepting words over {0,1} with at least one 1. q2 absorbs.
func containsOne(t *testing.T) *DFA[string] {
	t.Helper()
	m, err := NewDFA(Of("q0", "q1", "q2"), Alphabet("01"), "q0", Of("q2"), WithName("M"))
	require.NoError(t, err)
	for _, e := range []struct {
		from string
		s    Symbol
		to   string
	}{
		{"q0", "0", "q1"}, {"q0", "1", "q2"},
		{"q1", "0", "q1"}, {"q1", "1", "q2"},
		{"q2", "0", "q2"}, {"q2", "1", "q2"},
	} {
		require.NoError(t, m.AddTransition(e.from, e.s, e.to))
	}
	return m
}

// evenLength accepts words over {0,1} of even length.
func evenLength(t *testing.T) *DFA[string] {
	t.Helper()
	m, err := NewDFA(Of("e", "o"), Alphabet("01"), "e", Of("e"), WithName("E"))
	require.NoError(t, err)
	for _, s := range []Symbol{"0", "1"} {
		require.NoError(t, m.AddTransition("e", s, "o"))
		require.NoError(t, m.AddTransition("o", s, "e"))
	}
	return m
}

// sampleNFA has start {q0}, final {q2} and edges q0-0->q1, q0-0->q2, q0-1->q2, q1-0->q1, q2-0->q2.
func sampleNFA(t *testing.T, opts ...Option) *NFA[string] {
	t.Helper()
	n, err := NewNFA(Of("q0", "q1", "q2"), Alphabet("01"), Of("q0"), Of("q2"), opts...)
	require.NoError(t, err)
	require.NoError(t, n.AddTransition("q0", "0", "q1"))
	require.NoError(t, n.AddTransition("q0", "0", "q2"))
	require.NoError(t, n.AddTransition("q0", "1", "q2"))
	require.NoError(t, n.AddTransition("q1", "0", "q1"))
	require.NoError(t, n.AddTransition("q2", "0", "q2"))
	return n
}
