package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cyclicENFA accepts b*a. s and p reach each other on epsilon, p also reaches q.
func cyclicENFA(t *testing.T) *ENFA[string] {
	t.Helper()
	e, err := NewENFA(Of("s", "p", "q", "f"), Alphabet("ab"), Of("s"), Of("f"), WithName("C"))
	require.NoError(t, err)
	require.NoError(t, e.AddTransition("s", Epsilon, "p"))
	require.NoError(t, e.AddTransition("p", Epsilon, "s"))
	require.NoError(t, e.AddTransition("p", Epsilon, "q"))
	require.NoError(t, e.AddTransition("q", "a", "f"))
	require.NoError(t, e.AddTransition("s", "b", "s"))
	return e
}

func TestNewENFA(t *testing.T) {
	e, err := NewENFA(Of(0, 1), Alphabet("a"), Of(0), Of(1))
	require.NoError(t, err)
	assert.True(t, e.Alphabet().Has(Epsilon))
	assert.Equal(t, 2, e.NumSymbols())

	e, err = NewENFA(Of(0), Of(Epsilon, "a"), Of(0), Of[int]())
	require.NoError(t, err, "epsilon may already be in the alphabet")
	assert.Equal(t, 2, e.NumSymbols())

	_, err = NewENFA(Of(0), Alphabet("a"), Of(3), Of[int]())
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestENFA_Closure(t *testing.T) {
	e := cyclicENFA(t)

	c, err := e.Closure("s")
	require.NoError(t, err)
	assert.True(t, c.Equal(Of("s", "p", "q")))

	c, err = e.Closure("q")
	require.NoError(t, err)
	assert.True(t, c.Equal(Of("q")))

	c, err = e.ClosureOf(Of("q", "f"))
	require.NoError(t, err)
	assert.True(t, c.Equal(Of("q", "f")))

	_, err = e.Closure("x")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.ClosureOf(Of("x"))
	assert.ErrorIs(t, err, ErrInvalidState)

	c, err = e.Closure("p")
	require.NoError(t, err)
	c.Add("f")
	c, err = e.Closure("p")
	require.NoError(t, err)
	assert.False(t, c.Has("f"), "callers get a copy of the memo")
}

func TestENFA_Accepts(t *testing.T) {
	e := cyclicENFA(t)

	for word, want := range map[string]bool{
		"a":   true,
		"ba":  true,
		"bba": true,
		"":    false,
		"b":   false,
		"ab":  false,
		"aa":  false,
	} {
		assert.Equalf(t, want, e.Accepts(ParseWord(word)), "word %q", word)
	}

	got, err := e.ExtendedTransition(Of("s"), ParseWord("b"))
	require.NoError(t, err)
	assert.True(t, got.Equal(Of("s", "p", "q")))
}

func TestENFA_ClosureFollowsMutations(t *testing.T) {
	e := cyclicENFA(t)
	require.False(t, e.Accepts(nil))

	require.NoError(t, e.AddTransition("q", Epsilon, "f"))
	assert.True(t, e.Accepts(nil))
	c, err := e.Closure("s")
	require.NoError(t, err)
	assert.True(t, c.Has("f"))

	require.NoError(t, e.RemoveTransition("q", Epsilon, "f"))
	assert.False(t, e.Accepts(nil))

	e.RemoveState("p")
	c, err = e.Closure("s")
	require.NoError(t, err)
	assert.True(t, c.Equal(Of("s")))
	assert.False(t, e.Accepts(ParseWord("a")))

	e.AddState("g", true, true)
	assert.True(t, e.Accepts(nil))

	e.ClearTransitions()
	c, err = e.Closure("s")
	require.NoError(t, err)
	assert.True(t, c.Equal(Of("s")))
	assert.Equal(t, 0, e.NumTransitions())
}

func TestENFA_ToNFA(t *testing.T) {
	e := cyclicENFA(t)

	n, err := e.ToNFA()
	require.NoError(t, err)
	assert.Equal(t, "C.to_nfa", n.Name())
	assert.False(t, n.Alphabet().Has(Epsilon))
	assert.True(t, n.Start().Equal(Of("s", "p", "q")))
	assert.True(t, n.Final().Equal(Of("f")))
	assert.True(t, n.Successors("p", "a").Equal(Of("f")))
	assert.True(t, n.Successors("s", "b").Equal(Of("s", "p", "q")))

	alphabet := n.Alphabet()
	requireSameLanguage(t, alphabet, 6, e, n)

	d, err := e.Determinize()
	require.NoError(t, err)
	requireSameLanguage(t, alphabet, 6, e, d)

	full, err := e.ToDFA()
	require.NoError(t, err)
	assert.Equal(t, 16, full.Size())
	requireSameLanguage(t, alphabet, 6, e, full)
}

func TestENFA_EpsilonOnlyLanguage(t *testing.T) {
	e, err := NewENFA(Of(0, 1, 2), Alphabet("x"), Of(0), Of(2))
	require.NoError(t, err)
	require.NoError(t, e.AddTransition(0, Epsilon, 1))
	require.NoError(t, e.AddTransition(1, Epsilon, 2))

	assert.True(t, e.Accepts(nil))
	assert.False(t, e.Accepts(ParseWord("x")))

	d, err := e.Determinize()
	require.NoError(t, err)
	assert.True(t, d.Accepts(nil))
	assert.False(t, d.Accepts(ParseWord("x")))
}
