package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDFA_Invariants(t *testing.T) {
	t.Run("final not a subset", func(t *testing.T) {
		_, err := NewDFA(Of("q0"), Alphabet("01"), "q0", Of("q9"))
		assert.ErrorIs(t, err, ErrInvariantViolation)
	})

	t.Run("start not a state", func(t *testing.T) {
		_, err := NewDFA(Of("q0"), Alphabet("01"), "q9", Of[string]())
		assert.ErrorIs(t, err, ErrInvariantViolation)
	})

	t.Run("epsilon in alphabet", func(t *testing.T) {
		_, err := NewDFA(Of("q0"), Of(Epsilon, "a"), "q0", Of[string]())
		assert.ErrorIs(t, err, ErrInvalidSymbol)
	})

	t.Run("integer states", func(t *testing.T) {
		m, err := NewDFA(Range(4), Alphabet("ab"), 0, Of(3))
		require.NoError(t, err)
		assert.Equal(t, 4, m.Size())
		assert.Equal(t, 2, m.NumSymbols())
		assert.True(t, m.IsFinal(3))
		assert.Equal(t, "automaton", m.Name())
	})

	t.Run("inputs are copied", func(t *testing.T) {
		states := Of("q0", "q1")
		m, err := NewDFA(states, Alphabet("a"), "q0", Of[string]())
		require.NoError(t, err)
		states.Add("q2")
		assert.Equal(t, 2, m.Size())
	})
}

func TestDFA_Accepts(t *testing.T) {
	m := containsOne(t)

	tests := []struct {
		word string
		want bool
	}{
		{"010", true},
		{"000", false},
		{"011", true},
		{"001", true},
		{"", false},
		{"1", true},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Accepts(ParseWord(tt.word)))
			_, ok := m.Run(ParseWord(tt.word))
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestDFA_RunAgreesWithAccepts(t *testing.T) {
	m := containsOne(t)
	require.NoError(t, m.RemoveTransition("q1", "1"))

	for _, w := range allWords(m.Alphabet(), 5) {
		_, ok := m.Run(w)
		assert.Equalf(t, m.Accepts(w), ok, "word %q", w)
	}
}

func TestDFA_Run(t *testing.T) {
	m := containsOne(t)

	path, ok := m.Run(ParseWord("010"))
	assert.True(t, ok)
	assert.Equal(t, []string{"q0", "q1", "q2", "q2"}, path)

	require.NoError(t, m.RemoveTransition("q1", "1"))
	path, ok = m.Run(ParseWord("0110"))
	assert.False(t, ok, "stuck words reject")
	assert.Equal(t, []string{"q0", "q1"}, path)

	path, ok = m.Run(ParseWord("x"))
	assert.False(t, ok, "unknown symbols get the machine stuck")
	assert.Equal(t, []string{"q0"}, path)
}

func TestDFA_ExtendedTransition(t *testing.T) {
	m := containsOne(t)

	got, err := m.ExtendedTransition(Of("q0", "q1"), ParseWord("0"))
	require.NoError(t, err)
	assert.True(t, got.Equal(Of("q1")))

	got, err = m.ExtendedTransition(Of("q0"), nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(Of("q0")))

	_, err = m.ExtendedTransition(Of("nope"), nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDFA_LongWord(t *testing.T) {
	m := containsOne(t)
	w := make(Word, 200000)
	for i := range w {
		w[i] = "0"
	}
	assert.False(t, m.Accepts(w))
	w[len(w)-1] = "1"
	assert.True(t, m.Accepts(w))
}

func TestDFA_Transitions(t *testing.T) {
	m := containsOne(t)

	assert.ErrorIs(t, m.AddTransition("q0", "2", "q1"), ErrInvalidSymbol)
	assert.ErrorIs(t, m.AddTransition("q0", "0", "q7"), ErrInvalidState)
	assert.ErrorIs(t, m.AddTransition("q7", "0", "q0"), ErrInvalidState)
	assert.ErrorIs(t, m.RemoveTransition("q7", "0"), ErrInvalidState)
	assert.ErrorIs(t, m.RemoveTransition("q0", "2"), ErrInvalidSymbol)

	assert.Equal(t, 6, m.NumTransitions())
	assert.True(t, m.IsTotal())

	require.NoError(t, m.AddTransition("q0", "0", "q0"))
	to, ok := m.Transition("q0", "0")
	assert.True(t, ok)
	assert.Equal(t, "q0", to)
	assert.Equal(t, 6, m.NumTransitions())

	require.NoError(t, m.RemoveTransition("q0", "0"))
	_, ok = m.Transition("q0", "0")
	assert.False(t, ok)
	assert.False(t, m.IsTotal())
	require.NoError(t, m.RemoveTransition("q0", "0"), "removing an absent transition is fine")

	var n int
	for range m.Transitions() {
		n++
	}
	assert.Equal(t, 5, n)

	m.ClearTransitions()
	assert.Equal(t, 0, m.NumTransitions())
	assert.Equal(t, 3, m.Size())
	assert.True(t, m.Final().Equal(Of("q2")))
}

func TestDFA_States(t *testing.T) {
	m := containsOne(t)

	m.AddState("q3", true)
	assert.True(t, m.HasState("q3"))
	assert.True(t, m.IsFinal("q3"))
	require.NoError(t, m.AddTransition("q3", "0", "q2"))

	err := m.RemoveState("q0")
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.True(t, m.HasState("q0"))

	require.NoError(t, m.RemoveState("q2"))
	assert.False(t, m.HasState("q2"))
	assert.False(t, m.IsFinal("q2"))
	assert.Equal(t, 2, m.NumTransitions(), "only q0-0->q1 and q1-0->q1 remain")
	_, ok := m.Transition("q3", "0")
	assert.False(t, ok)

	require.NoError(t, m.RemoveState("missing"))
}

func TestDFA_Clone(t *testing.T) {
	m := containsOne(t)
	c := m.Clone()
	require.NoError(t, c.RemoveTransition("q0", "1"))

	assert.True(t, m.Accepts(ParseWord("1")))
	assert.False(t, c.Accepts(ParseWord("1")))

	assert.Equal(t, "M", c.Name())
	assert.Equal(t, "q0", c.Start())
	assert.True(t, c.States().Equal(m.States()))
	assert.True(t, c.Final().Equal(Of("q2")))
	assert.Equal(t, 5, c.NumTransitions())

	c.AddState("q3", true)
	assert.False(t, m.HasState("q3"))
	assert.False(t, m.IsFinal("q3"))
}
