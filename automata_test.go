package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutomata(t *testing.T) {
	automata := &Automata{}
	binary := Alphabet("01")

	t.Run("empty", func(t *testing.T) {
		a, err := automata.MakeEmpty(binary)
		assert.Nil(t, err)
		assert.False(t, Run(a, ""))
		assert.False(t, Run(a, "0"))
		assert.True(t, a.IsEmpty())
	})

	t.Run("empty string", func(t *testing.T) {
		a, err := automata.MakeEmptyString(binary)
		assert.Nil(t, err)
		assert.True(t, Run(a, ""))
		assert.False(t, Run(a, "1"))
	})

	t.Run("any string", func(t *testing.T) {
		a, err := automata.MakeAnyString(binary, WithName("any"))
		assert.Nil(t, err)
		assert.Equal(t, "any", a.Name())
		assert.True(t, a.IsTotal())
		for _, w := range allWords(binary, 4) {
			assert.True(t, a.Accepts(w))
		}
	})

	t.Run("string", func(t *testing.T) {
		a, err := automata.MakeString(binary, ParseWord("0110"))
		assert.Nil(t, err)
		assert.Equal(t, 5, a.Size())
		if !assert.True(t, Run(a, "0110")) {
			t.Skip()
		}
		assert.False(t, Run(a, "011"))
		assert.False(t, Run(a, "01100"))
	})

	t.Run("string outside the alphabet", func(t *testing.T) {
		_, err := automata.MakeString(binary, ParseWord("012"))
		assert.ErrorIs(t, err, ErrInvalidSymbol)
	})
}
