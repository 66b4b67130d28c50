package grammar

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNormalForm(t *testing.T) {
	g := anbn(t)

	cnf, err := g.ToNormalForm()
	require.NoError(t, err)
	assert.True(t, cnf.IsNormalForm())
	assert.Equal(t, "G.cnf", cnf.Name())
	assert.Equal(t, Symbol("S"), cnf.Start())
	assert.Equal(t, "S -> <a>S_ | a\n<a> -> a\n<b> -> b\nS_ -> S<b>", cnf.String())

	assert.False(t, g.IsNormalForm(), "the receiver is left alone")
	assert.Equal(t, 2, g.NumProductions())
	assert.False(t, g.Nonterminals().Has("<a>"))
}

func TestToNormalForm_FreshNames(t *testing.T) {
	g, err := New(symbols("SX"), symbols("abc"), "S")
	require.NoError(t, err)
	require.NoError(t, g.AddProductionString("S", "XXXX"))
	require.NoError(t, g.AddProductionString("X", "c"))

	cnf, err := g.ToNormalForm()
	require.NoError(t, err)
	assert.True(t, cnf.IsNormalForm())
	for _, nt := range []Symbol{"S_", "S_1"} {
		assert.True(t, cnf.Nonterminals().Has(nt), "missing %s", nt)
	}
	assert.Equal(t, 4, cnf.NumProductions())
}

func TestToNormalForm_EmptyRules(t *testing.T) {
	g := parens(t)

	cnf, err := g.ToNormalForm()
	require.NoError(t, err)
	assert.True(t, cnf.IsNormalForm())
	for _, p := range cnf.Productions() {
		assert.NotEmpty(t, p.Rhs, p.String())
	}
}

func TestToNormalForm_UnitChains(t *testing.T) {
	g := unitChain(t)

	cnf, err := g.ToNormalForm()
	require.NoError(t, err)
	assert.True(t, cnf.IsNormalForm())
	for _, p := range cnf.Productions() {
		assert.False(t, len(p.Rhs) == 1 && cnf.Nonterminals().Has(p.Rhs[0]), p.String())
	}
}

func TestToNormalForm_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, err := New(symbols("S"), symbols("a"), "S", WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, g.AddProductionString("S", "aa"))

	_, err = g.ToNormalForm()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "normal form computed")
	assert.Contains(t, buf.String(), "normal_productions=2")
}
