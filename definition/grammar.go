package definition

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/geange/automaton/v2"
	"github.com/geange/automaton/v2/grammar"
)

// GrammarDefinition describes a context-free grammar. Each right-hand side is read one character
// per symbol and the empty string is an empty rule:
//
//	nonterminals: [S]
//	terminals: [a, b]
//	start: S
//	productions:
//	  S: [aSb, a]
type GrammarDefinition struct {
	Name         string              `yaml:"name"`
	Nonterminals Names               `yaml:"nonterminals" validate:"required,min=1,dive,required"`
	Terminals    Names               `yaml:"terminals" validate:"required,min=1,dive,required"`
	Start        string              `yaml:"start" validate:"required"`
	Productions  map[string][]string `yaml:"productions" validate:"dive,keys,required,endkeys"`
}

// ParseGrammar decodes and validates a YAML grammar definition.
func ParseGrammar(data []byte) (*GrammarDefinition, error) {
	var d GrammarDefinition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse grammar definition: %w", err)
	}
	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("validate grammar definition: %w", err)
	}
	return &d, nil
}

// LoadGrammar reads and parses the grammar definition at path.
func LoadGrammar(path string) (*GrammarDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGrammar(data)
}

// Grammar builds the grammar.
func (d *GrammarDefinition) Grammar(opts ...grammar.Option) (*grammar.Grammar, error) {
	opts = append([]grammar.Option{grammar.WithName(d.Name)}, opts...)
	g, err := grammar.New(d.Nonterminals.symbols(), d.Terminals.symbols(), automaton.Symbol(d.Start), opts...)
	if err != nil {
		return nil, err
	}

	lhs := make([]string, 0, len(d.Productions))
	for nt := range d.Productions {
		lhs = append(lhs, nt)
	}
	sort.Strings(lhs)
	for _, nt := range lhs {
		for _, rhs := range d.Productions[nt] {
			if err := g.AddProductionString(automaton.Symbol(nt), rhs); err != nil {
				return nil, fmt.Errorf("production %s -> %q: %w", nt, rhs, err)
			}
		}
	}
	return g, nil
}
