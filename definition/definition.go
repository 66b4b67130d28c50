// Package definition reads automata and grammars from YAML documents such as
//
//	kind: dfa
//	name: M
//	states: [q0, q1, q2]
//	alphabet: ["0", "1"]
//	start: [q0]
//	final: [q2]
//	transitions:
//	  - {from: q0, symbol: "0", to: q1}
//
// States, alphabets and final sets may be written as a list or as an integer n meaning 0..n-1.
package definition

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/geange/automaton/v2"
)

var validate = validator.New()

// Names is a list of labels. In YAML it is either a sequence or an integer n, the latter
// standing for "0", "1", ..., "n-1".
type Names []string

func (n *Names) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!int" {
		count, err := strconv.Atoi(value.Value)
		if err != nil {
			return err
		}
		if count < 0 {
			return fmt.Errorf("line %d: negative count %d", value.Line, count)
		}
		names := make(Names, count)
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		*n = names
		return nil
	}
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	*n = names
	return nil
}

func (n Names) states() automaton.Set[string] {
	return automaton.Of(n...)
}

func (n Names) symbols() automaton.Set[automaton.Symbol] {
	s := automaton.Of[automaton.Symbol]()
	for _, name := range n {
		s.Add(automaton.Symbol(name))
	}
	return s
}

type Kind string

const (
	KindDFA  Kind = "dfa"
	KindNFA  Kind = "nfa"
	KindENFA Kind = "enfa"
)

// Transition is one edge. An empty symbol is an epsilon edge and is only valid for kind enfa.
type Transition struct {
	From   string `yaml:"from" validate:"required"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to" validate:"required"`
}

// Definition describes one automaton.
type Definition struct {
	Kind        Kind         `yaml:"kind" validate:"required,oneof=dfa nfa enfa"`
	Name        string       `yaml:"name"`
	States      Names        `yaml:"states" validate:"required,min=1,dive,required"`
	Alphabet    Names        `yaml:"alphabet" validate:"required,min=1,dive,required"`
	Start       Names        `yaml:"start" validate:"required,min=1,dive,required"`
	Final       Names        `yaml:"final" validate:"dive,required"`
	Transitions []Transition `yaml:"transitions" validate:"dive"`
}

// ParseAutomaton decodes and validates a YAML automaton definition.
func ParseAutomaton(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse automaton definition: %w", err)
	}
	if err := validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("validate automaton definition: %w", err)
	}
	return &d, nil
}

// LoadAutomaton reads and parses the definition at path.
func LoadAutomaton(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAutomaton(data)
}

func (d *Definition) options(opts []automaton.Option) []automaton.Option {
	return append([]automaton.Option{automaton.WithName(d.Name)}, opts...)
}

// DFA builds the automaton; kind must be dfa and start must name exactly one state.
func (d *Definition) DFA(opts ...automaton.Option) (*automaton.DFA[string], error) {
	if d.Kind != KindDFA {
		return nil, fmt.Errorf("%w: definition %q is a %s, not a dfa", automaton.ErrInvariantViolation, d.Name, d.Kind)
	}
	if len(d.Start) != 1 {
		return nil, fmt.Errorf("%w: a dfa has exactly one start state, got %v", automaton.ErrInvariantViolation, d.Start)
	}
	m, err := automaton.NewDFA(d.States.states(), d.Alphabet.symbols(), d.Start[0], d.Final.states(), d.options(opts)...)
	if err != nil {
		return nil, err
	}
	for _, t := range d.Transitions {
		if err := m.AddTransition(t.From, automaton.Symbol(t.Symbol), t.To); err != nil {
			return nil, fmt.Errorf("transition %s -%s-> %s: %w", t.From, t.Symbol, t.To, err)
		}
	}
	return m, nil
}

// NFA builds the automaton; kind must be nfa.
func (d *Definition) NFA(opts ...automaton.Option) (*automaton.NFA[string], error) {
	if d.Kind != KindNFA {
		return nil, fmt.Errorf("%w: definition %q is a %s, not an nfa", automaton.ErrInvariantViolation, d.Name, d.Kind)
	}
	m, err := automaton.NewNFA(d.States.states(), d.Alphabet.symbols(), d.Start.states(), d.Final.states(), d.options(opts)...)
	if err != nil {
		return nil, err
	}
	for _, t := range d.Transitions {
		if err := m.AddTransition(t.From, automaton.Symbol(t.Symbol), t.To); err != nil {
			return nil, fmt.Errorf("transition %s -%s-> %s: %w", t.From, t.Symbol, t.To, err)
		}
	}
	return m, nil
}

// ENFA builds the automaton; kind must be enfa. Transitions with an empty symbol are epsilon
// edges.
func (d *Definition) ENFA(opts ...automaton.Option) (*automaton.ENFA[string], error) {
	if d.Kind != KindENFA {
		return nil, fmt.Errorf("%w: definition %q is a %s, not an enfa", automaton.ErrInvariantViolation, d.Name, d.Kind)
	}
	m, err := automaton.NewENFA(d.States.states(), d.Alphabet.symbols(), d.Start.states(), d.Final.states(), d.options(opts)...)
	if err != nil {
		return nil, err
	}
	for _, t := range d.Transitions {
		if err := m.AddTransition(t.From, automaton.Symbol(t.Symbol), t.To); err != nil {
			return nil, fmt.Errorf("transition %s -%s-> %s: %w", t.From, automaton.Symbol(t.Symbol), t.To, err)
		}
	}
	return m, nil
}
