package automaton

import (
	"fmt"
	"iter"
	"strings"
)

// Graph is the declarative picture of an automaton: nodes with their start/final flags and edges
// between them. Laying it out and drawing it is left to a renderer.
type Graph struct {
	Name  string
	Nodes []Node
	Edges []Edge
}

// Node is one state. A renderer typically draws Final nodes with a double outline and highlights
// Start nodes.
type Node struct {
	ID    string
	Label string
	Start bool
	Final bool
}

// Edge joins two nodes. Parallel transitions between the same pair are merged, so Symbols holds
// every symbol on the edge and Label is their comma-separated form.
type Edge struct {
	From    string
	To      string
	Symbols []Symbol
	Label   string
}

func label(v any) string {
	return fmt.Sprint(v)
}

func describe[S comparable](name string, states Set[S], isStart func(S) bool, final Set[S], edges iter.Seq[Transition[S]]) Graph {
	g := Graph{Name: name}

	ids := make(map[S]string, len(states))
	for i, q := range states.Slice() {
		id := fmt.Sprintf("n%d", i)
		ids[q] = id
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Label: label(q),
			Start: isStart(q),
			Final: final.Has(q),
		})
	}

	type endpoints struct{ from, to string }
	merged := make(map[endpoints]int)
	for t := range edges {
		key := endpoints{ids[t.From], ids[t.To]}
		if i, ok := merged[key]; ok {
			g.Edges[i].Symbols = append(g.Edges[i].Symbols, t.Symbol)
			continue
		}
		merged[key] = len(g.Edges)
		g.Edges = append(g.Edges, Edge{From: key.from, To: key.to, Symbols: []Symbol{t.Symbol}})
	}
	for i := range g.Edges {
		parts := make([]string, len(g.Edges[i].Symbols))
		for j, s := range g.Edges[i].Symbols {
			parts[j] = s.String()
		}
		g.Edges[i].Label = strings.Join(parts, ",")
	}
	return g
}
