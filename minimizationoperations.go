package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// markTable records which unordered state pairs are known to be distinguishable.
type markTable struct {
	n    uint
	bits *bitset.BitSet
}

func newMarkTable(n int) *markTable {
	return &markTable{n: uint(n), bits: bitset.New(uint(n * n))}
}

func (t *markTable) pos(i, j uint) uint {
	if i > j {
		i, j = j, i
	}
	return i*t.n + j
}

func (t *markTable) marked(i, j uint) bool {
	return t.bits.Test(t.pos(i, j))
}

func (t *markTable) mark(i, j uint) {
	t.bits.Set(t.pos(i, j))
}

// EquivalenceClasses partitions the states into blocks of mutually indistinguishable states using
// the table-filling algorithm. Pairs split by finality are marked first; then every unmarked pair
// is marked if some symbol takes exactly one of them nowhere, or takes both to a marked pair. The
// scan repeats until a pass marks nothing, which happens within |Q| passes.
//
// Blocks are returned in label order of their first member.
func (d *DFA[S]) EquivalenceClasses() []Set[S] {
	u := NewUniverse(d.states)
	n := u.Len()
	symbols := d.alphabet.Slice()
	table := newMarkTable(n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d.final.Has(u.members[i]) != d.final.Has(u.members[j]) {
				table.mark(uint(i), uint(j))
			}
		}
	}

	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if table.marked(uint(i), uint(j)) {
					continue
				}
				if d.distinguishable(u, table, u.members[i], u.members[j], symbols) {
					table.mark(uint(i), uint(j))
					changed = true
				}
			}
		}
	}

	classOf := make([]int, n)
	for i := range classOf {
		classOf[i] = -1
	}
	var classes []Set[S]
	for i := 0; i < n; i++ {
		if classOf[i] != -1 {
			continue
		}
		block := Of(u.members[i])
		classOf[i] = len(classes)
		for j := i + 1; j < n; j++ {
			if classOf[j] == -1 && !table.marked(uint(i), uint(j)) {
				classOf[j] = len(classes)
				block.Add(u.members[j])
			}
		}
		classes = append(classes, block)
	}

	d.opts.logger.Debug("equivalence classes computed",
		"name", d.opts.name, "states", n, "classes", len(classes), "passes", passes)
	return classes
}

func (d *DFA[S]) distinguishable(u *Universe[S], table *markTable, p, q S, symbols []Symbol) bool {
	for _, s := range symbols {
		tp, okp := d.delta[edgeKey[S]{p, s}]
		tq, okq := d.delta[edgeKey[S]{q, s}]
		if okp != okq {
			return true
		}
		if okp && tp != tq && table.marked(u.index[tp], u.index[tq]) {
			return true
		}
	}
	return false
}

// Minimize returns the quotient of d by its equivalence classes: one state per block, the start
// block holding the old start state, final blocks holding final states, and a block moving on s
// to the block of any member's successor. Unreachable states are not pruned first; call
// RemoveUnreachableStates for the minimal automaton of the language.
func Minimize[S comparable](d *DFA[S]) (*DFA[FrozenSet[S]], error) {
	u := NewUniverse(d.states)
	classes := d.EquivalenceClasses()

	blockOf := make(map[S]FrozenSet[S], len(d.states))
	states := make(Set[FrozenSet[S]], len(classes))
	final := make(Set[FrozenSet[S]])
	reps := make(map[FrozenSet[S]]S, len(classes))
	for _, class := range classes {
		block := u.Freeze(class)
		states.Add(block)
		rep := class.Slice()[0]
		reps[block] = rep
		if d.final.Has(rep) {
			final.Add(block)
		}
		for q := range class {
			blockOf[q] = block
		}
	}

	m, err := newDFA(states, d.alphabet, blockOf[d.start], final, newOptions(d.opts.derive(d.opts.name+".min")...))
	if err != nil {
		return nil, err
	}
	for block, rep := range reps {
		for s := range d.alphabet {
			if to, ok := d.delta[edgeKey[S]{rep, s}]; ok {
				m.delta[edgeKey[FrozenSet[S]]{block, s}] = blockOf[to]
			}
		}
	}
	return m, nil
}
