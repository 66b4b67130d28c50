package automaton

import (
	"encoding/binary"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Universe numbers the states of one source automaton so that subsets of them can be frozen into
// comparable values. Every FrozenSet remembers the universe it was cut from; sets from different
// universes never compare equal.
type Universe[S comparable] struct {
	members []S
	index   map[S]uint
}

// NewUniverse indexes states in label order.
func NewUniverse[S comparable](states Set[S]) *Universe[S] {
	members := states.Slice()
	index := make(map[S]uint, len(members))
	for i, q := range members {
		index[q] = uint(i)
	}
	return &Universe[S]{members: members, index: index}
}

func (u *Universe[S]) Len() int {
	return len(u.members)
}

func (u *Universe[S]) newBits() *bitset.BitSet {
	return bitset.New(uint(len(u.members)))
}

// Freeze returns the immutable form of states. Members outside the universe are dropped.
func (u *Universe[S]) Freeze(states Set[S]) FrozenSet[S] {
	b := u.newBits()
	for q := range states {
		if i, ok := u.index[q]; ok {
			b.Set(i)
		}
	}
	return u.freeze(b)
}

func (u *Universe[S]) freeze(b *bitset.BitSet) FrozenSet[S] {
	words := b.Bytes()
	buf := make([]byte, 0, 8*len(words))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return FrozenSet[S]{u: u, bits: string(buf)}
}

// FrozenSet is an immutable set of states usable as a map key, and therefore as the state type of
// an automaton built by subset construction or minimization.
type FrozenSet[S comparable] struct {
	u    *Universe[S]
	bits string
}

func (f FrozenSet[S]) bitset() *bitset.BitSet {
	words := make([]uint64, len(f.bits)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64([]byte(f.bits[8*i : 8*i+8]))
	}
	return bitset.From(words)
}

func (f FrozenSet[S]) Has(q S) bool {
	if f.u == nil {
		return false
	}
	i, ok := f.u.index[q]
	if !ok || int(i/8) >= len(f.bits) {
		return false
	}
	return f.bits[i/8]&(1<<(i%8)) != 0
}

func (f FrozenSet[S]) Len() int {
	if f.u == nil {
		return 0
	}
	return int(f.bitset().Count())
}

func (f FrozenSet[S]) IsEmpty() bool {
	return f.Len() == 0
}

// Members returns the states in universe order.
func (f FrozenSet[S]) Members() []S {
	if f.u == nil {
		return nil
	}
	b := f.bitset()
	members := make([]S, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		members = append(members, f.u.members[i])
	}
	return members
}

// Set thaws f into a mutable copy.
func (f FrozenSet[S]) Set() Set[S] {
	return Of(f.Members()...)
}

// Intersects reports whether any member of f is in states.
func (f FrozenSet[S]) Intersects(states Set[S]) bool {
	for _, q := range f.Members() {
		if states.Has(q) {
			return true
		}
	}
	return false
}

func (f FrozenSet[S]) String() string {
	members := f.Members()
	if len(members) == 0 {
		return "ø"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, q := range members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(label(q))
	}
	sb.WriteByte('}')
	return sb.String()
}
