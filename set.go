package automaton

import (
	"fmt"
	"sort"
)

// Set is an unordered collection of comparable values. State sets, alphabets and final-state sets
// are all passed around as Sets; a plain map literal, Of(list...) and Range(n) are the three
// accepted encodings.
type Set[T comparable] map[T]struct{}

// Of builds a Set from a list. Order and duplicates are discarded.
func Of[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Range returns {0, ..., n-1}.
func Range(n int) Set[int] {
	s := make(Set[int], max(n, 0))
	for i := 0; i < n; i++ {
		s[i] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

func (s Set[T]) Add(items ...T) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

func (s Set[T]) Remove(item T) {
	delete(s, item)
}

func (s Set[T]) Len() int {
	return len(s)
}

func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	for item := range s {
		c[item] = struct{}{}
	}
	return c
}

// AddAll adds every member of other to s in place.
func (s Set[T]) AddAll(other Set[T]) {
	for item := range other {
		s[item] = struct{}{}
	}
}

func (s Set[T]) Union(other Set[T]) Set[T] {
	u := s.Clone()
	u.AddAll(other)
	return u
}

func (s Set[T]) Difference(other Set[T]) Set[T] {
	d := make(Set[T])
	for item := range s {
		if !other.Has(item) {
			d[item] = struct{}{}
		}
	}
	return d
}

// Intersects reports whether s and other share at least one member.
func (s Set[T]) Intersects(other Set[T]) bool {
	small, big := s, other
	if len(small) > len(big) {
		small, big = big, small
	}
	for item := range small {
		if big.Has(item) {
			return true
		}
	}
	return false
}

func (s Set[T]) IsSubset(other Set[T]) bool {
	if len(s) > len(other) {
		return false
	}
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

func (s Set[T]) Equal(other Set[T]) bool {
	return len(s) == len(other) && s.IsSubset(other)
}

// Slice returns the members ordered by their printed form, so output built from it is stable.
func (s Set[T]) Slice() []T {
	items := make([]T, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sortByLabel(items)
	return items
}

func (s Set[T]) String() string {
	if len(s) == 0 {
		return "ø"
	}
	return fmt.Sprintf("%v", s.Slice())
}

func sortByLabel[T any](items []T) {
	labels := make(map[int]string, len(items))
	idx := make([]int, len(items))
	for i := range items {
		idx[i] = i
		labels[i] = fmt.Sprint(items[i])
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return labels[idx[i]] < labels[idx[j]]
	})
	sorted := make([]T, len(items))
	for i, k := range idx {
		sorted[i] = items[k]
	}
	copy(items, sorted)
}
