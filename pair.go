package automaton

import "fmt"

// Pair is the composite state of a product automaton. Left always comes from the first operand and
// Right from the second, so equal labels on both sides never alias.
type Pair[L, R comparable] struct {
	Left  L
	Right R
}

func PairOf[L, R comparable](left L, right R) Pair[L, R] {
	return Pair[L, R]{Left: left, Right: right}
}

func (p Pair[L, R]) String() string {
	return fmt.Sprintf("(%s,%s)", label(p.Left), label(p.Right))
}
