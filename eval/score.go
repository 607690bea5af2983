// Package eval implements the tapered piece-square-table evaluator the
// search consults at leaf nodes.
package eval

import "fmt"

// Score packs a middlegame and an endgame centipawn value into one int32,
// so accumulating a tapered score during the board scan is a single add
// instead of two. Grounded on CounterGo's evalpesto package.
type Score int32

func S(middle, end int16) Score {
	return Score(uint32(middle))<<16 + Score(end)
}

func (s Score) Middle() int16 { return int16(uint32(s+0x8000) >> 16) }
func (s Score) End() int16    { return int16(s) }

// Negate flips the sign of both the middlegame and endgame halves by
// repacking the independently negated Middle() and End() values.
func (s Score) Negate() Score { return S(-s.Middle(), -s.End()) }

func (s Score) String() string {
	return fmt.Sprintf("Score(%d, %d)", s.Middle(), s.End())
}
