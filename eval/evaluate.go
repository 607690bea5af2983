package eval

import (
	"math/bits"

	"github.com/halfkomma/gochess/board"
)

const (
	minorPhase = 4
	rookPhase  = 6
	queenPhase = 12
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

// Phase returns a 0..totalPhase game-phase estimate from remaining
// non-pawn material, clamped at totalPhase (can exceed it transiently with
// promoted queens, which the clamp absorbs).
func Phase(p *board.Position) int {
	phase := 0
	for _, color := range [2]board.Color{board.White, board.Black} {
		phase += minorPhase * bits.OnesCount64(p.PieceBitboard(color, board.Knight))
		phase += minorPhase * bits.OnesCount64(p.PieceBitboard(color, board.Bishop))
		phase += rookPhase * bits.OnesCount64(p.PieceBitboard(color, board.Rook))
		phase += queenPhase * bits.OnesCount64(p.PieceBitboard(color, board.Queen))
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// bishopPairBonus rewards owning both bishops, a standard small static
// term PSTs alone don't capture.
var bishopPairBonus = S(30, 40)

// Evaluate returns a centipawn score from White's perspective: positive
// favors White regardless of whose turn it is. Callers (quiescence's
// stand-pat) flip sign by side to move themselves.
func Evaluate(p *board.Position) int {
	var total Score

	for _, color := range [2]board.Color{board.White, board.Black} {
		var pairs Score
		for piece := board.Pawn; piece <= board.King; piece++ {
			bb := p.PieceBitboard(color, piece)
			for bb != 0 {
				s := board.Square(bits.TrailingZeros64(bb))
				bb &= bb - 1
				idx := int(s)
				if color == board.Black {
					idx ^= 56
				}
				pairs += pst[piece][idx]
			}
		}
		if bits.OnesCount64(p.PieceBitboard(color, board.Bishop)) >= 2 {
			pairs += bishopPairBonus
		}
		pairs += rookFileTerm(p, color)
		pairs += passedPawnTerm(p, color)
		if color == board.Black {
			pairs = pairs.Negate()
		}
		total += pairs
	}

	phase := Phase(p)
	return (int(total.Middle())*phase + int(total.End())*(totalPhase-phase)) / totalPhase
}
