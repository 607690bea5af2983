package eval

import (
	"math/bits"

	"github.com/halfkomma/gochess/board"
)

// fileMask returns the full-file mask (a1..a8 style) containing sq.
func fileMask(sq board.Square) uint64 {
	return board.FileAMask << uint(board.File(sq))
}

// forwardFileSpan returns the span of squares in front of sq, on sq's file
// and both adjacent files, for color: the squares an enemy pawn would have
// to occupy or cross to stop sq's pawn from ever being passed.
func forwardFileSpan(sq board.Square, color board.Color) uint64 {
	file := board.File(sq)
	span := fileMask(sq)
	if file > 0 {
		span |= fileMask(sq) >> 1
	}
	if file < 7 {
		span |= fileMask(sq) << 1
	}
	rank := board.Rank(sq)
	if color == board.White {
		for r := 0; r <= rank; r++ {
			span &^= rankMaskAt(r)
		}
	} else {
		for r := rank; r <= 7; r++ {
			span &^= rankMaskAt(r)
		}
	}
	return span
}

func rankMaskAt(rank int) uint64 { return board.Rank1Mask << uint(8*rank) }

// rookOpenFile and rookSemiOpenFile reward a rook on a file with no pawns
// of either color (open) or no own pawns (semi-open), a standard
// rook-activity term.
var (
	rookOpenFile     = S(20, 10)
	rookSemiOpenFile = S(10, 5)
)

// passedPawnBonus is indexed by the pawn's rank from its own perspective
// (rank 1 = its start rank, rank 6 = one step from promoting), folded
// symmetrically for Black by the caller.
var passedPawnBonus = [8]Score{
	S(0, 0), S(0, 0), S(5, 10), S(10, 20), S(20, 35), S(40, 60), S(70, 100), S(0, 0),
}

// rookFileTerm returns color's rook-on-(semi-)open-file bonus for the
// position, summed over every rook color owns.
func rookFileTerm(p *board.Position, color board.Color) Score {
	pawns := p.PieceBitboard(board.White, board.Pawn) | p.PieceBitboard(board.Black, board.Pawn)
	ownPawns := p.PieceBitboard(color, board.Pawn)

	var total Score
	rooks := p.PieceBitboard(color, board.Rook)
	for rooks != 0 {
		sq := board.Square(bits.TrailingZeros64(rooks))
		rooks &= rooks - 1
		f := fileMask(sq)
		switch {
		case f&pawns == 0:
			total += rookOpenFile
		case f&ownPawns == 0:
			total += rookSemiOpenFile
		}
	}
	return total
}

// passedPawnTerm returns color's passed-pawn bonus, summed over every pawn
// of color that has no enemy pawn able to block or capture it on its way
// to promotion.
func passedPawnTerm(p *board.Position, color board.Color) Score {
	enemyPawns := p.PieceBitboard(color.Opposite(), board.Pawn)
	ownPawns := p.PieceBitboard(color, board.Pawn)

	var total Score
	bb := ownPawns
	for bb != 0 {
		sq := board.Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		if forwardFileSpan(sq, color)&enemyPawns != 0 {
			continue
		}
		rank := board.Rank(sq)
		if color == board.Black {
			rank = 7 - rank
		}
		total += passedPawnBonus[rank]
	}
	return total
}
