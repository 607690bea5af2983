package board

// SEEPieceValue gives the centipawn values Static Exchange Evaluation (and
// the evaluator) assigns to each piece kind. The king's value is large
// enough that it is always the last attacker tried and never worth
// trading away.
var SEEPieceValue = [...]int{NoPiece: 0, Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900, King: 20000}

// SEE computes the net material change, in centipawns, of the sequence of
// captures on `to` that begins with the piece on `from` capturing
// whatever sits on `to`, assuming both sides recapture with their
// least-valuable attacker for as long as an attacker remains. Built as a
// gain array with a final backward minimax pass, the classic "swap
// algorithm" shape.
func (p *Position) SEE(from, to Square) int {
	var gain [32]int
	depth := 0

	gain[0] = SEEPieceValue[p.pieceAt(to)]
	attacker := p.pieceAt(from)

	occ := p.OccupancyBoth &^ squareMask[from]
	if attacker == Pawn && p.EpFile != NoEpFile && File(to) == int(p.EpFile) && p.pieceAt(to) == NoPiece {
		// En-passant: the captured pawn sits behind `to`, not on it.
		capSq := to - 8
		if p.SideToMove == Black {
			capSq = to + 8
		}
		occ &^= squareMask[capSq]
	}

	bishopsQueens := p.bitboards[White][Bishop] | p.bitboards[White][Queen] |
		p.bitboards[Black][Bishop] | p.bitboards[Black][Queen]
	rooksQueens := p.bitboards[White][Rook] | p.bitboards[White][Queen] |
		p.bitboards[Black][Rook] | p.bitboards[Black][Queen]

	attackers := p.attackersTo(to, occ) & occ
	side := p.SideToMove.Opposite()

	for depth < len(gain)-1 {
		own := attackers & p.Occupancy[side]
		if own == 0 {
			break
		}
		depth++
		gain[depth] = SEEPieceValue[attacker] - gain[depth-1]

		var fromSq Square
		attacker, fromSq = leastValuableAttacker(p, own)
		occ &^= squareMask[fromSq]

		if attacker == Pawn || attacker == Bishop || attacker == Queen {
			attackers |= BishopAttacks(to, occ) & bishopsQueens
		}
		if attacker == Rook || attacker == Queen {
			attackers |= RookAttacks(to, occ) & rooksQueens
		}
		attackers &= occ

		side = side.Opposite()
	}

	for d := depth; d >= 1; d-- {
		if neg := -gain[d-1]; neg > gain[d] {
			gain[d-1] = -neg
		} else {
			gain[d-1] = -gain[d]
		}
	}

	return gain[0]
}

func leastValuableAttacker(p *Position, attackers uint64) (Piece, Square) {
	for piece := Pawn; piece <= King; piece++ {
		set := attackers & (p.bitboards[White][piece] | p.bitboards[Black][piece])
		if set != 0 {
			return piece, firstOne(set)
		}
	}
	return NoPiece, NoSquare
}
