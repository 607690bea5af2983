package board

// MaxMoves bounds a single position's pseudo-legal move count with margin;
// callers size their move buffers to this.
const MaxMoves = 256

// Castling path masks, built from shifts rather than squareMask: package
// variables are initialized before bitboard.go's init fills squareMask.
var (
	f1g1Mask = uint64(1)<<F1 | uint64(1)<<G1
	b1d1Mask = uint64(1)<<B1 | uint64(1)<<C1 | uint64(1)<<D1
	f8g8Mask = uint64(1)<<F8 | uint64(1)<<G8
	b8d8Mask = uint64(1)<<B8 | uint64(1)<<C8 | uint64(1)<<D8
)

func appendPromotions(ml []Move, from, to Square) []Move {
	return append(ml,
		NewMove(from, to, Capture, Queen),
		NewMove(from, to, Capture, Rook),
		NewMove(from, to, Capture, Bishop),
		NewMove(from, to, Capture, Knight),
	)
}

func appendPromotionPushes(ml []Move, from, to Square) []Move {
	return append(ml,
		NewMove(from, to, Quiet, Queen),
		NewMove(from, to, Quiet, Rook),
		NewMove(from, to, Quiet, Bishop),
		NewMove(from, to, Quiet, Knight),
	)
}

// PseudoLegalMoves appends every move obeying piece movement rules to ml
// and returns the extended slice. King safety is not checked; use
// LegalMoves to additionally filter moves that leave the mover in check.
func (p *Position) PseudoLegalMoves(ml []Move) []Move {
	side := p.SideToMove
	own := p.Occupancy[side]
	enemy := p.Occupancy[side.Opposite()]
	occ := p.OccupancyBoth

	ml = p.genPawnMoves(ml, side, own, enemy, occ, false)

	for fromBB := p.bitboards[side][Knight]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := knightAttacks[from] &^ own; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, moveFlagFor(to, enemy), NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := BishopAttacks(from, occ) &^ own; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, moveFlagFor(to, enemy), NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Rook]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := RookAttacks(from, occ) &^ own; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, moveFlagFor(to, enemy), NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Queen]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := QueenAttacks(from, occ) &^ own; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, moveFlagFor(to, enemy), NoPiece))
		}
	}

	from := p.KingSquare(side)
	for toBB := kingAttacks[from] &^ own; toBB != 0; toBB &= toBB - 1 {
		to := firstOne(toBB)
		ml = append(ml, NewMove(from, to, moveFlagFor(to, enemy), NoPiece))
	}
	ml = p.genCastles(ml, side, occ)

	return ml
}

// PseudoLegalCaptures appends every pseudo-legal capture, en-passant
// capture, and promotion (including quiet promotions) to ml.
func (p *Position) PseudoLegalCaptures(ml []Move) []Move {
	side := p.SideToMove
	own := p.Occupancy[side]
	enemy := p.Occupancy[side.Opposite()]
	occ := p.OccupancyBoth

	ml = p.genPawnMoves(ml, side, own, enemy, occ, true)

	for fromBB := p.bitboards[side][Knight]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := knightAttacks[from] & enemy; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, Capture, NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := BishopAttacks(from, occ) & enemy; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, Capture, NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Rook]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := RookAttacks(from, occ) & enemy; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, Capture, NoPiece))
		}
	}
	for fromBB := p.bitboards[side][Queen]; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		for toBB := QueenAttacks(from, occ) & enemy; toBB != 0; toBB &= toBB - 1 {
			to := firstOne(toBB)
			ml = append(ml, NewMove(from, to, Capture, NoPiece))
		}
	}

	from := p.KingSquare(side)
	for toBB := kingAttacks[from] & enemy; toBB != 0; toBB &= toBB - 1 {
		to := firstOne(toBB)
		ml = append(ml, NewMove(from, to, Capture, NoPiece))
	}

	return ml
}

func moveFlagFor(to Square, enemy uint64) MoveFlags {
	if squareMask[to]&enemy != 0 {
		return Capture
	}
	return Quiet
}

func (p *Position) genPawnMoves(ml []Move, side Color, own, enemy, occ uint64, capturesOnly bool) []Move {
	pawns := p.bitboards[side][Pawn]
	var epTarget uint64
	if p.EpFile != NoEpFile {
		epRank := 5
		if side == Black {
			epRank = 2
		}
		epTarget = squareMask[MakeSquare(int(p.EpFile), epRank)]
	}

	if side == White {
		promoters := pawns & Rank7Mask
		pushers := pawns &^ Rank7Mask

		if !capturesOnly {
			for fromBB := pushers; fromBB != 0; fromBB &= fromBB - 1 {
				from := firstOne(fromBB)
				one := from + 8
				if squareMask[one]&occ == 0 {
					ml = append(ml, NewMove(from, one, Quiet, NoPiece))
					two := from + 16
					if Rank(from) == 1 && squareMask[two]&occ == 0 {
						ml = append(ml, NewMove(from, two, DoublePawnPush, NoPiece))
					}
				}
			}
		}
		for fromBB := pushers; fromBB != 0; fromBB &= fromBB - 1 {
			from := firstOne(fromBB)
			if File(from) > 0 && squareMask[from+7]&enemy != 0 {
				ml = append(ml, NewMove(from, from+7, Capture, NoPiece))
			}
			if File(from) < 7 && squareMask[from+9]&enemy != 0 {
				ml = append(ml, NewMove(from, from+9, Capture, NoPiece))
			}
			if File(from) > 0 && squareMask[from+7]&epTarget != 0 {
				ml = append(ml, NewMove(from, from+7, EnPassant, NoPiece))
			}
			if File(from) < 7 && squareMask[from+9]&epTarget != 0 {
				ml = append(ml, NewMove(from, from+9, EnPassant, NoPiece))
			}
		}
		for fromBB := promoters; fromBB != 0; fromBB &= fromBB - 1 {
			from := firstOne(fromBB)
			if squareMask[from+8]&occ == 0 {
				ml = appendPromotionPushes(ml, from, from+8)
			}
			if File(from) > 0 && squareMask[from+7]&enemy != 0 {
				ml = appendPromotions(ml, from, from+7)
			}
			if File(from) < 7 && squareMask[from+9]&enemy != 0 {
				ml = appendPromotions(ml, from, from+9)
			}
		}
		return ml
	}

	promoters := pawns & Rank2Mask
	pushers := pawns &^ Rank2Mask

	if !capturesOnly {
		for fromBB := pushers; fromBB != 0; fromBB &= fromBB - 1 {
			from := firstOne(fromBB)
			one := from - 8
			if squareMask[one]&occ == 0 {
				ml = append(ml, NewMove(from, one, Quiet, NoPiece))
				two := from - 16
				if Rank(from) == 6 && squareMask[two]&occ == 0 {
					ml = append(ml, NewMove(from, two, DoublePawnPush, NoPiece))
				}
			}
		}
	}
	for fromBB := pushers; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		if File(from) > 0 && squareMask[from-9]&enemy != 0 {
			ml = append(ml, NewMove(from, from-9, Capture, NoPiece))
		}
		if File(from) < 7 && squareMask[from-7]&enemy != 0 {
			ml = append(ml, NewMove(from, from-7, Capture, NoPiece))
		}
		if File(from) > 0 && squareMask[from-9]&epTarget != 0 {
			ml = append(ml, NewMove(from, from-9, EnPassant, NoPiece))
		}
		if File(from) < 7 && squareMask[from-7]&epTarget != 0 {
			ml = append(ml, NewMove(from, from-7, EnPassant, NoPiece))
		}
	}
	for fromBB := promoters; fromBB != 0; fromBB &= fromBB - 1 {
		from := firstOne(fromBB)
		if squareMask[from-8]&occ == 0 {
			ml = appendPromotionPushes(ml, from, from-8)
		}
		if File(from) > 0 && squareMask[from-9]&enemy != 0 {
			ml = appendPromotions(ml, from, from-9)
		}
		if File(from) < 7 && squareMask[from-7]&enemy != 0 {
			ml = appendPromotions(ml, from, from-7)
		}
	}
	return ml
}

func (p *Position) genCastles(ml []Move, side Color, occ uint64) []Move {
	enemy := side.Opposite()
	if side == White {
		if p.CastlingRights&WhiteKingSide != 0 && occ&f1g1Mask == 0 &&
			!p.IsSquareAttacked(E1, enemy) && !p.IsSquareAttacked(F1, enemy) && !p.IsSquareAttacked(G1, enemy) {
			ml = append(ml, NewMove(E1, G1, Castle, NoPiece))
		}
		if p.CastlingRights&WhiteQueenSide != 0 && occ&b1d1Mask == 0 &&
			!p.IsSquareAttacked(E1, enemy) && !p.IsSquareAttacked(D1, enemy) && !p.IsSquareAttacked(C1, enemy) {
			ml = append(ml, NewMove(E1, C1, Castle, NoPiece))
		}
	} else {
		if p.CastlingRights&BlackKingSide != 0 && occ&f8g8Mask == 0 &&
			!p.IsSquareAttacked(E8, enemy) && !p.IsSquareAttacked(F8, enemy) && !p.IsSquareAttacked(G8, enemy) {
			ml = append(ml, NewMove(E8, G8, Castle, NoPiece))
		}
		if p.CastlingRights&BlackQueenSide != 0 && occ&b8d8Mask == 0 &&
			!p.IsSquareAttacked(E8, enemy) && !p.IsSquareAttacked(D8, enemy) && !p.IsSquareAttacked(C8, enemy) {
			ml = append(ml, NewMove(E8, C8, Castle, NoPiece))
		}
	}
	return ml
}

// LegalMoves returns the subset of PseudoLegalMoves that do not leave the
// mover's own king in check. The pseudo-legal pass uses a local buffer;
// the legal moves are appended to ml[:0], reusing ml's storage.
func (p *Position) LegalMoves(ml []Move) []Move {
	side := p.SideToMove
	var buf [MaxMoves]Move
	pseudo := p.PseudoLegalMoves(buf[:0])

	legal := ml[:0]
	for _, m := range pseudo {
		p.MakeMove(m)
		if !p.IsSquareAttacked(p.KingSquare(side), side.Opposite()) {
			legal = append(legal, m)
		}
		p.UndoMove(m)
	}
	return legal
}

// IsPseudoLegal reports whether m names a pseudo-legal move in the current
// position. Used to validate a transposition-table move before playing it,
// without paying for a full move-generation pass unless the cheap checks
// pass.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m == MoveEmpty {
		return false
	}
	from, to := m.From(), m.To()
	piece, color := p.PieceAt(from)
	if piece == NoPiece || color != p.SideToMove {
		return false
	}
	if squareMask[to]&p.Occupancy[p.SideToMove] != 0 {
		return false
	}

	var buf [MaxMoves]Move
	for _, cand := range p.PseudoLegalMoves(buf[:0]) {
		if cand == m {
			return true
		}
	}
	return false
}
