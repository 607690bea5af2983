package search

import (
	"math"

	"github.com/halfkomma/gochess/board"
	"github.com/halfkomma/gochess/eval"
)

// AlphaBeta is fail-soft negamax with TT cutoffs, null-move pruning, PVS
// with late-move reductions, and killer/history move ordering. Grounded
// on engine/search.go's alphaBeta, with control flow rewritten around
// explicit MakeMove/UndoMove pairs (the teacher copies into a child
// Position per node instead) and the LMR/null-move formulas replaced with
// the ones the spec names explicitly.
func AlphaBeta(ctx *Context, pos *board.Position, alpha, beta, depth, ply int, allowNull bool) int {
	if ctx.incNode() {
		return 0
	}

	if ply > 0 && pos.IsDraw() {
		return drawScore
	}

	if depth <= 0 {
		return Quiescence(ctx, pos, alpha, beta, ply)
	}

	inCheck := pos.IsCheck(pos.SideToMove)

	if allowNull && depth >= minNullMoveDepth && !inCheck && pos.IsNullMoveAllowed() {
		pos.MakeNullMove()
		score := -AlphaBeta(ctx, pos, -beta, -beta+1, depth-1-nullMoveReduction, ply+1, false)
		pos.UndoNullMove()
		if ctx.Stopped() {
			return 0
		}
		if score >= beta {
			return score
		}
	}

	ttMove := board.MoveEmpty
	if entry, ok := ctx.TT.Probe(pos.ZobristKey); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			ttScore := scoreFromTT(int(entry.Score), ply)
			switch entry.boundType() {
			case BoundExact:
				return ttScore
			case BoundLower:
				if ttScore >= beta {
					return ttScore
				}
			case BoundUpper:
				if ttScore <= alpha {
					return ttScore
				}
			}
		}
		if ttMove != board.MoveEmpty && !pos.IsPseudoLegal(ttMove) {
			ttMove = board.MoveEmpty
		}
	}

	var buf [board.MaxMoves]board.Move
	pseudo := pos.PseudoLegalMoves(buf[:0])
	ordered := orderMoves(pos, ctx, pseudo, ttMove, ply)

	legalMoves := 0
	bestScore := -infinity
	bestMove := board.MoveEmpty
	quietsSearched := make([]board.Move, 0, len(pseudo))
	originalAlpha := alpha

	for _, sm := range ordered {
		m := sm.Move
		pos.MakeMove(m)
		if pos.IsSquareAttacked(pos.KingSquare(pos.SideToMove.Opposite()), pos.SideToMove) {
			pos.UndoMove(m)
			continue
		}
		legalMoves++

		tactical := m.IsTactical()
		if !tactical {
			quietsSearched = append(quietsSearched, m)
		}

		var score int
		if legalMoves == 1 {
			score = -AlphaBeta(ctx, pos, -beta, -alpha, depth-1, ply+1, true)
		} else {
			reduction := lateMoveReduction(ctx, pos, m, depth, legalMoves, inCheck, tactical, ply)
			if reduction > 0 {
				score = -AlphaBeta(ctx, pos, -alpha-1, -alpha, depth-1-reduction, ply+1, true)
				if score > alpha {
					score = -AlphaBeta(ctx, pos, -alpha-1, -alpha, depth-1, ply+1, true)
				}
			} else {
				score = -AlphaBeta(ctx, pos, -alpha-1, -alpha, depth-1, ply+1, true)
			}
			if score > alpha && score < beta {
				score = -AlphaBeta(ctx, pos, -beta, -alpha, depth-1, ply+1, true)
			}
		}

		pos.UndoMove(m)

		if ctx.Stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !tactical {
				ctx.addKiller(ply, m)
				ctx.updateHistory(pos.SideToMove, m, quietsSearched, depth)
			}
			break
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return lossIn(ply)
		}
		return drawScore
	}

	bound := BoundExact
	switch {
	case bestScore <= originalAlpha:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	}
	ctx.TT.Store(pos.ZobristKey, bestMove, int16(scoreToTT(bestScore, ply)), uint8(depth), bound)

	return bestScore
}

// lateMoveReduction computes R per spec §4.5 step 7: R = 1 + ln(depth) *
// ln(legalMovesSeen) / 3, +1 if history is negative, forced to 0 for
// tactical/killer moves, shallow depth, early move indices, or in check.
func lateMoveReduction(ctx *Context, pos *board.Position, m board.Move, depth, legalMovesSeen int, inCheck, tactical bool, ply int) int {
	if tactical || inCheck || depth < 3 || legalMovesSeen < 4 {
		return 0
	}
	if m == ctx.killer(ply, 0) || m == ctx.killer(ply, 1) {
		return 0
	}

	r := 1.0 + math.Log(float64(depth))*math.Log(float64(legalMovesSeen))/3.0
	if ctx.historyScore(pos.SideToMove, m) < 0 {
		r += 1.0
	}
	reduction := int(r)
	if reduction < 0 {
		reduction = 0
	}
	return reduction
}

// Quiescence is the capture-only search with stand-pat and SEE pruning
// (§4.7), grounded on engine/search.go's quiescence loop.
func Quiescence(ctx *Context, pos *board.Position, alpha, beta, ply int) int {
	if ctx.incNode() {
		return 0
	}

	standPat := eval.Evaluate(pos)
	if pos.SideToMove == board.Black {
		standPat = -standPat
	}

	best := standPat
	if best >= beta {
		return best
	}
	if best > alpha {
		alpha = best
	}

	var buf [board.MaxMoves]board.Move
	captures := pos.PseudoLegalCaptures(buf[:0])
	scored := make([]ScoredMove, len(captures))
	for i, m := range captures {
		scored[i] = ScoredMove{m, scoreMove(pos, ctx, m, ply)}
	}

	for len(scored) > 0 {
		idx := bestRemaining(scored)
		m := scored[idx].Move
		scored[idx] = scored[len(scored)-1]
		scored = scored[:len(scored)-1]

		if pos.SEE(m.From(), m.To()) < 0 {
			continue
		}

		pos.MakeMove(m)
		if pos.IsSquareAttacked(pos.KingSquare(pos.SideToMove.Opposite()), pos.SideToMove) {
			pos.UndoMove(m)
			continue
		}

		score := -Quiescence(ctx, pos, -beta, -alpha, ply+1)
		pos.UndoMove(m)

		if ctx.Stopped() {
			return 0
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
			if score >= beta {
				break
			}
		}
	}

	return best
}

func bestRemaining(scored []ScoredMove) int {
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[best].Score {
			best = i
		}
	}
	return best
}
