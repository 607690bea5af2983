package search

import (
	"time"

	"github.com/halfkomma/gochess/board"
)

// Info is one completed-iteration report, handed to the driver's caller
// (the UCI loop) for formatting as a UCI `info` line.
type Info struct {
	Depth    int
	Score    int
	Mate     bool
	MateIn   int
	Nodes    uint64
	Elapsed  time.Duration
	PV       []board.Move
	HashFull int
}

// Result is the outcome of a full iterative-deepening search.
type Result struct {
	BestMove board.Move
	Score    int
	Depth    int
}

// IterativeDeepen runs the depth-by-depth root search described in the
// spec's driver component: search depth 1, 2, 3, ... against the shared
// TT, re-sorting the root move list by score after each completed
// iteration, until maxDepth is reached or tm signals the soft allocation
// elapsed. onInfo, if non-nil, is called after every completed iteration.
// Grounded on engine/search.go's IterateSearch loop shape, with the
// parallel-thread fan-out removed per the spec's single-threaded model and
// the soft/hard timeout check replaced by TimeManager.
func IterativeDeepen(ctx *Context, pos *board.Position, tm *TimeManager, maxDepth int, onInfo func(Info)) Result {
	var buf [board.MaxMoves]board.Move
	legal := pos.LegalMoves(buf[:0])
	if len(legal) == 0 {
		return Result{BestMove: board.MoveEmpty}
	}

	root := make([]ScoredMove, len(legal))
	for i, m := range legal {
		root[i] = ScoredMove{m, 0}
	}

	result := Result{BestMove: root[0].Move}
	if maxDepth < 1 {
		maxDepth = MaxPly
	}

	for depth := 1; depth <= maxDepth; depth++ {
		alpha := -infinity
		beta := infinity

		for i := range root {
			m := root[i].Move
			pos.MakeMove(m)
			var score int
			if i == 0 {
				score = -AlphaBeta(ctx, pos, -beta, -alpha, depth-1, 1, true)
			} else {
				score = -AlphaBeta(ctx, pos, -alpha-1, -alpha, depth-1, 1, true)
				if score > alpha && !ctx.Stopped() {
					score = -AlphaBeta(ctx, pos, -beta, -alpha, depth-1, 1, true)
				}
			}
			pos.UndoMove(m)

			if ctx.Stopped() {
				break
			}

			root[i].Score = score
			if score > alpha {
				alpha = score
			}
		}

		if ctx.Stopped() && depth > 1 {
			break
		}

		insertionSortDescending(root)

		result.BestMove = root[0].Move
		result.Score = root[0].Score
		result.Depth = depth

		ctx.TT.Store(pos.ZobristKey, root[0].Move, int16(scoreToTT(root[0].Score, 0)), uint8(depth), BoundExact)
		ctx.DecayHistory()

		if onInfo != nil {
			onInfo(buildInfo(ctx, pos, depth, root[0].Score))
		}

		if isMateScore(root[0].Score) {
			break
		}
		if ctx.Stopped() || (tm != nil && tm.SoftExpired()) {
			break
		}
	}

	return result
}

func buildInfo(ctx *Context, pos *board.Position, depth, score int) Info {
	info := Info{
		Depth:    depth,
		Nodes:    ctx.Nodes(),
		Elapsed:  ctx.Elapsed(),
		HashFull: ctx.TT.HashFull(),
		PV:       principalVariation(ctx, pos, depth),
	}
	if isMateScore(score) {
		info.Mate = true
		pliesToMate := mateScore - abs(score)
		info.MateIn = (pliesToMate + 1) / 2
		if score < 0 {
			info.MateIn = -info.MateIn
		}
	} else {
		info.Score = score
	}
	return info
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// principalVariation walks the TT from pos forward, replaying each stored
// best move, bounded by maxLen and by repeated positions so a TT cycle
// cannot loop the walk forever. Make/undo pairs are unwound in a single
// deferred pass.
func principalVariation(ctx *Context, pos *board.Position, maxLen int) []board.Move {
	pv := make([]board.Move, 0, maxLen)
	seen := make(map[uint64]bool, maxLen)
	played := make([]board.Move, 0, maxLen)

	defer func() {
		for i := len(played) - 1; i >= 0; i-- {
			pos.UndoMove(played[i])
		}
	}()

	for len(pv) < maxLen {
		if seen[pos.ZobristKey] {
			break
		}
		seen[pos.ZobristKey] = true

		entry, ok := ctx.TT.Probe(pos.ZobristKey)
		if !ok || entry.Move == board.MoveEmpty || !pos.IsPseudoLegal(entry.Move) {
			break
		}

		pos.MakeMove(entry.Move)
		if pos.IsSquareAttacked(pos.KingSquare(pos.SideToMove.Opposite()), pos.SideToMove) {
			pos.UndoMove(entry.Move)
			break
		}

		pv = append(pv, entry.Move)
		played = append(played, entry.Move)
	}

	return pv
}
