package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
)

// Internal (white-box) tests for Context's unexported history/killer
// bookkeeping, which search.go relies on but which the package deliberately
// does not export.

func TestHistoryUpdateClampsAtLimit(t *testing.T) {
	tt := NewTranspositionTable(1)
	ctx := NewContext(tt)
	m := board.NewMove(board.E2, board.E4, board.Quiet, board.NoPiece)

	for depth := 1; depth <= 200; depth++ {
		ctx.updateHistory(board.White, m, nil, depth)
	}
	require.LessOrEqual(t, ctx.historyScore(board.White, m), int32(historyClamp))
}

func TestHistoryUpdatePenalizesRejectedQuiets(t *testing.T) {
	tt := NewTranspositionTable(1)
	ctx := NewContext(tt)
	best := board.NewMove(board.E2, board.E4, board.Quiet, board.NoPiece)
	rejected := board.NewMove(board.D2, board.D4, board.Quiet, board.NoPiece)

	ctx.updateHistory(board.White, best, []board.Move{rejected, best}, 4)

	require.Equal(t, int32(16), ctx.historyScore(board.White, best))
	require.Equal(t, int32(-16), ctx.historyScore(board.White, rejected))
}

func TestDecayHistoryHalvesEntries(t *testing.T) {
	tt := NewTranspositionTable(1)
	ctx := NewContext(tt)
	m := board.NewMove(board.E2, board.E4, board.Quiet, board.NoPiece)
	ctx.updateHistory(board.White, m, nil, 10)

	before := ctx.historyScore(board.White, m)
	ctx.DecayHistory()
	require.Equal(t, before/2, ctx.historyScore(board.White, m))
}

func TestKillerSlotsShiftOnNewKiller(t *testing.T) {
	tt := NewTranspositionTable(1)
	ctx := NewContext(tt)
	a := board.NewMove(board.E2, board.E4, board.Quiet, board.NoPiece)
	b := board.NewMove(board.D2, board.D4, board.Quiet, board.NoPiece)

	ctx.addKiller(3, a)
	ctx.addKiller(3, b)

	require.Equal(t, b, ctx.killer(3, 0))
	require.Equal(t, a, ctx.killer(3, 1))
}

func TestKillerAtDeepPlyClampsToMaxPly(t *testing.T) {
	tt := NewTranspositionTable(1)
	ctx := NewContext(tt)
	m := board.NewMove(board.E2, board.E4, board.Quiet, board.NoPiece)

	ctx.addKiller(MaxPly+10, m)
	require.Equal(t, m, ctx.killer(MaxPly+10, 0))
}

func TestScoreToFromTTRoundTripsMateScores(t *testing.T) {
	const ply = 5
	stored := scoreToTT(mateScore-2, ply)
	require.Equal(t, mateScore-2+ply, stored)
	require.Equal(t, mateScore-2, scoreFromTT(stored, ply))
}

func TestScoreToFromTTLeavesOrdinaryScoresUnchanged(t *testing.T) {
	require.Equal(t, 135, scoreToTT(135, 7))
	require.Equal(t, 135, scoreFromTT(135, 7))
}
