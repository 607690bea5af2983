package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
	"github.com/halfkomma/gochess/search"
)

func TestMateInOneAtRoot(t *testing.T) {
	var pos board.Position
	require.NoError(t, pos.LoadFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"))

	tt := search.NewTranspositionTable(4)
	ctx := search.NewContext(tt)
	result := search.IterativeDeepen(ctx, &pos, nil, 4, nil)

	require.Equal(t, "a1a8", result.BestMove.String())
}

func TestStalemateAtRootScoresZero(t *testing.T) {
	var pos board.Position
	require.NoError(t, pos.LoadFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"))

	tt := search.NewTranspositionTable(4)
	ctx := search.NewContext(tt)
	score := search.AlphaBeta(ctx, &pos, -search.MaxPly*1000, search.MaxPly*1000, 1, 0, true)

	require.Equal(t, 0, score)
}

func TestSearchIsDeterministicAcrossRuns(t *testing.T) {
	var pos board.Position
	require.NoError(t, pos.LoadFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"))

	run := func() (board.Move, int) {
		tt := search.NewTranspositionTable(4)
		ctx := search.NewContext(tt)
		result := search.IterativeDeepen(ctx, &pos, nil, 5, nil)
		return result.BestMove, result.Score
	}

	move1, score1 := run()
	move2, score2 := run()

	require.Equal(t, move1, move2)
	require.Equal(t, score1, score2)
}

func TestQuiescenceCapturesFreeHangingPawn(t *testing.T) {
	var pos board.Position
	require.NoError(t, pos.LoadFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"))

	tt := search.NewTranspositionTable(1)
	ctx := search.NewContext(tt)
	score := search.Quiescence(ctx, &pos, -search.MaxPly*1000, search.MaxPly*1000, 0)

	require.Greater(t, score, 0, "exd5 wins a free pawn and should raise the stand-pat score")
}

func TestDeadlineStopsSearchPromptly(t *testing.T) {
	var pos board.Position
	require.NoError(t, pos.LoadFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"))

	tt := search.NewTranspositionTable(4)
	ctx := search.NewContext(tt)
	ctx.SetDeadline(5 * time.Millisecond)

	start := time.Now()
	search.IterativeDeepen(ctx, &pos, nil, 64, nil)
	require.Less(t, time.Since(start), 2*time.Second)
}
