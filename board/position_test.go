package board_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
)

func TestLoadFENRoundTrip(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		var p board.Position
		require.NoError(t, p.LoadFEN(fen))
		require.Equal(t, fen, p.FEN())
	}
}

func TestMakeUndoRestoresKeyAndFEN(t *testing.T) {
	var p board.Position
	p.LoadStartpos()

	startFEN := p.FEN()
	startKey := p.ZobristKey

	var buf [board.MaxMoves]board.Move
	for _, m := range p.LegalMoves(buf[:0]) {
		p.MakeMove(m)
		p.UndoMove(m)
		require.Equal(t, startKey, p.ZobristKey, "move %s corrupted zobrist key on undo", m)
		require.Equal(t, startFEN, p.FEN(), "move %s corrupted FEN on undo", m)
	}
}

func TestCastlingRightsClearOnRookCapture(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

	require.True(t, p.PlayMove("a1a8"))
	require.Equal(t, uint8(board.WhiteKingSide|board.BlackKingSide), p.CastlingRights)
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1"))

	require.True(t, p.PlayMove("d4e3"))
	piece, _ := p.PieceAt(board.E4)
	require.Equal(t, board.NoPiece, piece)
}

func TestZobristKeyMatchesFreshComputation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var p board.Position
	p.LoadStartpos()

	var buf [board.MaxMoves]board.Move
	for i := 0; i < 200; i++ {
		legal := p.LegalMoves(buf[:0])
		if len(legal) == 0 {
			p.LoadStartpos()
			continue
		}
		m := legal[rng.Intn(len(legal))]
		p.MakeMove(m)

		var fresh board.Position
		require.NoError(t, fresh.LoadFEN(p.FEN()))
		require.Equal(t, fresh.ZobristKey, p.ZobristKey, "zobrist key drifted from incremental maintenance at ply %d", i)
	}
}

func TestInsufficientMaterialDraws(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	require.True(t, p.IsInsufficientMaterial())

	require.NoError(t, p.LoadFEN("4k3/8/8/8/8/8/8/4KN2 w - - 0 1"))
	require.True(t, p.IsInsufficientMaterial())

	require.NoError(t, p.LoadFEN("4k3/8/8/8/8/8/1P6/4K3 w - - 0 1"))
	require.False(t, p.IsInsufficientMaterial())
}
