package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
)

func perft(p *board.Position, depth int) uint64 {
	return board.Perft(p, depth)
}

func TestPerftStartpos(t *testing.T) {
	var p board.Position
	p.LoadStartpos()

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tc := range cases {
		require.Equal(t, tc.nodes, perft(&p, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tc := range cases {
		require.Equal(t, tc.nodes, perft(&p, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftEndgame(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"))

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, tc := range cases {
		require.Equal(t, tc.nodes, perft(&p, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftPromotionHeavy(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"))

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}
	for _, tc := range cases {
		require.Equal(t, tc.nodes, perft(&p, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftTrickyEnPassant(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"))

	require.Equal(t, uint64(62379), perft(&p, 3))
}
