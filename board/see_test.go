package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
)

func TestSEERookTakesPawnNoRecapture(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1"))
	require.Equal(t, 100, p.SEE(board.E1, board.E5))
}

func TestSEEKnightTakesPawnLosesExchange(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1"))
	require.Equal(t, -220, p.SEE(board.D3, board.E5))
}

func TestSEEUndefendedPawnIsFree(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"))
	require.Equal(t, 100, p.SEE(board.E4, board.D5))
}
