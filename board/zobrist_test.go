package board_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
)

// TestZobristAvalancheOnMove checks the informal avalanche property: a
// single move should flip roughly half the key's 64 bits, not a tiny or
// enormous fraction (which would indicate a degenerate key table).
func TestZobristAvalancheOnMove(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var p board.Position
	p.LoadStartpos()

	var buf [board.MaxMoves]board.Move
	var totalFlipped, samples int

	for samples < 10000 {
		legal := p.LegalMoves(buf[:0])
		if len(legal) == 0 {
			p.LoadStartpos()
			continue
		}
		m := legal[rng.Intn(len(legal))]
		before := p.ZobristKey
		p.MakeMove(m)
		totalFlipped += bits.OnesCount64(before ^ p.ZobristKey)
		samples++
		if p.IsDraw() || samples%37 == 0 {
			p.LoadStartpos()
		}
	}

	mean := float64(totalFlipped) / float64(samples)
	require.InDelta(t, 32, mean, 4, "mean bits flipped per move should be close to 32")
}

func TestZobristNoCollisionsAmongDistinctFENs(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	seen := make(map[uint64]string, len(fens))
	for _, fen := range fens {
		var p board.Position
		require.NoError(t, p.LoadFEN(fen))
		if other, ok := seen[p.ZobristKey]; ok {
			t.Fatalf("zobrist collision between %q and %q", fen, other)
		}
		seen[p.ZobristKey] = fen
	}
}
