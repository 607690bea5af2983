package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
	"github.com/halfkomma/gochess/search"
)

func TestTranspositionTableStoreAndProbe(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	tt.Store(0x1234, board.MoveEmpty, 57, 4, search.BoundExact)

	entry, ok := tt.Probe(0x1234)
	require.True(t, ok)
	require.Equal(t, int16(57), entry.Score)
	require.Equal(t, uint8(4), entry.Depth)

	_, ok = tt.Probe(0x5678)
	require.False(t, ok)
}

func TestTranspositionTableKeepsDeeperEntrySameGeneration(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	tt.Store(0x1234, board.MoveEmpty, 10, 8, search.BoundExact)
	tt.Store(0x1234, board.MoveEmpty, 99, 2, search.BoundExact)

	entry, ok := tt.Probe(0x1234)
	require.True(t, ok)
	require.Equal(t, uint8(8), entry.Depth, "shallower store must not overwrite a deeper same-generation entry")
}

func TestTranspositionTableNewGenerationAllowsOverwrite(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	tt.Store(0x1234, board.MoveEmpty, 10, 8, search.BoundExact)
	tt.NewGeneration()
	tt.Store(0x1234, board.MoveEmpty, 99, 2, search.BoundExact)

	entry, ok := tt.Probe(0x1234)
	require.True(t, ok)
	require.Equal(t, uint8(2), entry.Depth, "a stale-generation entry must be replaceable regardless of depth")
}

func TestTranspositionTableClearResetsOccupancy(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	tt.Store(0x1234, board.MoveEmpty, 10, 8, search.BoundExact)
	tt.Clear()

	_, ok := tt.Probe(0x1234)
	require.False(t, ok)
	require.Equal(t, 0, tt.HashFull())
}

func TestTranspositionTableSizeIsPowerOfTwo(t *testing.T) {
	tt := search.NewTranspositionTable(1)
	// 1 MiB / 16 bytes = 65536, already a power of two.
	for i := 0; i < 70000; i++ {
		tt.Store(uint64(i), board.MoveEmpty, int16(i), 1, search.BoundExact)
	}
	require.LessOrEqual(t, tt.HashFull(), 1000)

	// With 65536 slots, keys 65536..69999 land on the slots of keys 0..4463.
	_, ok := tt.Probe(0)
	require.False(t, ok, "key 0 should have been replaced by key 65536")
	_, ok = tt.Probe(65536)
	require.True(t, ok)
	_, ok = tt.Probe(4464)
	require.True(t, ok, "key 4464 shares its slot with no later key")
}
