package search

import "github.com/halfkomma/gochess/board"

// BoundType classifies what a stored score means relative to the window
// it was produced in.
type BoundType uint8

const (
	BoundEmpty BoundType = iota
	BoundExact
	BoundUpper
	BoundLower
)

// genMask isolates the low 6 bits of gen_and_type (the generation); the
// high 2 bits hold BoundType.
const genMask = 0x3F

// TTEntry is the transposition table's 16-byte-equivalent record: key,
// packed move, score, depth, and a generation+bound byte.
type TTEntry struct {
	Key        uint64
	Move       board.Move
	Score      int16
	Depth      uint8
	genAndType uint8
}

func (e *TTEntry) generation() uint8    { return e.genAndType & genMask }
func (e *TTEntry) boundType() BoundType { return BoundType(e.genAndType >> 6) }

func packGenAndType(gen uint8, bound BoundType) uint8 {
	return (gen & genMask) | uint8(bound)<<6
}

// TranspositionTable is a fixed-size, power-of-two-sized hash table keyed
// by the low bits of the Zobrist key, with depth-or-age replacement (see
// Store). Grounded on
// engine/transpositiontable.go's flat []TTEntry design, resized to the
// spec's 16-byte entry shape and AND-mask indexing instead of modulo.
type TranspositionTable struct {
	entries    []TTEntry
	mask       uint64
	generation uint8
}

// NewTranspositionTable allocates a table sized to the largest power of
// two number of entries that fits in megabytes MB.
func NewTranspositionTable(megabytes int) *TranspositionTable {
	if megabytes < 1 {
		megabytes = 1
	}
	bytesAvailable := 1024 * 1024 * megabytes
	entrySize := 16
	count := bytesAvailable / entrySize
	size := 1
	for size*2 <= count {
		size *= 2
	}
	if size < 1 {
		size = 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, size),
		mask:    uint64(size - 1),
	}
}

// NewGeneration bumps the generation counter, marking every entry from a
// prior search as preferentially replaceable. Called once per `go` command,
// not per iterative-deepening depth.
func (tt *TranspositionTable) NewGeneration() {
	tt.generation = (tt.generation + 1) & genMask
}

// Clear zeroes every entry and resets the generation; used by `ucinewgame`.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.generation = 0
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key & tt.mask
}

// Probe looks up key and reports whether a matching entry exists.
func (tt *TranspositionTable) Probe(key uint64) (entry TTEntry, ok bool) {
	e := &tt.entries[tt.index(key)]
	if e.Key == key && e.boundType() != BoundEmpty {
		return *e, true
	}
	return TTEntry{}, false
}

// Store writes a new entry for key, unless the slot already holds a
// deeper same-generation entry, whatever its key (replacement policy:
// overwrite when new_depth >= stored_depth or the occupant is stale).
func (tt *TranspositionTable) Store(key uint64, move board.Move, score int16, depth uint8, bound BoundType) {
	e := &tt.entries[tt.index(key)]
	deeperSameGen := e.boundType() != BoundEmpty &&
		e.generation() == tt.generation && e.Depth > depth
	if deeperSameGen {
		return
	}
	if move == board.MoveEmpty && e.Key == key {
		move = e.Move
	}
	*e = TTEntry{
		Key:        key,
		Move:       move,
		Score:      score,
		Depth:      depth,
		genAndType: packGenAndType(tt.generation, bound),
	}
}

// HashFull estimates table occupancy in permille, sampling the first 1000
// slots (standard UCI `hashfull` approximation).
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if sampleSize > len(tt.entries) {
		sampleSize = len(tt.entries)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		e := &tt.entries[i]
		if e.boundType() != BoundEmpty && e.generation() == tt.generation {
			used++
		}
	}
	if len(tt.entries) == 0 {
		return 0
	}
	return used * 1000 / sampleSize
}
