package search

import (
	"sync/atomic"
	"time"

	"github.com/halfkomma/gochess/board"
)

// MaxPly bounds search recursion depth; killer slots and the history
// table need no more plies than this.
const MaxPly = 64

const historyClamp = 10000

// ScoredMove pairs a move with the ordering score search.go assigns it.
type ScoredMove struct {
	Move  board.Move
	Score int
}

// Context owns everything that is specific to a single `go` invocation:
// node/time bookkeeping, the shared TT lease, and the killer/history
// tables. One Context exists per search; it does not outlive it.
//
// Grounded on engine/searchContext (node.engine/timeManager split) folded
// into a single struct per the spec's SearchContext, including the killer
// and history tables the teacher keeps elsewhere.
type Context struct {
	TT *TranspositionTable

	stop        atomic.Bool
	deadline    time.Time
	hasDeadline bool
	start       time.Time
	nodes       uint64

	killers [MaxPly + 1][2]board.Move
	history [2][64][64]int32

	RootMoves []ScoredMove
}

// NewContext creates a Context bound to tt for the duration of one search.
func NewContext(tt *TranspositionTable) *Context {
	tt.NewGeneration()
	return &Context{TT: tt, start: time.Now()}
}

// SetDeadline arms the hard cutoff the node loop polls every 2048 nodes.
func (c *Context) SetDeadline(d time.Duration) {
	c.deadline = c.start.Add(d)
	c.hasDeadline = true
}

func (c *Context) Stop() { c.stop.Store(true) }

func (c *Context) Stopped() bool { return c.stop.Load() }

// pollDeadline is called every 2048 nodes; it sets Stop once the deadline
// has elapsed so every active frame can unwind on its next node.
func (c *Context) pollDeadline() {
	if c.hasDeadline && time.Now().After(c.deadline) {
		c.stop.Store(true)
	}
}

func (c *Context) Nodes() uint64 { return atomic.LoadUint64(&c.nodes) }

func (c *Context) Elapsed() time.Duration { return time.Since(c.start) }

// incNode bumps the node counter and, every 2048 nodes, checks the
// deadline. Returns true if the search should abort immediately.
func (c *Context) incNode() bool {
	c.nodes++
	if c.nodes&2047 == 0 {
		c.pollDeadline()
	}
	return c.stop.Load()
}

func (c *Context) killer(ply int, slot int) board.Move {
	if ply > MaxPly {
		ply = MaxPly
	}
	return c.killers[ply][slot]
}

func (c *Context) addKiller(ply int, move board.Move) {
	if ply > MaxPly {
		ply = MaxPly
	}
	if c.killers[ply][0] == move {
		return
	}
	c.killers[ply][1] = c.killers[ply][0]
	c.killers[ply][0] = move
}

func (c *Context) historyScore(color board.Color, m board.Move) int32 {
	return c.history[color][m.From()][m.To()]
}

// updateHistory applies the spec's gravity update: +depth^2 for the move
// that caused the cutoff, -depth^2 for every quiet move tried and rejected
// before it, each folded in via clampHistory's saturating formula rather
// than a flat additive clamp.
func (c *Context) updateHistory(color board.Color, best board.Move, quietsSearched []board.Move, depth int) {
	bonus := int32(depth * depth)
	for _, m := range quietsSearched {
		if m == best {
			continue
		}
		clampHistory(&c.history[color][m.From()][m.To()], -bonus)
	}
	clampHistory(&c.history[color][best.From()][best.To()], bonus)
}

// clampHistory applies history += clamped - history*|clamped|/10000, where
// clamped = clamp(delta, -10000, 10000): a saturating update that approaches
// but never exceeds ±10000, rather than a flat additive clamp.
func clampHistory(slot *int32, delta int32) {
	clamped := delta
	if clamped > historyClamp {
		clamped = historyClamp
	}
	if clamped < -historyClamp {
		clamped = -historyClamp
	}
	abs := clamped
	if abs < 0 {
		abs = -abs
	}
	*slot += clamped - (*slot)*abs/historyClamp
}

// DecayHistory halves every history entry; called once per completed
// iterative-deepening depth per spec §4.8 step 7.
func (c *Context) DecayHistory() {
	for color := range c.history {
		for from := range c.history[color] {
			for to := range c.history[color][from] {
				c.history[color][from][to] /= 2
			}
		}
	}
}
