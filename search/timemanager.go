package search

import "time"

// TimeManager turns UCI `go` limits into a soft allocation; HardLimit
// gives the matching hard deadline. Grounded
// on engine/timemanager.go's timeManager/NewTimeManager shape, with
// timeControlSmart's heuristic replaced by the allocation formula named in
// the spec.
type TimeManager struct {
	start    time.Time
	softTime time.Duration
	hasSoft  bool
}

// Limits mirrors the fields a `go` command can carry; zero means absent.
type Limits struct {
	MoveTime       time.Duration
	WhiteTime      time.Duration
	BlackTime      time.Duration
	WhiteIncrement time.Duration
	BlackIncrement time.Duration
	Infinite       bool
}

// NewTimeManager computes the soft allocation for side's clock under
// limits. Infinite, movetime, and depth-only searches get no soft limit.
// The hard deadline is not armed here: callers take it from HardLimit and
// pass it to Context.SetDeadline.
func NewTimeManager(limits Limits, sideToMoveIsWhite bool) *TimeManager {
	tm := &TimeManager{start: time.Now()}

	if limits.Infinite {
		return tm
	}

	if limits.MoveTime > 0 {
		tm.softTime = 0
		tm.hasSoft = false
		return tm
	}

	var timeLeft, increment time.Duration
	if sideToMoveIsWhite {
		timeLeft, increment = limits.WhiteTime, limits.WhiteIncrement
	} else {
		timeLeft, increment = limits.BlackTime, limits.BlackIncrement
	}
	if timeLeft <= 0 {
		return tm
	}

	target := timeLeft/40 + increment
	if cap := (timeLeft * 8) / 10; target > cap {
		target = cap
	}
	target -= 20 * time.Millisecond
	if target < 10*time.Millisecond {
		target = 10 * time.Millisecond
	}

	tm.softTime = target
	tm.hasSoft = true
	return tm
}

// HardLimit resolves the deadline to arm on a Context for limits, applying
// the magnitude-dependent movetime safety margin when movetime was given
// directly, or the wtime/btime allocation otherwise. Returns false when the
// search has no deadline (infinite, or no time control supplied).
func HardLimit(limits Limits, sideToMoveIsWhite bool) (time.Duration, bool) {
	if limits.Infinite {
		return 0, false
	}

	if limits.MoveTime > 0 {
		return limits.MoveTime - movetimeSafetyMargin(limits.MoveTime), true
	}

	var timeLeft, increment time.Duration
	if sideToMoveIsWhite {
		timeLeft, increment = limits.WhiteTime, limits.WhiteIncrement
	} else {
		timeLeft, increment = limits.BlackTime, limits.BlackIncrement
	}
	if timeLeft <= 0 {
		return 0, false
	}

	target := timeLeft/40 + increment
	if cap := (timeLeft * 8) / 10; target > cap {
		target = cap
	}
	target -= 20 * time.Millisecond
	if target < 10*time.Millisecond {
		target = 10 * time.Millisecond
	}
	return target, true
}

// movetimeSafetyMargin applies the spec's magnitude-tiered safety margin
// for a directly-specified movetime.
func movetimeSafetyMargin(movetime time.Duration) time.Duration {
	ms := movetime.Milliseconds()
	switch {
	case ms <= 50:
		return 7 * time.Millisecond
	case ms <= 100:
		return 10 * time.Millisecond
	case ms <= 1000:
		return 15 * time.Millisecond
	default:
		return 20 * time.Millisecond
	}
}

// SoftExpired reports whether the soft allocation for the current
// iteration has elapsed; the iterative-deepening driver polls this between
// depths rather than mid-search.
func (tm *TimeManager) SoftExpired() bool {
	return tm.hasSoft && time.Since(tm.start) >= tm.softTime
}

func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.start) }
