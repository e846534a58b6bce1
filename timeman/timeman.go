// Package timeman derives optimum/maximum search-time budgets from clock
// state. Grounded on engine/time_management.go's shape (remaining time,
// increment, phase-based moves-left estimate, panic threshold near
// flag-fall) but rewritten self-consistently: the teacher's own
// TimeHandler mixes a movesLeft-based budget with a separate panic branch
// behind an inconsistent method signature (StartTime takes a board pointer
// it only reads game-phase from); this version takes plain millisecond
// inputs so it composes cleanly with a Position from any package without a
// circular import.
package timeman

import "time"

// Limits are the caller-supplied clock state for one search, all in
// milliseconds. MoveTime, when nonzero, requests an exact per-move budget
// and overrides the clock-based estimate entirely.
type Limits struct {
	WhiteTime, WhiteInc int
	BlackTime, BlackInc int
	MovesToGo           int
	MoveTime            int
	Depth               int // 0 = no fixed-depth limit
	Infinite            bool
}

// Manager tracks the deadline for the move currently being searched.
type Manager struct {
	start    time.Time
	optimum  time.Duration
	maximum  time.Duration
	infinite bool
	fixed    bool
}

const (
	overhead    = 30 * time.Millisecond
	panicThresh = 1000 * time.Millisecond
	panicFrac   = 0.9
	maxFraction = 0.7
	minMove     = 5 * time.Millisecond
)

// Start computes optimum/maximum budgets for whiteToMove's side from lim,
// using phaseScore in [0,24] (24 = full material, opening/midgame; 0 = bare
// kings) the way engine/time_management.go's GetPiecePhase-derived
// movesLeft estimate does.
func Start(lim Limits, whiteToMove bool, phaseScore int) *Manager {
	m := &Manager{start: time.Now(), infinite: lim.Infinite}

	if lim.MoveTime > 0 {
		m.optimum = time.Duration(lim.MoveTime) * time.Millisecond
		m.maximum = m.optimum
		m.fixed = true
		return m
	}
	if lim.Infinite || (lim.Depth > 0 && lim.WhiteTime == 0 && lim.BlackTime == 0) {
		m.optimum = time.Hour
		m.maximum = time.Hour
		return m
	}

	rem, inc := lim.BlackTime, lim.BlackInc
	if whiteToMove {
		rem, inc = lim.WhiteTime, lim.WhiteInc
	}
	movesLeft := lim.MovesToGo
	if movesLeft <= 0 {
		movesLeft = estimateMovesRemaining(phaseScore)
	}

	remD := time.Duration(rem) * time.Millisecond
	incD := time.Duration(inc) * time.Millisecond

	var move time.Duration
	switch {
	case inc > 0 && remD < panicThresh:
		move = time.Duration(float64(incD) * panicFrac)
	case inc > 0:
		move = remD/time.Duration(movesLeft) + incD
	default:
		move = remD / 40
	}

	if move < minMove {
		move = minMove
	}
	if ceiling := time.Duration(float64(remD) * maxFraction); move > ceiling {
		move = ceiling
	}
	if move > remD-overhead {
		move = remD - overhead
	}
	if move < minMove {
		move = minMove
	}

	m.optimum = move
	m.maximum = move * 2
	if m.maximum > remD-overhead {
		m.maximum = remD - overhead
	}
	return m
}

// estimateMovesRemaining interpolates between 20 (bare endgame) and 45
// (opening/midgame) moves left, matching the teacher's phase-linear
// estimate.
func estimateMovesRemaining(phase int) int {
	return (phase*25)/24 + 20
}

// ShouldStop reports whether the optimum budget has elapsed — the point at
// which iterative deepening should not start a new iteration.
func (m *Manager) ShouldStop() bool {
	if m.infinite {
		return false
	}
	return time.Since(m.start) >= m.optimum
}

// MustStop reports whether the hard maximum budget has elapsed — the point
// at which a search in progress must abort immediately, even mid-iteration.
func (m *Manager) MustStop() bool {
	if m.infinite {
		return false
	}
	return time.Since(m.start) >= m.maximum
}

func (m *Manager) Elapsed() time.Duration { return time.Since(m.start) }
