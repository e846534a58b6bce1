package timeman

import (
	"testing"
	"time"
)

func TestFixedMoveTimeIgnoresClock(t *testing.T) {
	m := Start(Limits{MoveTime: 250, WhiteTime: 10}, true, 24)
	if m.optimum != m.maximum {
		t.Fatalf("a fixed move time should set optimum == maximum, got %v/%v", m.optimum, m.maximum)
	}
	if m.optimum.Milliseconds() != 250 {
		t.Fatalf("optimum = %v, want 250ms", m.optimum)
	}
}

func TestInfiniteNeverSuggestsStop(t *testing.T) {
	m := Start(Limits{Infinite: true}, true, 24)
	if m.ShouldStop() || m.MustStop() {
		t.Fatalf("an infinite search must never request a stop")
	}
}

func TestDepthOnlySearchWithNoClockIsEffectivelyUnbounded(t *testing.T) {
	m := Start(Limits{Depth: 10}, true, 24)
	if m.ShouldStop() {
		t.Fatalf("a depth-only limit with no clock state should not stop on time")
	}
}

func TestBudgetShrinksAsClockRunsLow(t *testing.T) {
	ample := Start(Limits{WhiteTime: 60000, WhiteInc: 0}, true, 24)
	scarce := Start(Limits{WhiteTime: 2000, WhiteInc: 0}, true, 24)
	if scarce.optimum >= ample.optimum {
		t.Fatalf("a low remaining clock should budget less time per move: scarce=%v ample=%v", scarce.optimum, ample.optimum)
	}
}

func TestBudgetNeverExceedsRemainingTime(t *testing.T) {
	m := Start(Limits{WhiteTime: 100, WhiteInc: 0}, true, 24)
	if m.optimum > 100*time.Millisecond {
		t.Fatalf("optimum %v exceeds the entire remaining clock", m.optimum)
	}
}

func TestEndgamePhaseEstimatesFewerMovesLeft(t *testing.T) {
	if estimateMovesRemaining(0) >= estimateMovesRemaining(24) {
		t.Fatalf("a bare endgame (phase 0) should estimate fewer moves left than a full board (phase 24)")
	}
}
