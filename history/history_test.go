package history

import (
	"testing"

	"github.com/oliverans/goosecore/position"
)

func TestKillersInsertAndDemote(t *testing.T) {
	h := New()
	m1 := position.NewMove(12, 20, position.FlagNormal, 0)
	m2 := position.NewMove(12, 28, position.FlagNormal, 0)

	h.AddKiller(5, m1)
	k1, k2 := h.Killers(5)
	if k1 != m1 || k2 != position.MoveNone {
		t.Fatalf("after one insert: got (%v,%v)", k1, k2)
	}

	h.AddKiller(5, m2)
	k1, k2 = h.Killers(5)
	if k1 != m2 || k2 != m1 {
		t.Fatalf("after second insert: got (%v,%v), want (%v,%v)", k1, k2, m2, m1)
	}

	h.AddKiller(5, m2)
	k1, k2 = h.Killers(5)
	if k1 != m2 || k2 != m1 {
		t.Fatalf("re-inserting the primary killer should not shuffle: got (%v,%v)", k1, k2)
	}
}

func TestCounterMoveRoundTrip(t *testing.T) {
	h := New()
	prev := position.NewMove(12, 28, position.FlagNormal, 0)
	reply := position.NewMove(52, 36, position.FlagNormal, 0)

	if got := h.CounterMove(position.White, prev); got != position.MoveNone {
		t.Fatalf("expected no counter move recorded yet, got %v", got)
	}
	h.SetCounterMove(position.White, prev, reply)
	if got := h.CounterMove(position.White, prev); got != reply {
		t.Fatalf("CounterMove = %v, want %v", got, reply)
	}
	if got := h.CounterMove(position.Black, prev); got != position.MoveNone {
		t.Fatalf("counter move table leaked across colors: got %v", got)
	}
}

func TestButterflyScoreSaturates(t *testing.T) {
	h := New()
	m := position.NewMove(12, 28, position.FlagNormal, 0)

	for i := 0; i < 10000; i++ {
		h.UpdateButterfly(position.White, m, HistoryBonus(20))
	}
	score := h.ButterflyScore(position.White, m)
	if score <= 0 {
		t.Fatalf("expected a positive saturated score, got %d", score)
	}
	if score >= historyLimit {
		t.Fatalf("saturating update escaped its bound: got %d, limit %d", score, historyLimit)
	}
}

func TestHistoryPenaltyIsNegativeOfBonus(t *testing.T) {
	for depth := 1; depth <= 12; depth++ {
		if HistoryPenalty(depth) != -HistoryBonus(depth) {
			t.Fatalf("depth %d: penalty %d != -bonus %d", depth, HistoryPenalty(depth), HistoryBonus(depth))
		}
	}
}

func TestClearResetsAllTables(t *testing.T) {
	h := New()
	m := position.NewMove(12, 28, position.FlagNormal, 0)
	h.AddKiller(3, m)
	h.SetCounterMove(position.White, m, m)
	h.UpdateButterfly(position.White, m, HistoryBonus(5))

	h.Clear()

	if k1, k2 := h.Killers(3); k1 != position.MoveNone || k2 != position.MoveNone {
		t.Fatalf("killers survived Clear: (%v,%v)", k1, k2)
	}
	if got := h.CounterMove(position.White, m); got != position.MoveNone {
		t.Fatalf("counter move survived Clear: %v", got)
	}
	if got := h.ButterflyScore(position.White, m); got != 0 {
		t.Fatalf("butterfly score survived Clear: %d", got)
	}
}
