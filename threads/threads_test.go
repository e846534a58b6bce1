package threads

import (
	"testing"

	"github.com/oliverans/goosecore/eval"
	"github.com/oliverans/goosecore/position"
	"github.com/oliverans/goosecore/search"
	"github.com/oliverans/goosecore/timeman"
)

func TestPoolThinkReturnsALegalMove(t *testing.T) {
	pos := position.New()
	if err := pos.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", false); err != nil {
		t.Fatalf("Set: %v", err)
	}

	pool := New(2, 4, search.Options{Eval: eval.DefaultEvaluator{}})
	res := pool.Think(pos, timeman.Limits{Depth: 2})

	if res.BestMove == position.MoveNone {
		t.Fatalf("expected a best move from the starting position")
	}
	if !pos.PseudoLegal(res.BestMove) || !pos.Legal(res.BestMove) {
		t.Fatalf("pool returned an illegal move: %v", res.BestMove)
	}
	if pool.Running() {
		t.Fatalf("pool should report idle once Think has returned")
	}
}

func TestPoolWorkersShareOneTranspositionTable(t *testing.T) {
	pool := New(4, 4, search.Options{Eval: eval.DefaultEvaluator{}})
	for i := 0; i < 4; i++ {
		if pool.opts.TT == nil {
			t.Fatalf("pool did not allocate a shared table")
		}
	}
	_ = pool.Size()
}
