package eval

import (
	"testing"

	"github.com/oliverans/goosecore/position"
)

func newPos(t *testing.T, fen string) *position.Position {
	t.Helper()
	pos := position.New()
	if err := pos.Set(fen, false); err != nil {
		t.Fatalf("Set(%q): %v", fen, err)
	}
	return pos
}

func TestStartingPositionIsBalanced(t *testing.T) {
	pos := newPos(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if got := (DefaultEvaluator{}).Evaluate(pos); got != 0 {
		t.Fatalf("symmetric starting position should evaluate to 0, got %d", got)
	}
}

func TestExtraQueenIsScoredWinning(t *testing.T) {
	pos := newPos(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if got := (DefaultEvaluator{}).Evaluate(pos); got <= 800 {
		t.Fatalf("white up a bare queen should score clearly positive, got %d", got)
	}
}

func TestEvaluationIsSideToMoveRelative(t *testing.T) {
	white := newPos(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	black := newPos(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	we := DefaultEvaluator{}
	if we.Evaluate(white) != -we.Evaluate(black) {
		t.Fatalf("the same material balance should negate when the side to move flips: white=%d black=%d",
			we.Evaluate(white), we.Evaluate(black))
	}
}
