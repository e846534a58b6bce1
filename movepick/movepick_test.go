package movepick

import (
	"testing"

	"github.com/oliverans/goosecore/history"
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

func collect(p *Picker) []position.Move {
	var out []position.Move
	for {
		m := p.Next()
		if m == position.MoveNone {
			return out
		}
		out = append(out, m)
	}
}

func TestPickerYieldsTTMoveFirst(t *testing.T) {
	pos := newPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	hist := history.New()
	legal := pos.GenerateInto(nil, position.GenLegal)
	tt := legal[len(legal)/2]

	p := New(pos, hist, 0, tt, position.MoveNone, position.MoveNone)
	moves := collect(p)
	if len(moves) == 0 || moves[0] != tt {
		t.Fatalf("expected the tt move first, got %v", moves)
	}
}

func TestPickerCoversEveryLegalMoveExactlyOnce(t *testing.T) {
	pos := newPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	hist := history.New()
	legal := pos.GenerateInto(nil, position.GenLegal)

	p := New(pos, hist, 0, position.MoveNone, position.MoveNone, position.MoveNone)
	seen := map[position.Move]int{}
	for _, m := range collect(p) {
		if !pos.PseudoLegal(m) || !pos.Legal(m) {
			continue
		}
		seen[m]++
	}
	if len(seen) != len(legal) {
		t.Fatalf("picker produced %d distinct legal moves, generator produced %d", len(seen), len(legal))
	}
	for m, n := range seen {
		if n != 1 {
			t.Fatalf("move %v returned %d times, want 1", m, n)
		}
	}
}

func TestPickerInCheckOnlyYieldsEvasions(t *testing.T) {
	// White king on e1 in check from a black rook on e8 (black king on a8),
	// only a handful of evasions are legal.
	pos := newPos(t, "k3r3/8/8/8/8/8/8/4K3 w - - 0 1")
	hist := history.New()
	evasions := pos.GenerateInto(nil, position.GenLegal)

	p := New(pos, hist, 0, position.MoveNone, position.MoveNone, position.MoveNone)
	got := map[position.Move]bool{}
	for _, m := range collect(p) {
		if pos.PseudoLegal(m) && pos.Legal(m) {
			got[m] = true
		}
	}
	if len(got) != len(evasions) {
		t.Fatalf("picker under check produced %d legal moves, generator produced %d", len(got), len(evasions))
	}
}

func TestSkipQuietsOmitsQuietMoves(t *testing.T) {
	pos := newPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	hist := history.New()
	p := New(pos, hist, 0, position.MoveNone, position.MoveNone, position.MoveNone)
	p.SkipQuiets()

	for _, m := range collect(p) {
		if !pos.IsCaptureStage(m) {
			t.Fatalf("SkipQuiets still yielded a quiet move: %v", m)
		}
	}
}

func TestExcludedMoveIsNeverYielded(t *testing.T) {
	pos := newPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	hist := history.New()
	legal := pos.GenerateInto(nil, position.GenLegal)
	excluded := legal[0]

	p := New(pos, hist, 0, excluded, position.MoveNone, excluded)
	for _, m := range collect(p) {
		if m == excluded {
			t.Fatalf("picker yielded the excluded move %v", excluded)
		}
	}
}
