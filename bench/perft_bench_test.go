package bench

import (
	"testing"

	"github.com/oliverans/goosecore/position"
)

// perft counts leaf nodes at depth, recursing through GenLegal/DoMove/UndoMove.
func perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateInto(make([]position.Move, 0, 64), position.GenLegal)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.DoMove(m)
		nodes += perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

func benchPerft(b *testing.B, fen string, depth int) {
	pos := position.New()
	if err := pos.Set(fen, false); err != nil {
		b.Fatalf("Set: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, position.StartFEN, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchPerft(b, fen, 3)
}

// TestPerftInitialD5 and TestPerftKiwipeteD4 pin the exact node counts these
// benchmarks exercise, so a regression in move generation or make/unmake
// shows up as a test failure rather than only a speed change.
func TestPerftInitialD5(t *testing.T) {
	pos := position.New()
	if err := pos.Set(position.StartFEN, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := perft(pos, 5); got != 4865609 {
		t.Errorf("perft(start, 5) = %d, want 4865609", got)
	}
}

func TestPerftKiwipeteD4(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos := position.New()
	if err := pos.Set(fen, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := perft(pos, 4); got != 4085603 {
		t.Errorf("perft(kiwipete, 4) = %d, want 4085603", got)
	}
}
