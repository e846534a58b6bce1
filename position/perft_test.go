package position

import "testing"

// perft counts leaf nodes at depth, recursing through GenLegal/DoMove/UndoMove.
// Grounded on the node-counting shape of the teacher's perft harness
// (tests/perft_test.go), rewritten against this package's own API.
func perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateInto(make([]Move, 0, 64), GenLegal)
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

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}
	for _, c := range cases {
		pos := New()
		if err := pos.Set(StartFEN, false); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := perft(pos, c.depth); got != c.want {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
	}
	for _, c := range cases {
		pos := New()
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := perft(pos, c.depth); got != c.want {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, c := range cases {
		pos := New()
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := perft(pos, c.depth); got != c.want {
			t.Errorf("perft(pos3, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	}
	for _, c := range cases {
		pos := New()
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := perft(pos, c.depth); got != c.want {
			t.Errorf("perft(pos5, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}
