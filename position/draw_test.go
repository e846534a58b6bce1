package position

import "testing"

func findMove(pos *Position, fromStr, toStr string) (Move, bool) {
	from := MakeSquare(int(fromStr[0]-'a'), int(fromStr[1]-'1'))
	to := MakeSquare(int(toStr[0]-'a'), int(toStr[1]-'1'))
	for _, m := range pos.GenerateInto(nil, GenLegal) {
		if m.From() == from && m.To() == to {
			return m, true
		}
	}
	return MoveNone, false
}

func TestThreefoldRepetition(t *testing.T) {
	pos := New()
	if err := pos.Set(StartFEN, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"},
		{"f3", "g1"}, {"f6", "g8"},
		{"g1", "f3"}, {"g8", "f6"},
		{"f3", "g1"}, {"f6", "g8"},
	}
	for i, pair := range shuffle {
		m, ok := findMove(pos, pair[0], pair[1])
		if !ok {
			t.Fatalf("move %d (%s-%s) not found", i, pair[0], pair[1])
		}
		pos.DoMove(m)
	}
	if !pos.IsDraw(100) {
		t.Fatalf("expected threefold repetition draw after knight shuffle")
	}
}

func TestZobristKeyMatchesFromScratch(t *testing.T) {
	pos := New()
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set(%q): %v", fen, err)
		}
		if pos.Key() != pos.recomputeKeyFromScratch() {
			t.Fatalf("%q: incremental key %x != from-scratch key %x", fen, pos.Key(), pos.recomputeKeyFromScratch())
		}
		for _, m := range pos.GenerateInto(nil, GenLegal) {
			pos.DoMove(m)
			if pos.Key() != pos.recomputeKeyFromScratch() {
				t.Fatalf("%q: after %v, incremental key %x != from-scratch key %x", fen, m, pos.Key(), pos.recomputeKeyFromScratch())
			}
			pos.UndoMove(m)
		}
	}
}
