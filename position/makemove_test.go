package position

import "testing"

// snapshot captures everything UndoMove should restore, so a round trip can
// be checked without relying on unexported field comparison via reflection.
type snapshot struct {
	fen string
	key uint64
}

func take(pos *Position) snapshot {
	return snapshot{fen: pos.ToFEN(), key: pos.Key()}
}

func TestDoUndoMoveRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		pos := New()
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set(%q): %v", fen, err)
		}
		before := take(pos)
		moves := pos.GenerateInto(nil, GenLegal)
		for _, m := range moves {
			pos.DoMove(m)
			if err := pos.VerifyInvariants(); err != nil {
				t.Fatalf("%q: after DoMove(%v): %v", fen, m, err)
			}
			pos.UndoMove(m)
			after := take(pos)
			if after != before {
				t.Fatalf("%q: DoMove/UndoMove(%v) did not restore position: got %+v, want %+v", fen, m, after, before)
			}
		}
	}
}

func TestDoUndoNullMove(t *testing.T) {
	pos := New()
	if err := pos.Set(StartFEN, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	before := take(pos)
	pos.DoNullMove()
	if pos.SideToMove() != Black {
		t.Fatalf("side to move after null move = %v, want Black", pos.SideToMove())
	}
	pos.UndoNullMove()
	after := take(pos)
	if after != before {
		t.Fatalf("DoNullMove/UndoNullMove did not restore position: got %+v, want %+v", after, before)
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// Black rook on a8 is captured by a white piece; white loses nothing,
	// black loses queenside castling.
	pos := New()
	if err := pos.Set("r3k2r/8/8/8/8/8/8/R1B1K1NR w KQkq - 0 1", false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var capture Move
	for _, m := range pos.GenerateInto(nil, GenLegal) {
		if m.To() == MakeSquare(0, 7) && pos.IsCapture(m) {
			capture = m
			break
		}
	}
	if capture == MoveNone {
		t.Skip("no move captures a8 rook from this setup")
	}
	pos.DoMove(capture)
	if pos.CastlingRights()&BlackOOO != 0 {
		t.Fatalf("black queenside castling right survived capture of its rook")
	}
	if pos.CastlingRights()&BlackOO == 0 {
		t.Fatalf("black kingside castling right lost unexpectedly")
	}
}
