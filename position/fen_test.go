package position

import "testing"

func TestSetStartFEN(t *testing.T) {
	pos := New()
	if err := pos.Set(StartFEN, false); err != nil {
		t.Fatalf("Set(StartFEN): %v", err)
	}
	if pos.SideToMove() != White {
		t.Fatalf("side to move = %v, want White", pos.SideToMove())
	}
	if pos.CastlingRights() != AnyCastling {
		t.Fatalf("castling rights = %v, want AnyCastling", pos.CastlingRights())
	}
	if pos.EpSquare() != NoSquare {
		t.Fatalf("ep square = %v, want NoSquare", pos.EpSquare())
	}
	if pos.Occupied().Count() != 32 {
		t.Fatalf("occupied count = %d, want 32", pos.Occupied().Count())
	}
	if err := pos.VerifyInvariants(); err != nil {
		t.Fatalf("VerifyInvariants: %v", err)
	}
}

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range cases {
		pos := New()
		if err := pos.Set(fen, false); err != nil {
			t.Fatalf("Set(%q): %v", fen, err)
		}
		got := pos.ToFEN()
		pos2 := New()
		if err := pos2.Set(got, false); err != nil {
			t.Fatalf("re-Set(%q) from round-trip %q: %v", fen, got, err)
		}
		if pos2.Key() != pos.Key() {
			t.Fatalf("round trip %q -> %q changed key", fen, got)
		}
		if err := pos.VerifyInvariants(); err != nil {
			t.Fatalf("VerifyInvariants(%q): %v", fen, err)
		}
	}
}

func TestBadFEN(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range bad {
		pos := New()
		if err := pos.Set(fen, false); err == nil {
			t.Fatalf("Set(%q) succeeded, want error", fen)
		}
	}
}
