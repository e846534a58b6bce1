package position

import "testing"

func TestSeeGE(t *testing.T) {
	cases := []struct {
		fen       string
		from, to  string
		threshold int
		want      bool
	}{
		// Pawn takes pawn, nothing recaptures: clearly winning.
		{"4k3/8/8/8/3p4/4P3/8/4K3 w - - 0 1", "e3", "d4", 0, true},
		// Queen takes pawn defended by a pawn: losing the exchange.
		{"4k3/8/2p5/3p4/4Q3/8/8/4K3 w - - 0 1", "e4", "d5", 0, false},
	}
	squareIdx := func(s string) Square {
		return MakeSquare(int(s[0]-'a'), int(s[1]-'1'))
	}
	for _, c := range cases {
		pos := New()
		if err := pos.Set(c.fen, false); err != nil {
			t.Fatalf("Set(%q): %v", c.fen, err)
		}
		from, to := squareIdx(c.from), squareIdx(c.to)
		var m Move
		found := false
		for _, cand := range pos.GenerateInto(nil, GenLegal) {
			if cand.From() == from && cand.To() == to {
				m = cand
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%q: no legal move %s-%s", c.fen, c.from, c.to)
		}
		if got := pos.SeeGE(m, c.threshold); got != c.want {
			t.Errorf("%q SeeGE(%s-%s, %d) = %v, want %v", c.fen, c.from, c.to, c.threshold, got, c.want)
		}
	}
}
