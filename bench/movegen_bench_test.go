package bench

import (
	"testing"

	"github.com/oliverans/goosecore/position"
)

func benchGenerateMoves(b *testing.B, fen string, kind position.GenKind) {
	pos := position.New()
	if err := pos.Set(fen, false); err != nil {
		b.Fatalf("Set: %v", err)
	}
	buf := make([]position.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.GenerateInto(buf[:0], kind)
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, position.StartFEN, position.GenLegal)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchGenerateMoves(b, fen, position.GenLegal)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
	benchGenerateMoves(b, fen, position.GenLegal)
}

func BenchmarkGenerateCaptures_EP(b *testing.B) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	benchGenerateMoves(b, fen, position.GenCaptures)
}

func BenchmarkGenerateQuiets_Initial(b *testing.B) {
	benchGenerateMoves(b, position.StartFEN, position.GenQuiets)
}

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	pos := position.New()
	if err := pos.Set(position.StartFEN, false); err != nil {
		b.Fatalf("Set: %v", err)
	}
	moves := pos.GenerateInto(nil, position.GenLegal)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			pos.DoMove(m)
			pos.UndoMove(m)
		}
	}
}
