// Package eval defines the evaluator collaborator the searcher calls at
// leaf nodes. The full hand-tuned positional evaluator (PST tables, king
// safety, pawn structure, mobility — engine/evaluation.go and its tuner)
// is out of scope; this package carries only the interface plus a trivial
// material+piece-square fixture so the searcher is independently testable.
package eval

import "github.com/oliverans/goosecore/position"

// Evaluator scores pos from the side-to-move's perspective, in centipawns.
type Evaluator interface {
	Evaluate(pos *position.Position) int
}

// pieceValue mirrors position's internal midgame values so the fixture's
// material term agrees with SEE/NonPawnMaterial ordering decisions.
var pieceValue = [position.PieceTypeCount]int{0, 100, 320, 330, 500, 900, 0}

// centerPST is a tiny center-biased table that gives the fixture enough
// positional signal to prefer developed, centralized pieces over a bare
// material count, without attempting to reproduce the teacher's full,
// separately-tuned evaluation.
var centerPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// DefaultEvaluator is a minimal material-plus-centralization evaluator,
// grounded on the shape (not the tuned values) of engine/evaluation.go's
// material+PSQT term.
type DefaultEvaluator struct{}

func (DefaultEvaluator) Evaluate(pos *position.Position) int {
	score := 0
	for _, c := range [2]position.Color{position.White, position.Black} {
		sign := 1
		if c == position.Black {
			sign = -1
		}
		for pt := position.Pawn; pt <= position.Queen; pt++ {
			bb := pos.PiecesOf(c, pt)
			score += sign * bb.Count() * pieceValue[pt]
			for b := bb; b != 0; b &= b - 1 {
				sq := b.LSB()
				idx := int(sq)
				if c == position.Black {
					idx ^= 56
				}
				score += sign * centerPST[idx]
			}
		}
	}
	if pos.SideToMove() == position.Black {
		score = -score
	}
	return score
}
