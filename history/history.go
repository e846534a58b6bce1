// Package history holds the move-ordering memory the searcher accumulates
// across a tree: killer moves, counter moves, and saturating
// butterfly/capture/continuation history tables. Grounded on
// engine/killer.go's per-ply killer slots and engine/moveordering_util.go's
// counter-move/history-with-aging scheme, generalized from dragontoothmg's
// flat counterMove/historyMove globals into per-searcher-thread tables (the
// searcher runs one goroutine per thread, so each needs its own state) with
// a saturating update in place of the teacher's periodic full-table halving.
package history

import "github.com/oliverans/goosecore/position"

const MaxPly = 128

// historyLimit bounds a single table entry; the saturating update formula
// keeps values inside [-historyLimit, historyLimit] without ever needing a
// separate aging pass.
const historyLimit = 16384

// Tables is one thread's worth of move-ordering memory.
type Tables struct {
	killers [MaxPly][2]position.Move
	counter [2][64][64]position.Move

	butterfly [2][64][64]int32
	capture   [2][position.PieceTypeCount][position.PieceTypeCount]int32
	// continuation is indexed by [previous piece type][previous to][piece type][to],
	// approximating a one-ply continuation history (Stockfish keeps several
	// ply offsets; a single offset is the shape kept here, since deeper
	// offsets would need per-node stack threading that pruning depth alone
	// does not otherwise require).
	continuation [position.PieceTypeCount][64][position.PieceTypeCount][64]int32

	// pawnHistory is indexed by [pawnKey mod pawnHistSize][piece type][to],
	// a move-ordering signal keyed on pawn structure rather than the exact
	// position, so it transfers across positions that share a skeleton.
	pawnHistory [pawnHistSize][position.PieceTypeCount][64]int32

	// correction is indexed by [color][pawnKey mod correctionHistSize],
	// accumulating the residual between the static eval and the score the
	// search actually settled on for positions sharing a pawn structure, so
	// a later static eval at the same structure can be nudged toward it.
	correction [2][correctionHistSize]int32
}

const (
	pawnHistSize       = 16384
	correctionHistSize = 16384
	// correctionGrain scales a raw eval-vs-score residual down before it is
	// folded into the saturating accumulator, and scales the accumulated
	// value back up into centipawns on read; matching the grain Stockfish's
	// correction history uses to keep the saturating update well-behaved
	// over centipawn-sized residuals instead of the small killer/history
	// bonus sizes the same saturate() formula was tuned for.
	correctionGrain = 256
	correctionLimit = 1200
)

func New() *Tables { return &Tables{} }

func (t *Tables) Clear() { *t = Tables{} }

// Killers returns the two killer moves recorded at ply.
func (t *Tables) Killers(ply int) (position.Move, position.Move) {
	if ply < 0 || ply >= MaxPly {
		return position.MoveNone, position.MoveNone
	}
	return t.killers[ply][0], t.killers[ply][1]
}

// AddKiller records m as the newest killer at ply, demoting the previous
// primary killer to secondary unless m is already the primary.
func (t *Tables) AddKiller(ply int, m position.Move) {
	if ply < 0 || ply >= MaxPly || m == t.killers[ply][0] {
		return
	}
	t.killers[ply][1] = t.killers[ply][0]
	t.killers[ply][0] = m
}

func (t *Tables) CounterMove(us position.Color, prev position.Move) position.Move {
	if prev == position.MoveNone {
		return position.MoveNone
	}
	return t.counter[us][prev.From()][prev.To()]
}

func (t *Tables) SetCounterMove(us position.Color, prev, m position.Move) {
	if prev == position.MoveNone {
		return
	}
	t.counter[us][prev.From()][prev.To()] = m
}

func saturate(v *int32, bonus int32) {
	*v += bonus - *v*abs32(bonus)/historyLimit
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// ButterflyScore returns the quiet-move history score for m by us.
func (t *Tables) ButterflyScore(us position.Color, m position.Move) int {
	return int(t.butterfly[us][m.From()][m.To()])
}

// UpdateButterfly applies a signed bonus (positive for the move that caused
// a beta cutoff, negative for quiets tried and rejected before it), using
// the same saturating-history formula as the capture and continuation
// tables so a single depth-scaled call site can drive all three.
func (t *Tables) UpdateButterfly(us position.Color, m position.Move, bonus int32) {
	saturate(&t.butterfly[us][m.From()][m.To()], bonus)
}

func (t *Tables) CaptureScore(us position.Color, moved, captured position.PieceType) int {
	return int(t.capture[us][moved][captured])
}

func (t *Tables) UpdateCapture(us position.Color, moved, captured position.PieceType, bonus int32) {
	saturate(&t.capture[us][moved][captured], bonus)
}

func (t *Tables) ContinuationScore(prevPt position.PieceType, prevTo position.Square, pt position.PieceType, to position.Square) int {
	return int(t.continuation[prevPt][prevTo][pt][to])
}

func (t *Tables) UpdateContinuation(prevPt position.PieceType, prevTo position.Square, pt position.PieceType, to position.Square, bonus int32) {
	saturate(&t.continuation[prevPt][prevTo][pt][to], bonus)
}

// PawnHistoryScore returns the pawn-structure history term for a piece of
// type pt moving to to, in a position with pawn key pawnKey.
func (t *Tables) PawnHistoryScore(pawnKey uint64, pt position.PieceType, to position.Square) int {
	return int(t.pawnHistory[pawnKey%pawnHistSize][pt][to])
}

func (t *Tables) UpdatePawnHistory(pawnKey uint64, pt position.PieceType, to position.Square, bonus int32) {
	saturate(&t.pawnHistory[pawnKey%pawnHistSize][pt][to], bonus)
}

// CorrectionScore returns the centipawn adjustment accumulated for us at the
// pawn structure identified by pawnKey, to be added to a raw static eval.
func (t *Tables) CorrectionScore(us position.Color, pawnKey uint64) int {
	return int(t.correction[us][pawnKey%correctionHistSize]) / correctionGrain
}

// UpdateCorrection folds a new (eval, searchScore) observation into the
// correction table for us at pawnKey's structure, scaled by depth the same
// way the other history tables scale their cutoff bonus by depth.
func (t *Tables) UpdateCorrection(us position.Color, pawnKey uint64, eval, searchScore, depth int) {
	bonus := int32((searchScore - eval) * depth * correctionGrain / 8)
	if bonus > correctionLimit*correctionGrain {
		bonus = correctionLimit * correctionGrain
	} else if bonus < -correctionLimit*correctionGrain {
		bonus = -correctionLimit * correctionGrain
	}
	v := &t.correction[us][pawnKey%correctionHistSize]
	*v += bonus - *v*abs32(bonus)/(correctionLimit*correctionGrain)
}

// HistoryBonus is the depth-scaled bonus applied on a beta cutoff, grounded
// on engine/moveordering_util.go's depth*depth increment, widened to the
// wider saturating range used here.
func HistoryBonus(depth int) int32 {
	b := int32(depth * depth * 4)
	if b > historyLimit {
		b = historyLimit
	}
	return b
}

// HistoryPenalty is the (negative) bonus applied to quiets that were tried
// and failed to cause a cutoff before a later move did.
func HistoryPenalty(depth int) int32 {
	return -HistoryBonus(depth)
}
