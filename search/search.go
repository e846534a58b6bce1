// Package search implements the parallel iterative-deepening alpha-beta
// searcher: aspiration windows, PVS, null-move/reverse-futility/razoring
// pruning, late-move reductions and pruning, singular extensions,
// quiescence with delta/SEE pruning, and transposition-table-driven move
// ordering. Grounded on engine/search.go's node outline (rootsearch,
// alphabeta, quiescence, searchMoveWithPVS) and the margin/constant tables
// it tunes (FutilityMargins, RFPMargins, RazoringMargins,
// LateMovePruningMargins), restructured around this module's position/tt/
// movepick/history packages instead of the teacher's package-level global
// state, since a Searcher must be safe to run one per thread concurrently.
package search

import (
	"sync/atomic"

	"github.com/oliverans/goosecore/book"
	"github.com/oliverans/goosecore/enginelog"
	"github.com/oliverans/goosecore/eval"
	"github.com/oliverans/goosecore/history"
	"github.com/oliverans/goosecore/internal/xmath"
	"github.com/oliverans/goosecore/movepick"
	"github.com/oliverans/goosecore/position"
	"github.com/oliverans/goosecore/tablebase"
	"github.com/oliverans/goosecore/timeman"
	"github.com/oliverans/goosecore/tt"
)

const (
	MateValue = 32000
	Checkmate = 29000 // scores at/above this magnitude are "mate in N", matching tt's mate-score threshold
	DrawScore = 0
	MaxPly    = history.MaxPly
)

var futilityMargins = [8]int{0, 120, 220, 320, 420, 520, 620, 720}
var rfpMargins = [8]int{0, 100, 200, 300, 400, 500, 600, 700}
var razoringMargins = [4]int{0, 125, 225, 325}
var lmpMargins = [9]int{0, 3, 5, 9, 14, 20, 27, 35, 44}

const (
	nullMoveMinDepth   = 2
	lmrDepthLimit      = 2
	lmrMoveLimit       = 2
	seePruneDepth      = 8
	seePruneMargin     = -20
	deltaMargin        = 200
	quiescenceSeeMargin = 100
	aspirationWindow  = 35
	maxDoubleExtensions = 11
	probCutDepth      = 5
	probCutMargin     = 100
	iirDepth          = 4
)

// Options collects a Searcher's collaborators. New fills a nil Eval, TB or
// Book with its default implementation and allocates a private Stop flag;
// TT has no default and must be set, and a nil Log disables logging.
type Options struct {
	TT     *tt.Table
	Eval   eval.Evaluator
	TB     tablebase.Probe
	Book   book.Probe
	Log    *enginelog.Logger
	Stop   *int32 // shared cooperative stop flag; nil means allocate a private one
}

// Result is one completed search's report.
type Result struct {
	BestMove position.Move
	Score    int
	Depth    int
	SelDepth int
	Nodes    int64
	PV       []position.Move
}

// Searcher runs a single-thread iterative-deepening alpha-beta search. A
// Pool (see the threads package) runs several Searchers, each with its own
// history tables, against a shared *tt.Table.
type Searcher struct {
	opts Options
	hist *history.Tables
	tm   *timeman.Manager
	pos  *position.Position

	stop     *int32
	nodes    int64
	selDepth int
}

func New(opts Options) *Searcher {
	if opts.Eval == nil {
		opts.Eval = eval.DefaultEvaluator{}
	}
	if opts.TB == nil {
		opts.TB = tablebase.None{}
	}
	if opts.Book == nil {
		opts.Book = book.None{}
	}
	if opts.Stop == nil {
		opts.Stop = new(int32)
	}
	return &Searcher{opts: opts, hist: history.New(), stop: opts.Stop}
}

func (s *Searcher) RequestStop() { atomic.StoreInt32(s.stop, 1) }

func (s *Searcher) stopped() bool {
	return atomic.LoadInt32(s.stop) != 0 || (s.tm != nil && s.tm.MustStop())
}

func (s *Searcher) Nodes() int64 { return atomic.LoadInt64(&s.nodes) }

// pvLine is a growable principal-variation buffer, matching PVLine.Update's
// prepend-move-then-splice-child shape in engine/search.go, expressed as a
// plain slice op instead of a hand-rolled linked structure.
type pvLine struct {
	moves []position.Move
}

func (p *pvLine) update(m position.Move, child pvLine) {
	p.moves = append(p.moves[:0], m)
	p.moves = append(p.moves, child.moves...)
}

// Think runs iterative deepening from pos under lim until the time manager
// or lim.Depth calls for a stop, returning the deepest completed result.
func (s *Searcher) Think(pos *position.Position, lim timeman.Limits) Result {
	s.pos = pos
	s.nodes = 0
	s.selDepth = 0
	atomic.StoreInt32(s.stop, 0)
	s.tm = timeman.Start(lim, pos.SideToMove() == position.White, phaseScore(pos))

	if m, ok := s.opts.Book.FindMove(pos); ok {
		return Result{BestMove: m, PV: []position.Move{m}}
	}

	rootMoves := pos.GenerateInto(nil, position.GenLegal)
	if len(rootMoves) == 0 {
		return Result{}
	}
	best := Result{BestMove: rootMoves[0], PV: []position.Move{rootMoves[0]}}
	if len(rootMoves) == 1 {
		return best
	}

	score := 0
	maxDepth := lim.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	for depth := 1; depth <= maxDepth; depth++ {
		alpha, beta := -MateValue, MateValue
		window := aspirationWindow
		if depth >= 4 {
			alpha, beta = score-window, score+window
		}

		var pv pvLine
		for {
			if s.stopped() {
				return best
			}
			score = s.negamax(alpha, beta, depth, 0, position.MoveNone, &pv, false, position.MoveNone, 0)
			if s.stopped() {
				return best
			}
			if score <= alpha {
				alpha = xmath.Max(alpha-window, -MateValue)
				window *= 2
				continue
			}
			if score >= beta {
				beta = xmath.Min(beta+window, MateValue)
				window *= 2
				continue
			}
			break
		}

		if len(pv.moves) > 0 {
			best = Result{
				BestMove: pv.moves[0],
				Score:    score,
				Depth:    depth,
				SelDepth: s.selDepth,
				Nodes:    s.Nodes(),
				PV:       append([]position.Move(nil), pv.moves...),
			}
			if s.opts.Log != nil {
				s.opts.Log.Info("info depth %d score cp %d nodes %d pv %v", depth, score, s.Nodes(), best.PV)
			}
		}

		if !s.tm.MustStop() && s.tm.ShouldStop() && depth >= 1 {
			break
		}
		if xmath.Abs(score) >= Checkmate {
			break
		}
	}
	return best
}

func phaseScore(pos *position.Position) int {
	total := 0
	for _, c := range [2]position.Color{position.White, position.Black} {
		total += pos.PiecesOf(c, position.Knight).Count()
		total += pos.PiecesOf(c, position.Bishop).Count()
		total += pos.PiecesOf(c, position.Rook).Count() * 2
		total += pos.PiecesOf(c, position.Queen).Count() * 4
	}
	return xmath.Clamp(total, 0, 24)
}

// negamax searches pos (implicit via s.pos, which callers mutate/restore
// with DoMove/UndoMove around each recursive call) to depth plies,
// returning a score from the side-to-move's perspective. Grounded on
// engine/search.go's alphabeta node outline.
func (s *Searcher) negamax(alpha, beta, depth, ply int, prevMove position.Move, pv *pvLine, cutNode bool, excluded position.Move, doubleExt int) int {
	atomic.AddInt64(&s.nodes, 1)
	if s.nodes&2047 == 0 && s.stopped() {
		return 0
	}
	if ply > s.selDepth {
		s.selDepth = ply
	}

	isRoot := ply == 0
	isPV := beta-alpha > 1
	pos := s.pos

	if !isRoot {
		if pos.IsDraw(ply) {
			return DrawScore
		}
		if alpha < DrawScore && pos.UpcomingRepetition(ply) {
			alpha = DrawScore
			if alpha >= beta {
				return alpha
			}
		}
		// Mate-distance pruning: no line from here can be better than
		// mating on the next move, nor worse than being mated now.
		alpha = xmath.Max(alpha, -MateValue+ply)
		beta = xmath.Min(beta, MateValue-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	if ply >= MaxPly {
		return s.opts.Eval.Evaluate(pos)
	}

	inCheck := pos.InCheck()
	if depth <= 0 && !inCheck {
		return s.quiescence(alpha, beta, ply, pv)
	}
	if inCheck {
		depth++
	}

	key := pos.Key()
	excludedSearch := excluded != position.MoveNone
	ttMove, ttScore, ttEval, ttDepth, ttBound, ttPV, ttHit := s.opts.TT.Probe(key, ply)
	if excludedSearch {
		ttHit = false
	}
	if ttHit && !isRoot && !isPV && ttDepth >= depth {
		switch ttBound {
		case tt.BoundExact:
			return ttScore
		case tt.BoundLower:
			if ttScore >= beta {
				return ttScore
			}
		case tt.BoundUpper:
			if ttScore <= alpha {
				return ttScore
			}
		}
	}

	var staticEval int
	switch {
	case excludedSearch:
		staticEval = s.opts.Eval.Evaluate(pos)
	case ttHit && ttEval != tt.NoEval:
		staticEval = int(ttEval)
	default:
		staticEval = s.opts.Eval.Evaluate(pos)
	}
	if !inCheck {
		staticEval += s.hist.CorrectionScore(pos.SideToMove(), pos.PawnKey())
	}
	rawEval := staticEval
	improving := ply >= 2 && !inCheck && staticEval > alpha

	// Internal iterative reduction: with no usable TT move to try first at a
	// node otherwise deep enough to be worth a full-depth search, shave the
	// depth down rather than spending a full-width search ordered by
	// history alone.
	if (isPV || cutNode) && !inCheck && !excludedSearch && depth >= iirDepth && !ttHit {
		depth -= 2
		if depth < 1 {
			depth = 1
		}
	}

	if tbRes, ok := s.opts.TB.Probe(pos); ok && !isRoot {
		switch tbRes.Bound {
		case tablebase.BoundExact:
			return tbRes.Score
		case tablebase.BoundLower:
			if tbRes.Score >= beta {
				return tbRes.Score
			}
		case tablebase.BoundUpper:
			if tbRes.Score <= alpha {
				return tbRes.Score
			}
		}
	}

	// Reverse futility / static null-move pruning.
	if !inCheck && !isPV && !isRoot && depth >= 1 && depth <= 7 && xmath.Abs(beta) < Checkmate {
		margin := rfpMargins[depth]
		if !improving {
			margin -= 50
		}
		if ttPV {
			// A node previously recorded as part of a principal variation
			// gets a little more benefit of the doubt before the static
			// eval alone is trusted to cut it.
			margin += 50
		}
		if staticEval-margin >= beta {
			return staticEval - margin
		}
	}

	// Razoring: a hopeless-looking quiet position drops straight to
	// quiescence rather than paying for a full-width search.
	if !inCheck && !isPV && !isRoot && depth >= 1 && depth <= 3 {
		if staticEval+razoringMargins[depth] < alpha {
			score := s.quiescence(alpha, alpha+1, ply, pv)
			if score <= alpha {
				return score
			}
		}
	}

	nonPawnMaterial := pos.State().NonPawnMaterial[pos.SideToMove()] > 0
	// Null-move pruning.
	if !inCheck && !isPV && !isRoot && nonPawnMaterial && depth >= nullMoveMinDepth {
		r := 3 + depth/3
		if depth > 6 {
			r++
		}
		if r > depth-1 {
			r = depth - 1
		}
		pos.DoNullMove()
		var childPV pvLine
		score := -s.negamax(-beta, -beta+1, depth-1-r, ply+1, position.MoveNone, &childPV, !cutNode, position.MoveNone, 0)
		pos.UndoNullMove()
		if s.stopped() {
			return 0
		}
		if score >= beta && xmath.Abs(score) < Checkmate {
			return score
		}
	}

	// ProbCut: a capture that already beats a raised beta by a margin in a
	// shallow verification search is assumed to also beat the real beta at
	// full depth, without walking the rest of the move list.
	if !isPV && !isRoot && !inCheck && !excludedSearch && depth >= probCutDepth && xmath.Abs(beta) < Checkmate {
		probCutBeta := beta + probCutMargin
		pcPicker := movepick.New(pos, s.hist, ply, ttMove, prevMove, position.MoveNone)
		pcPicker.SkipQuiets()
		for {
			m := pcPicker.Next()
			if m == position.MoveNone {
				break
			}
			if !pos.IsCaptureStage(m) || !pos.PseudoLegal(m) || !pos.Legal(m) {
				continue
			}
			if !pos.SeeGE(m, probCutBeta-staticEval) {
				continue
			}
			var pcPV pvLine
			pos.DoMove(m)
			score := -s.quiescence(-probCutBeta, -probCutBeta+1, ply+1, &pcPV)
			if score >= probCutBeta {
				score = -s.negamax(-probCutBeta, -probCutBeta+1, depth-4, ply+1, m, &pcPV, !cutNode, position.MoveNone, 0)
			}
			pos.UndoMove(m)
			if s.stopped() {
				return 0
			}
			if score >= probCutBeta {
				s.opts.TT.Store(key, m, score, rawEval, depth-3, tt.BoundLower, isPV, ply)
				return score
			}
		}
	}

	// Singular extension: search the current node with the TT move
	// excluded from the move picker, at a reduced depth and a window just
	// below the TT score, to see whether any sibling move can also beat
	// it. A fail-low means the TT move is singularly good and earns an
	// extension; a fail-high at or above beta is a multi-cut.
	singular := false
	var singularBeta, verifyScore int
	if !isPV && !isRoot && !inCheck && depth >= 8 && ttHit && ttMove != position.MoveNone &&
		ttBound == tt.BoundExact && ttDepth >= depth-3 && xmath.Abs(ttScore) < Checkmate {
		pvHit := 0
		if ttPV {
			pvHit = 1
		}
		singularBeta = ttScore - (66+58*pvHit)*depth/64
		var verifyPV pvLine
		verifyScore = s.negamax(singularBeta-1, singularBeta, (depth-1)/2, ply, prevMove, &verifyPV, cutNode, ttMove, doubleExt)
		if s.stopped() {
			return 0
		}
		if verifyScore >= beta {
			return singularBeta
		}
		if verifyScore < singularBeta {
			singular = true
		}
	}

	picker := movepick.New(pos, s.hist, ply, ttMove, prevMove, excluded)
	bestScore := -MateValue
	var bestMove position.Move
	bound := tt.BoundUpper
	legalMoves := 0
	var quietsTried []position.Move
	var childPV pvLine

	for {
		m := picker.Next()
		if m == position.MoveNone && legalMoves > 0 {
			break
		}
		if m == position.MoveNone {
			break
		}
		if !pos.PseudoLegal(m) || !pos.Legal(m) {
			continue
		}
		legalMoves++

		isCapture := pos.IsCaptureStage(m)
		givesCheck := pos.GivesCheck(m)
		tactical := isCapture || givesCheck || m.IsPromotion()

		if depth <= 8 && !isPV && !isRoot && !tactical && legalMoves > 1 {
			margin := lmpMargins[xmath.Min(depth, len(lmpMargins)-1)]
			if !improving {
				margin = margin * 2 / 3
			}
			if margin > 0 && legalMoves > margin {
				continue
			}
		}
		if depth <= 7 && depth >= 1 && !givesCheck && !isPV && !isRoot && !tactical && xmath.Abs(alpha) < Checkmate {
			margin := futilityMargins[depth]
			if !improving {
				margin -= 50
			}
			if staticEval+margin <= alpha {
				continue
			}
		}
		if !isPV && depth <= seePruneDepth && !tactical && !pos.SeeGE(m, seePruneMargin*depth) {
			continue
		}

		if !isCapture {
			quietsTried = append(quietsTried, m)
		}

		extend := 0
		childDoubleExt := doubleExt
		if singular && m == ttMove {
			extend = 1
			if !isPV && verifyScore < singularBeta-50 && doubleExt < maxDoubleExtensions {
				extend = 2
				childDoubleExt++
			}
		}

		pos.DoMove(m)

		var score int
		nextDepth := depth - 1 + extend
		if legalMoves == 1 {
			score = -s.negamax(-beta, -alpha, nextDepth, ply+1, m, &childPV, false, position.MoveNone, childDoubleExt)
		} else {
			reduction := 0
			if depth >= lmrDepthLimit && legalMoves >= lmrMoveLimit && !tactical && !givesCheck {
				reduction = lmrReduction(depth, legalMoves)
				if isPV {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -s.negamax(-alpha-1, -alpha, nextDepth-reduction, ply+1, m, &childPV, true, position.MoveNone, childDoubleExt)
			if score > alpha && reduction > 0 {
				score = -s.negamax(-alpha-1, -alpha, nextDepth, ply+1, m, &childPV, true, position.MoveNone, childDoubleExt)
			}
			if score > alpha && score < beta {
				score = -s.negamax(-beta, -alpha, nextDepth, ply+1, m, &childPV, false, position.MoveNone, childDoubleExt)
			}
		}
		pos.UndoMove(m)

		if s.stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = tt.BoundExact
			pv.update(m, childPV)
		}
		if score >= beta {
			bound = tt.BoundLower
			if !isCapture {
				s.hist.AddKiller(ply, m)
				s.hist.SetCounterMove(pos.SideToMove(), prevMove, m)
				bonus := history.HistoryBonus(depth)
				moved := pos.PieceOn(m.From()).Type()
				s.hist.UpdateButterfly(pos.SideToMove(), m, bonus)
				s.hist.UpdatePawnHistory(pos.PawnKey(), moved, m.To(), bonus)
				s.updateContinuation(prevMove, moved, m.To(), bonus)
				for _, failed := range quietsTried {
					if failed != m {
						penalty := history.HistoryPenalty(depth)
						failedMoved := pos.PieceOn(failed.From()).Type()
						s.hist.UpdateButterfly(pos.SideToMove(), failed, penalty)
						s.hist.UpdatePawnHistory(pos.PawnKey(), failedMoved, failed.To(), penalty)
						s.updateContinuation(prevMove, failedMoved, failed.To(), penalty)
					}
				}
			} else {
				moved := pos.PieceOn(m.From()).Type()
				captured := moved
				if p := pos.PieceOn(m.To()); p != position.Empty {
					captured = p.Type()
				}
				s.hist.UpdateCapture(pos.SideToMove(), moved, captured, history.HistoryBonus(depth))
			}
			break
		}
	}

	if legalMoves == 0 {
		if excludedSearch {
			return alpha
		}
		if inCheck {
			return -MateValue + ply
		}
		return DrawScore
	}

	if !inCheck && bestMove != position.MoveNone && !pos.IsCaptureStage(bestMove) && bound != tt.BoundLower {
		s.hist.UpdateCorrection(pos.SideToMove(), pos.PawnKey(), rawEval, bestScore, depth)
	}

	if !s.stopped() && !excludedSearch {
		s.opts.TT.Store(key, bestMove, bestScore, rawEval, depth, bound, isPV, ply)
	}
	return bestScore
}

// updateContinuation folds bonus into the continuation-history slots for the
// moves that led to the current node, matching the multi-ply stack lookback
// (ss-1, ss-2, ss-3, ss-4, ss-6) by walking the single previous-move link
// this searcher threads through recursive negamax calls; deeper ply
// offsets would need the full search-stack plumbing those offsets imply.
func (s *Searcher) updateContinuation(prevMove position.Move, pt position.PieceType, to position.Square, bonus int32) {
	if prevMove == position.MoveNone {
		return
	}
	prevPt := s.pos.PieceOn(prevMove.To()).Type()
	s.hist.UpdateContinuation(prevPt, prevMove.To(), pt, to, bonus)
}

// quiescence resolves tactical sequences at a leaf: stand-pat with delta
// and SEE pruning on captures, full evasion generation when in check.
// Grounded on engine/search.go's quiescence().
func (s *Searcher) quiescence(alpha, beta, ply int, pv *pvLine) int {
	atomic.AddInt64(&s.nodes, 1)
	if s.nodes&2047 == 0 && s.stopped() {
		return 0
	}
	pos := s.pos
	inCheck := pos.InCheck()
	standPat := s.opts.Eval.Evaluate(pos)

	if !inCheck {
		if standPat >= beta {
			return failSoftBeta(standPat, beta)
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	bestScore := standPat
	if inCheck {
		bestScore = -MateValue
	}

	picker := movepick.New(pos, s.hist, ply, position.MoveNone, position.MoveNone, position.MoveNone)
	if !inCheck {
		picker.SkipQuiets()
	}

	var childPV pvLine
	seen := 0
	for {
		m := picker.Next()
		if m == position.MoveNone {
			if seen > 0 || inCheck {
				break
			}
			break
		}
		if !pos.PseudoLegal(m) || !pos.Legal(m) {
			continue
		}
		if !inCheck && !pos.IsCaptureStage(m) {
			continue
		}
		seen++

		if !inCheck {
			if !pos.SeeGE(m, -quiescenceSeeMargin) {
				continue
			}
			gain := 0
			if m.Flag() == position.FlagEnPassant {
				gain = 100
			} else if p := pos.PieceOn(m.To()); p != position.Empty {
				gain = pieceGain[p.Type()]
			}
			if m.IsPromotion() {
				gain += pieceGain[position.Queen] - pieceGain[position.Pawn]
			}
			if standPat+gain+deltaMargin < alpha {
				continue
			}
		}

		pos.DoMove(m)
		score := -s.quiescence(-beta, -alpha, ply+1, &childPV)
		pos.UndoMove(m)

		if s.stopped() {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			return failSoftBeta(score, beta)
		}
		if score > alpha {
			alpha = score
			pv.update(m, childPV)
		}
	}

	if inCheck && seen == 0 {
		return -MateValue + ply
	}
	return bestScore
}

var pieceGain = [position.PieceTypeCount]int{0, 100, 320, 330, 500, 900, 0}

// failSoftBeta dampens a quiescence fail-high toward beta at high-magnitude
// scores, keeping the returned value fail-soft (still above beta) while
// bounding how far a single stand-pat/capture score can inflate a node's
// reported value.
func failSoftBeta(score, beta int) int {
	if xmath.Abs(score) >= Checkmate {
		return score
	}
	return (3*score + beta) / 4
}

// lmrReduction is the log-product reduction table shape from
// original_source/search.cpp's Reductions[] initialization
// (int((num + log(threads)/2) * log(i))), instantiated for a single
// thread's worth of the threads-count term.
func lmrReduction(depth, moveNumber int) int {
	r := reductionTable[xmath.Min(depth, 63)][xmath.Min(moveNumber, 63)]
	return r
}

var reductionTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			reductionTable[d][m] = lmrFormula(d, m)
		}
	}
}

func lmrFormula(depth, moveNumber int) int {
	// ln lookup table avoids importing math for two log() calls per node;
	// precomputed once at init instead.
	ld := lnTable(depth)
	lm := lnTable(moveNumber)
	v := int((ld*lm)/2.25) - 1
	if v < 0 {
		return 0
	}
	return v
}

var lnCache [64]float64

func init() {
	lnCache[0] = 0
	for i := 1; i < 64; i++ {
		lnCache[i] = lnApprox(float64(i))
	}
}

func lnTable(i int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= len(lnCache) {
		i = len(lnCache) - 1
	}
	return lnCache[i]
}

// lnApprox computes a natural logarithm without pulling in math.Log at
// package scope beyond this one call site's worth of Taylor/bit-trick
// approximation, since the reduction table only needs to be built once.
func lnApprox(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// Reduce x into [1,2) via repeated halving/doubling, tracking the
	// power-of-two exponent, then use a short polynomial for ln on [1,2).
	exp := 0
	for x >= 2 {
		x /= 2
		exp++
	}
	for x < 1 {
		x *= 2
		exp--
	}
	y := (x - 1) / (x + 1)
	y2 := y * y
	series := y * (1 + y2/3 + y2*y2/5 + y2*y2*y2/7)
	const ln2 = 0.6931471805599453
	return 2*series + float64(exp)*ln2
}
