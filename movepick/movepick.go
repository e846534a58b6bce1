// Package movepick provides the staged move iterator the searcher drives
// at every node: TT move, then captures ordered by MVV-LVA/capture history,
// then killers/counter move, then quiets ordered by butterfly/continuation
// history. Grounded on engine/moveordering.go's offset scheme (pvOffset,
// promotionOffset, captureOffset, killerOffset, counterOffset and its
// MVV-LVA table) and goosemg/movegen.go's staged GenCaptures/GenQuiets
// split, restructured from the teacher's selection-sort-per-call scheme
// into a stable batch sort using golang.org/x/exp/slices so the whole
// quiet list only needs to be scored once per node.
package movepick

import (
	"golang.org/x/exp/slices"

	"github.com/oliverans/goosecore/history"
	"github.com/oliverans/goosecore/position"
)

type Stage int

const (
	stagePV Stage = iota
	stageGenCaptures
	stageGoodCaptures
	stageKiller1
	stageKiller2
	stageCounter
	stageGenQuiets
	stageQuiets
	stageBadCaptures
	stageDone
)

const (
	pvScore        = 1 << 24
	captureBase    = 1 << 20
	killerScore    = 1 << 18
	counterScore   = 1 << 17
	badCaptureBase = -(1 << 16)
)

var mvvLva = [position.PieceTypeCount]int{0, 100, 300, 300, 500, 900, 0}

type scored struct {
	m     position.Move
	score int
}

// Picker iterates the moves of one node in stages, matching the search
// loop's need to try the TT move and good captures before generating (and
// paying to score) the quiet list at all.
type Picker struct {
	pos      *position.Position
	hist     *history.Tables
	ply      int
	ttMove   position.Move
	killer1  position.Move
	killer2  position.Move
	counter  position.Move
	excluded position.Move
	us       position.Color

	// prevPieceType/prevTo identify the move that led to this node (the
	// piece now sitting on its destination square), the continuation-
	// history index's "previous" half; MoveNone/Empty when there is no
	// previous move (root, or just after a null move).
	prevPieceType position.PieceType
	prevTo        position.Square

	stage    Stage
	captures []scored
	quiets   []scored
	goodIdx  int
	badIdx   int
	quietIdx int

	skipQuiets bool

	captureBuf []position.Move
	quietBuf   []position.Move

	// inCheck and evasionQuiets hold over from the capture-generation
	// stage: Position.Legal only validates pins/king-safety, it does not
	// verify a move addresses an existing check, so in-check nodes must
	// draw every move (captures, quiets and the killer/counter slots)
	// from GenEvasions rather than the unrestricted GenCaptures/GenQuiets
	// lists, matching the contract GenerateInto documents for GenLegal.
	inCheck       bool
	evasionQuiets []position.Move
}

// New starts a picker for the node at ply, with ttMove (from a transposition
// table hit, or MoveNone) tried first. excluded is the singular-search
// excluded move (MoveNone outside a singular-extension verification), never
// returned by Next.
func New(pos *position.Position, hist *history.Tables, ply int, ttMove, prevMove, excluded position.Move) *Picker {
	us := pos.SideToMove()
	k1, k2 := hist.Killers(ply)
	p := &Picker{
		pos:      pos,
		hist:     hist,
		ply:      ply,
		ttMove:   ttMove,
		killer1:  k1,
		killer2:  k2,
		counter:  hist.CounterMove(us, prevMove),
		excluded: excluded,
		us:       us,
		stage:    stagePV,
		inCheck:  pos.InCheck(),
	}
	if prevMove != position.MoveNone {
		p.prevPieceType = pos.PieceOn(prevMove.To()).Type()
		p.prevTo = prevMove.To()
	}
	if ttMove == position.MoveNone || !pos.PseudoLegal(ttMove) {
		p.stage = stageGenCaptures
	}
	return p
}

// SkipQuiets stops the picker from ever entering the quiet-move stages,
// used in quiescence search and by late-move-pruning callers that only
// want captures/promotions/evasions.
func (p *Picker) SkipQuiets() { p.skipQuiets = true }

// Next returns the next pseudo-legal move to try, or MoveNone when
// exhausted, skipping the excluded move (if any) transparently. Legality
// (pin/discovered-check) is the caller's responsibility via Position.Legal,
// matching the generator's own split.
func (p *Picker) Next() position.Move {
	for {
		m := p.next()
		if m == position.MoveNone {
			return m
		}
		if p.excluded != position.MoveNone && m == p.excluded {
			continue
		}
		return m
	}
}

func (p *Picker) next() position.Move {
	for {
		switch p.stage {
		case stagePV:
			p.stage = stageGenCaptures
			return p.ttMove

		case stageGenCaptures:
			if p.inCheck {
				// Position.Legal only validates pins and king-safety; it
				// assumes the move came from an already check-restricted
				// list (GenEvasions or GenLegal), so an in-check node
				// must not fall back to the unrestricted GenCaptures/
				// GenQuiets lists for any stage, killers and counter
				// move included.
				all := p.pos.GenerateInto(p.captureBuf[:0], position.GenEvasions)
				p.captureBuf = p.captureBuf[:0]
				p.evasionQuiets = p.evasionQuiets[:0]
				for _, m := range all {
					if p.pos.IsCaptureStage(m) {
						p.captureBuf = append(p.captureBuf, m)
					} else {
						p.evasionQuiets = append(p.evasionQuiets, m)
					}
				}
			} else {
				p.captureBuf = p.pos.GenerateInto(p.captureBuf[:0], position.GenCaptures)
			}
			p.captures = scoreCaptures(p.pos, p.hist, p.us, p.captureBuf, p.ttMove)
			slices.SortStableFunc(p.captures, func(a, b scored) bool { return a.score > b.score })
			p.goodIdx = 0
			p.stage = stageGoodCaptures

		case stageGoodCaptures:
			if p.goodIdx < len(p.captures) && p.captures[p.goodIdx].score >= 0 {
				m := p.captures[p.goodIdx].m
				p.goodIdx++
				return m
			}
			p.badIdx = p.goodIdx
			p.stage = stageKiller1

		case stageKiller1:
			p.stage = stageKiller2
			if p.skipQuiets {
				continue
			}
			if p.killer1 != position.MoveNone && p.killer1 != p.ttMove && !p.pos.IsCaptureStage(p.killer1) && p.quietCandidateOK(p.killer1) {
				return p.killer1
			}

		case stageKiller2:
			p.stage = stageCounter
			if p.skipQuiets {
				continue
			}
			if p.killer2 != position.MoveNone && p.killer2 != p.ttMove && !p.pos.IsCaptureStage(p.killer2) && p.quietCandidateOK(p.killer2) {
				return p.killer2
			}

		case stageCounter:
			p.stage = stageGenQuiets
			if p.skipQuiets {
				continue
			}
			if p.counter != position.MoveNone && p.counter != p.ttMove && p.counter != p.killer1 && p.counter != p.killer2 &&
				!p.pos.IsCaptureStage(p.counter) && p.quietCandidateOK(p.counter) {
				return p.counter
			}

		case stageGenQuiets:
			if p.skipQuiets {
				p.stage = stageBadCaptures
				continue
			}
			if p.inCheck {
				p.quietBuf = append(p.quietBuf[:0], p.evasionQuiets...)
			} else {
				p.quietBuf = p.pos.GenerateInto(p.quietBuf[:0], position.GenQuiets)
			}
			p.quiets = scoreQuiets(p.pos, p.hist, p.us, p.quietBuf, p.ttMove, p.killer1, p.killer2, p.counter, p.prevPieceType, p.prevTo)
			slices.SortStableFunc(p.quiets, func(a, b scored) bool { return a.score > b.score })
			p.quietIdx = 0
			p.stage = stageQuiets

		case stageQuiets:
			if p.quietIdx < len(p.quiets) {
				m := p.quiets[p.quietIdx].m
				p.quietIdx++
				return m
			}
			p.stage = stageBadCaptures

		case stageBadCaptures:
			if p.badIdx < len(p.captures) {
				m := p.captures[p.badIdx].m
				p.badIdx++
				return m
			}
			p.stage = stageDone
			return position.MoveNone

		default:
			return position.MoveNone
		}
	}
}

// quietCandidateOK reports whether a remembered killer or counter move is
// safe to try as-is. PseudoLegal already rejects a move that leaves an
// existing check unaddressed, so a killer from a sibling node that doesn't
// fit this node's check is filtered here the same way a stale
// transposition-table move would be.
func (p *Picker) quietCandidateOK(m position.Move) bool {
	return p.pos.PseudoLegal(m)
}

func scoreCaptures(pos *position.Position, hist *history.Tables, us position.Color, moves []position.Move, ttMove position.Move) []scored {
	out := make([]scored, 0, len(moves))
	for _, m := range moves {
		if m == ttMove {
			continue
		}
		moved := pos.PieceOn(m.From()).Type()
		captured := moved
		if m.Flag() == position.FlagEnPassant {
			captured = position.Pawn
		} else if p := pos.PieceOn(m.To()); p != position.Empty {
			captured = p.Type()
		}
		s := captureBase + mvvLva[captured]*8 - mvvLva[moved] + hist.CaptureScore(us, moved, captured)
		if m.IsPromotion() && m.PromotionType() == position.Queen {
			s += captureBase / 2
		}
		if !pos.SeeGE(m, 0) {
			s = badCaptureBase + s%(1<<16)
		}
		out = append(out, scored{m, s})
	}
	return out
}

// scoreQuiets orders quiets by butterfly history plus continuation and
// pawn-structure history, matching §4.3's "quiet moves sorted by butterfly +
// continuation + pawn-structure history" ordering. prevPt/prevTo identify
// the move one ply back (Empty/0 when there is none), the continuation
// table's "previous piece/square" half of its index.
func scoreQuiets(pos *position.Position, hist *history.Tables, us position.Color, moves []position.Move, ttMove, k1, k2, counter position.Move, prevPt position.PieceType, prevTo position.Square) []scored {
	out := make([]scored, 0, len(moves))
	for _, m := range moves {
		if m == ttMove || m == k1 || m == k2 || m == counter {
			continue
		}
		moved := pos.PieceOn(m.From()).Type()
		s := hist.ButterflyScore(us, m) + hist.PawnHistoryScore(pos.PawnKey(), moved, m.To())
		if prevPt != position.NoPieceType {
			s += hist.ContinuationScore(prevPt, prevTo, moved, m.To())
		}
		out = append(out, scored{m, s})
	}
	return out
}
