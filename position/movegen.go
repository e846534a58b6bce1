package position

// GenKind selects which stage of moves GenerateInto produces, matching the
// staged lists spec.md's MovePicker consumes.
type GenKind int

const (
	GenCaptures GenKind = iota
	GenQuiets
	GenQuietChecks
	GenEvasions
	GenNonEvasions
	GenLegal
)

// GenerateInto appends moves of the requested kind to dst and returns the
// extended slice. Pseudo-legal generation is restricted by the check mask
// when the side to move is in check (single check: only moves that block
// or capture the checker, or king moves, survive pseudo-legal generation;
// double check: only king moves); Legal() is then used by GenLegal (and by
// MovePicker) to reject pinned-piece and discovered-check violations,
// trading a little generation-time precision for a much simpler generator,
// grounded on the staged shape of goosemg/movegen.go's
// generateMovesFilteredInto but not its inline pin-line bookkeeping.
func (pos *Position) GenerateInto(dst []Move, kind GenKind) []Move {
	switch kind {
	case GenEvasions:
		return pos.generateEvasions(dst)
	case GenLegal:
		if pos.InCheck() {
			return pos.filterLegal(pos.generateEvasions(dst))
		}
		return pos.filterLegal(pos.generatePseudoLegal(dst, true, true))
	case GenNonEvasions:
		return pos.generatePseudoLegal(dst, true, true)
	case GenQuietChecks:
		return pos.generateQuietChecks(dst)
	case GenQuiets:
		return pos.generatePseudoLegal(dst, false, true)
	default: // GenCaptures
		return pos.generatePseudoLegal(dst, true, false)
	}
}

func (pos *Position) filterLegal(moves []Move) []Move {
	out := moves[:0]
	for _, m := range moves {
		if pos.Legal(m) {
			out = append(out, m)
		}
	}
	return out
}

func (pos *Position) generateQuietChecks(dst []Move) []Move {
	all := pos.generatePseudoLegal(nil, false, true)
	out := dst
	for _, m := range all {
		if pos.GivesCheck(m) && pos.Legal(m) {
			out = append(out, m)
		}
	}
	return out
}

// generatePseudoLegal is the single piece-by-piece generator; captures and
// quiets are independent toggles so callers can ask for either, both, or
// (via GenNonEvasions) all pseudo-legal moves regardless of check.
func (pos *Position) generatePseudoLegal(dst []Move, captures, quiets bool) []Move {
	out := dst
	us := pos.sideToMove
	occ := pos.Occupied()
	ownOcc := pos.byColor[us]
	oppOcc := pos.byColor[us.Other()]

	out = pos.genPawnMoves(out, us, occ, oppOcc, captures, quiets, 0)
	for bb := pos.PiecesOf(us, Knight); bb != 0; bb &= bb - 1 {
		from := bb.LSB()
		out = appendTargets(out, from, FlagNormal, 0, knightAttacks[from]&targetMask(ownOcc, oppOcc, captures, quiets))
	}
	for bb := pos.PiecesOf(us, Bishop); bb != 0; bb &= bb - 1 {
		from := bb.LSB()
		out = appendTargets(out, from, FlagNormal, 0, BishopAttacks(from, occ)&targetMask(ownOcc, oppOcc, captures, quiets))
	}
	for bb := pos.PiecesOf(us, Rook); bb != 0; bb &= bb - 1 {
		from := bb.LSB()
		out = appendTargets(out, from, FlagNormal, 0, RookAttacks(from, occ)&targetMask(ownOcc, oppOcc, captures, quiets))
	}
	for bb := pos.PiecesOf(us, Queen); bb != 0; bb &= bb - 1 {
		from := bb.LSB()
		out = appendTargets(out, from, FlagNormal, 0, QueenAttacks(from, occ)&targetMask(ownOcc, oppOcc, captures, quiets))
	}
	ksq := pos.KingSquare(us)
	out = appendTargets(out, ksq, FlagNormal, 0, kingAttacks[ksq]&targetMask(ownOcc, oppOcc, captures, quiets))
	if quiets && !pos.InCheck() {
		out = pos.genCastling(out, us)
	}
	return out
}

func targetMask(ownOcc, oppOcc Bitboard, captures, quiets bool) Bitboard {
	var mask Bitboard
	if captures {
		mask |= oppOcc
	}
	if quiets {
		mask |= ^(ownOcc | oppOcc)
	}
	return mask &^ ownOcc
}

func appendTargets(dst []Move, from Square, flag MoveFlag, promo PieceType, targets Bitboard) []Move {
	for t := targets; t != 0; t &= t - 1 {
		dst = append(dst, NewMove(from, t.LSB(), flag, promo))
	}
	return dst
}

func (pos *Position) genPawnMoves(dst []Move, us Color, occ, oppOcc Bitboard, captures, quiets bool, _ int) []Move {
	push := pawnPushDir(us)
	startRank, promoRank := 1, 7
	if us == Black {
		startRank, promoRank = 6, 0
	}
	for bb := pos.PiecesOf(us, Pawn); bb != 0; bb &= bb - 1 {
		from := bb.LSB()
		rank, file := from.Rank(), from.File()

		if quiets {
			one := MakeSquare(file, rank+push)
			if !occ.Has(one) {
				if one.Rank() == promoRank {
					dst = appendPromotions(dst, from, one)
				} else {
					dst = append(dst, NewMove(from, one, FlagNormal, 0))
				}
				if rank == startRank {
					two := MakeSquare(file, rank+2*push)
					if !occ.Has(two) {
						dst = append(dst, NewMove(from, two, FlagNormal, 0))
					}
				}
			}
		}

		if captures {
			for t := PawnAttacks(us, from) & oppOcc; t != 0; t &= t - 1 {
				to := t.LSB()
				if to.Rank() == promoRank {
					dst = appendPromotions(dst, from, to)
				} else {
					dst = append(dst, NewMove(from, to, FlagNormal, 0))
				}
			}
			if pos.st.EpSquare != NoSquare && PawnAttacks(us, from)&SquareBB(pos.st.EpSquare) != 0 {
				dst = append(dst, NewMove(from, pos.st.EpSquare, FlagEnPassant, 0))
			}
		}
	}
	return dst
}

func appendPromotions(dst []Move, from, to Square) []Move {
	return append(dst,
		newPromoMove(from, to, Queen),
		newPromoMove(from, to, Rook),
		newPromoMove(from, to, Bishop),
		newPromoMove(from, to, Knight),
	)
}

func (pos *Position) genCastling(dst []Move, us Color) []Move {
	for _, cr := range []CastlingRight{pickOO(us), pickOOO(us)} {
		if pos.st.CastlingRights&cr == 0 {
			continue
		}
		idx := castlingIndex(cr)
		rookSq := pos.castlingRookSquare[idx]
		if rookSq == NoSquare {
			continue
		}
		if pos.Occupied()&pos.castlingPath[idx] != 0 {
			continue
		}
		kingFrom := pos.KingSquare(us)
		if pos.castlingSquaresAttacked(us, kingFrom, idx, cr) {
			continue
		}
		dst = append(dst, NewMove(kingFrom, rookSq, FlagCastling, 0))
	}
	return dst
}

// generateEvasions produces pseudo-legal check evasions: in double check
// only king moves to unattacked squares are produced, otherwise moves are
// restricted to the king or to blocking/capturing the sole checker.
func (pos *Position) generateEvasions(dst []Move) []Move {
	us := pos.sideToMove
	ksq := pos.KingSquare(us)
	occ := pos.Occupied()
	checkers := pos.st.CheckersBB
	doubleCheck := checkers&(checkers-1) != 0

	out := dst
	kingTargets := kingAttacks[ksq] &^ pos.byColor[us]
	for t := kingTargets; t != 0; t &= t - 1 {
		to := t.LSB()
		occWithoutKing := occ &^ SquareBB(ksq)
		if pos.attackersToBy(to, occWithoutKing, us.Other()) == 0 {
			out = append(out, NewMove(ksq, to, FlagNormal, 0))
		}
	}
	if doubleCheck {
		return out
	}

	checkerSq := checkers.LSB()
	blockMask := checkBlockMask(ksq, checkerSq, pos.PieceOn(checkerSq).Type()) | checkers

	nonKing := pos.generatePseudoLegal(nil, true, true)
	for _, m := range nonKing {
		if pos.PieceOn(m.From()).Type() == King {
			continue
		}
		if m.Flag() == FlagEnPassant {
			capSq := MakeSquare(m.To().File(), m.From().Rank())
			if SquareBB(capSq)&checkers == 0 && SquareBB(m.To())&blockMask == 0 {
				continue
			}
		} else if SquareBB(m.To())&blockMask == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

func checkBlockMask(ksq, checkerSq Square, checkerType PieceType) Bitboard {
	switch checkerType {
	case Rook, Bishop, Queen:
		return betweenBB(ksq, checkerSq)
	default:
		return 0
	}
}
