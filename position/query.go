package position

// IsCaptureStage reports whether m captures or is a promotion to queen —
// the capture-stage definition used by move ordering to decide which
// moves need a history-table score versus a static-exchange-driven one.
func (pos *Position) IsCaptureStage(m Move) bool {
	if m.Flag() == FlagEnPassant {
		return true
	}
	if m.IsPromotion() {
		return m.PromotionType() == Queen
	}
	return pos.PieceOn(m.To()) != Empty
}

// IsCapture reports a plain capture (including en passant), independent of
// the capture-stage/promotion distinction above.
func (pos *Position) IsCapture(m Move) bool {
	return m.Flag() == FlagEnPassant || pos.PieceOn(m.To()) != Empty
}

var oppositeDir = [4]int{1, 0, 3, 2}
var oppositeDiagDir = [4]int{3, 2, 1, 0}

// aligned reports whether a, b and c lie on a common rank, file or
// diagonal line (the full line through a and b, extended both ways).
func aligned(a, b, c Square) bool {
	if a == b {
		return c == a
	}
	for d := 0; d < 4; d++ {
		if rookRay[a][d]&SquareBB(b) != 0 {
			return rookRay[a][d]&SquareBB(c) != 0 || rookRay[a][oppositeDir[d]]&SquareBB(c) != 0 || c == a
		}
	}
	for d := 0; d < 4; d++ {
		if bishopRay[a][d]&SquareBB(b) != 0 {
			return bishopRay[a][d]&SquareBB(c) != 0 || bishopRay[a][oppositeDiagDir[d]]&SquareBB(c) != 0 || c == a
		}
	}
	return false
}

// Legal reports whether the pseudo-legal move m leaves the moving side's
// own king safe. Grounded on original_source/position.h's legal() shape
// (en passant discovered-check special case, king moves checked against
// attackers with the king itself removed from occupancy, all other moves
// checked against the precomputed pin mask).
func (pos *Position) Legal(m Move) bool {
	us := pos.sideToMove
	from, to := m.From(), m.To()

	if m.Flag() == FlagEnPassant {
		ksq := pos.KingSquare(us)
		capSq := MakeSquare(to.File(), from.Rank())
		occ := (pos.Occupied() &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(to)
		them := us.Other()
		noRookCheck := RookAttacks(ksq, occ)&(pos.PiecesOf(them, Rook)|pos.PiecesOf(them, Queen)) == 0
		noBishopCheck := BishopAttacks(ksq, occ)&(pos.PiecesOf(them, Bishop)|pos.PiecesOf(them, Queen)) == 0
		return noRookCheck && noBishopCheck
	}

	if pos.PieceOn(from).Type() == King {
		if m.Flag() == FlagCastling {
			return true // generator only emits castling through clear, unattacked squares
		}
		occ := pos.Occupied() &^ SquareBB(from)
		return pos.attackersToBy(to, occ, us.Other()) == 0
	}

	return pos.st.KingBlockers[us]&SquareBB(from) == 0 || aligned(from, to, pos.KingSquare(us))
}

// PseudoLegal reports whether m could be played mechanically from the
// current position (piece present, destination reachable, castling path
// clear) without checking for self-check, matching spec.md's pseudo_legal.
func (pos *Position) PseudoLegal(m Move) bool {
	us := pos.sideToMove
	from, to := m.From(), m.To()
	p := pos.PieceOn(from)
	if p == Empty || p.Color() != us {
		return false
	}
	if pos.PieceOn(to) != Empty && pos.PieceOn(to).Color() == us && m.Flag() != FlagCastling {
		return false
	}

	var ok bool
	switch m.Flag() {
	case FlagEnPassant:
		ok = p.Type() == Pawn && to == pos.st.EpSquare &&
			PawnAttacks(us, from)&SquareBB(to) != 0
	case FlagCastling:
		cr := pos.castlingRightOf(us, to)
		if cr == NoCastling || pos.st.CastlingRights&cr == 0 {
			return false
		}
		idx := castlingIndex(cr)
		ok = pos.st.CheckersBB == 0 && pos.Occupied()&pos.castlingPath[idx] == 0 && !pos.castlingSquaresAttacked(us, from, idx, cr)
	case FlagPromotion:
		ok = p.Type() == Pawn && to.Rank() == promotionRank(us) && pos.pawnTargetReachable(us, from, to)
	default:
		if p.Type() == Pawn {
			if to.Rank() == promotionRank(us) {
				ok = false // promotions must use FlagPromotion
			} else {
				ok = pos.pawnTargetReachable(us, from, to)
			}
		} else {
			ok = AttacksBB(p.Type(), from, pos.Occupied())&SquareBB(to) != 0
		}
	}
	if !ok {
		return false
	}
	return pos.addressesCheck(p, from, to)
}

// addressesCheck rejects a mechanically-valid move that leaves the moving
// side's king under an existing check it does nothing about: Legal only
// checks pins and king-destination safety, so any move reaching it —
// including a stale transposition-table move from a colliding key — must
// already be filtered against the checking piece here, matching
// original_source/position.h's pseudo_legal in-check block (double check
// restricts to king moves; single check restricts to capturing or blocking
// the checker).
func (pos *Position) addressesCheck(moved Piece, from, to Square) bool {
	checkers := pos.st.CheckersBB
	if checkers == 0 {
		return true
	}
	if moved.Type() != King {
		if checkers&(checkers-1) != 0 {
			return false // double check: only the king can move
		}
		checkerSq := checkers.LSB()
		blockMask := checkBlockMask(pos.KingSquare(moved.Color()), checkerSq, pos.PieceOn(checkerSq).Type()) | checkers
		capSq := to
		if pos.PieceOn(from).Type() == Pawn && to == pos.st.EpSquare && pos.PieceOn(to) == Empty {
			capSq = MakeSquare(to.File(), from.Rank())
		}
		return SquareBB(capSq)&checkers != 0 || SquareBB(to)&blockMask != 0
	}
	occWithoutKing := pos.Occupied() &^ SquareBB(from)
	return pos.attackersToBy(to, occWithoutKing, moved.Color().Other()) == 0
}

func promotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func (pos *Position) pawnTargetReachable(us Color, from, to Square) bool {
	occ := pos.Occupied()
	push := pawnPushDir(us)
	oneStep := MakeSquare(from.File(), from.Rank()+push)
	if to == oneStep {
		return pos.PieceOn(to) == Empty
	}
	startRank := 1
	if us == Black {
		startRank = 6
	}
	if from.Rank() == startRank && to == MakeSquare(from.File(), from.Rank()+2*push) {
		return pos.PieceOn(oneStep) == Empty && pos.PieceOn(to) == Empty
	}
	if PawnAttacks(us, from)&SquareBB(to) != 0 {
		return pos.PieceOn(to) != Empty && pos.PieceOn(to).Color() != us
	}
	_ = occ
	return false
}

func (pos *Position) castlingSquaresAttacked(us Color, kingFrom Square, idx int, cr CastlingRight) bool {
	rank := kingFrom.Rank()
	kingDest := MakeSquare(6, rank)
	if cr == WhiteOOO || cr == BlackOOO {
		kingDest = MakeSquare(2, rank)
	}
	lo, hi := kingFrom, kingDest
	if lo > hi {
		lo, hi = hi, lo
	}
	them := us.Other()
	for s := lo; s <= hi; s++ {
		if pos.IsSquareAttacked(s, them) {
			return true
		}
	}
	return false
}

// GivesCheck reports whether playing m would put the opponent's king in
// check, without mutating the position. Grounded on goosemg/move.go's
// GivesCheck (direct check via the precomputed CheckSquares table,
// discovered check via the opponent's king-blockers set, plus the three
// special-move cases).
func (pos *Position) GivesCheck(m Move) bool {
	us := pos.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	pt := pos.PieceOn(from).Type()

	if pos.st.CheckSquares[pt]&SquareBB(to) != 0 {
		return true
	}
	if pos.st.KingBlockers[them]&SquareBB(from) != 0 && !aligned(from, to, pos.KingSquare(them)) {
		return true
	}

	switch m.Flag() {
	case FlagNormal:
		return false
	case FlagPromotion:
		occ := pos.Occupied() &^ SquareBB(from)
		return AttacksBB(m.PromotionType(), to, occ)&SquareBB(pos.KingSquare(them)) != 0
	case FlagEnPassant:
		capSq := MakeSquare(to.File(), from.Rank())
		occ := (pos.Occupied() &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(to)
		ksq := pos.KingSquare(them)
		return RookAttacks(ksq, occ)&(pos.PiecesOf(us, Rook)|pos.PiecesOf(us, Queen)) != 0 ||
			BishopAttacks(ksq, occ)&(pos.PiecesOf(us, Bishop)|pos.PiecesOf(us, Queen)) != 0
	case FlagCastling:
		rookFrom := to
		cr := pos.castlingRightOf(us, rookFrom)
		rank := from.Rank()
		rookDest := MakeSquare(5, rank)
		kingDest := MakeSquare(6, rank)
		if cr == WhiteOOO || cr == BlackOOO {
			rookDest = MakeSquare(3, rank)
			kingDest = MakeSquare(2, rank)
		}
		occ := (pos.Occupied() &^ SquareBB(from) &^ SquareBB(rookFrom)) | SquareBB(rookDest) | SquareBB(kingDest)
		return RookAttacks(rookDest, occ)&SquareBB(pos.KingSquare(them)) != 0
	}
	return false
}
