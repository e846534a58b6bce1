package position

// DoMove applies m, pushing a new StateInfo onto the undo chain. The caller
// must have already established m is legal (Legal reports this); DoMove
// itself does not re-validate. Grounded on goosemg/makemove.go's MakeMove.
func (pos *Position) DoMove(m Move) {
	us := pos.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	flag := m.Flag()
	movedPiece := pos.PieceOn(from)
	pt := movedPiece.Type()

	newSt := pos.st.clone()
	newSt.Move = m
	newSt.Rule50++
	newSt.PliesFromNull++
	pos.gamePly++

	var captured Piece

	switch flag {
	case FlagCastling:
		rookFrom := to
		cr := pos.castlingRightOf(us, rookFrom)
		idx := castlingIndex(cr)
		rank := from.Rank()
		kingDest, rookDest := MakeSquare(6, rank), MakeSquare(5, rank)
		if cr == WhiteOOO || cr == BlackOOO {
			kingDest, rookDest = MakeSquare(2, rank), MakeSquare(3, rank)
		}
		_ = idx
		pos.removePiece(from)
		pos.removePiece(rookFrom)
		pos.addPiece(movedPiece, kingDest)
		pos.addPiece(MakePiece(us, Rook), rookDest)

	case FlagEnPassant:
		capSq := MakeSquare(to.File(), from.Rank())
		captured = pos.removePiece(capSq)
		newSt.CapturedPiece = captured
		pos.movePiece(from, to)

	case FlagPromotion:
		if pos.PieceOn(to) != Empty {
			captured = pos.removePiece(to)
			newSt.CapturedPiece = captured
		}
		pos.removePiece(from)
		pos.addPiece(MakePiece(us, m.PromotionType()), to)

	default: // FlagNormal
		if pos.PieceOn(to) != Empty {
			captured = pos.removePiece(to)
			newSt.CapturedPiece = captured
		}
		pos.movePiece(from, to)
	}

	if captured != Empty || pt == Pawn {
		newSt.Rule50 = 0
	}
	if captured != Empty {
		newSt.NonPawnMaterial[them] -= pieceValueMG[captured.Type()]
	}

	newSt.CastlingRights &^= pos.castlingRightsOf[from] | pos.castlingRightsOf[to]

	newSt.EpSquare = NoSquare
	if pt == Pawn && abs8(int8(to)-int8(from)) == 16 {
		cand := MakeSquare(from.File(), (from.Rank()+to.Rank())/2)
		if PawnAttacks(us, cand)&pos.PiecesOf(them, Pawn) != 0 {
			newSt.EpSquare = cand
		}
	}

	pos.sideToMove = them
	pos.st = newSt

	newSt.Key = pos.composeKey()
	newSt.MaterialKey = pos.computeMaterialKey()
	newSt.PawnKey = pos.computePawnKey()

	pos.updateCheckInfo()
	pos.updateRepetition()
}

// UndoMove reverses the most recent DoMove.
func (pos *Position) UndoMove(m Move) {
	pos.sideToMove = pos.sideToMove.Other()
	us := pos.sideToMove
	from, to := m.From(), m.To()
	flag := m.Flag()
	captured := pos.st.CapturedPiece

	switch flag {
	case FlagCastling:
		rookFrom := to
		cr := pos.castlingRightOf(us, rookFrom)
		rank := from.Rank()
		kingDest, rookDest := MakeSquare(6, rank), MakeSquare(5, rank)
		if cr == WhiteOOO || cr == BlackOOO {
			kingDest, rookDest = MakeSquare(2, rank), MakeSquare(3, rank)
		}
		king := pos.removePiece(kingDest)
		pos.removePiece(rookDest)
		pos.addPiece(king, from)
		pos.addPiece(MakePiece(us, Rook), rookFrom)

	case FlagEnPassant:
		pos.movePiece(to, from)
		capSq := MakeSquare(to.File(), from.Rank())
		pos.addPiece(captured, capSq)

	case FlagPromotion:
		pos.removePiece(to)
		pos.addPiece(MakePiece(us, Pawn), from)
		if captured != Empty {
			pos.addPiece(captured, to)
		}

	default:
		pos.movePiece(to, from)
		if captured != Empty {
			pos.addPiece(captured, to)
		}
	}

	pos.gamePly--
	pos.st = pos.st.Previous
}

// DoNullMove passes the turn without moving a piece, for null-move pruning.
func (pos *Position) DoNullMove() {
	newSt := pos.st.clone()
	newSt.Rule50++
	newSt.PliesFromNull = 0
	newSt.EpSquare = NoSquare
	pos.sideToMove = pos.sideToMove.Other()
	pos.st = newSt
	newSt.Key = pos.composeKey()
	pos.updateCheckInfo()
	newSt.Repetition = 0
}

// UndoNullMove reverses DoNullMove.
func (pos *Position) UndoNullMove() {
	pos.sideToMove = pos.sideToMove.Other()
	pos.st = pos.st.Previous
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

func (pos *Position) castlingRightOf(us Color, rookFrom Square) CastlingRight {
	for _, cr := range []CastlingRight{pickOO(us), pickOOO(us)} {
		if pos.castlingRookSquare[castlingIndex(cr)] == rookFrom {
			return cr
		}
	}
	return NoCastling
}
