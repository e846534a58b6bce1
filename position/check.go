package position

// sliderBlockers computes, for the given side's king, the set of pieces (of
// either color) that are the sole blocker between an enemy slider in
// sliders and the king square, plus the sliders that pin them. Grounded on
// goosemg/movegen.go's computeCheckAndPins pin-detection loop, generalized
// to also serve discovered-check detection (kingBlockers of the *moving*
// side's own king, tested against the mover's own sliders, is exactly a
// discovered-check source).
func (pos *Position) sliderBlockers(sliders Bitboard, ksq Square, pinnersOut *Bitboard) Bitboard {
	var blockers Bitboard
	*pinnersOut = 0
	occ := pos.Occupied()

	snipers := ((rookRay[ksq][0] | rookRay[ksq][1] | rookRay[ksq][2] | rookRay[ksq][3]) &
		(pos.byType[Rook] | pos.byType[Queen])) |
		((bishopRay[ksq][0] | bishopRay[ksq][1] | bishopRay[ksq][2] | bishopRay[ksq][3]) &
			(pos.byType[Bishop] | pos.byType[Queen]))
	snipers &= sliders

	occExceptSnipers := occ &^ snipers
	for s := snipers; s != 0; s &= s - 1 {
		sq := s.LSB()
		between := betweenBB(ksq, sq) & occExceptSnipers
		if between != 0 && (between&(between-1)) == 0 {
			blockers |= between
			owner := between & pos.byColor[pos.PieceOn(ksq).Color()]
			if owner != 0 {
				*pinnersOut |= SquareBB(sq)
			}
		}
	}
	return blockers
}

// betweenBB returns the squares strictly between a and b if they are
// aligned on a rank, file or diagonal; else 0.
func betweenBB(a, b Square) Bitboard {
	for d := 0; d < 4; d++ {
		if rookRay[a][d]&SquareBB(b) != 0 {
			return rookRay[a][d] &^ rookRay[b][d] &^ SquareBB(b)
		}
	}
	for d := 0; d < 4; d++ {
		if bishopRay[a][d]&SquareBB(b) != 0 {
			return bishopRay[a][d] &^ bishopRay[b][d] &^ SquareBB(b)
		}
	}
	return 0
}

func (pos *Position) attackersTo(sq Square, occ Bitboard) Bitboard {
	return (PawnAttacks(Black, sq) & pos.PiecesOf(White, Pawn)) |
		(PawnAttacks(White, sq) & pos.PiecesOf(Black, Pawn)) |
		(KnightAttacks(sq) & pos.byType[Knight]) |
		(RookAttacks(sq, occ) & (pos.byType[Rook] | pos.byType[Queen])) |
		(BishopAttacks(sq, occ) & (pos.byType[Bishop] | pos.byType[Queen])) |
		(KingAttacks(sq) & pos.byType[King])
}

func (pos *Position) attackersToBy(sq Square, occ Bitboard, by Color) Bitboard {
	return pos.attackersTo(sq, occ) & pos.byColor[by]
}

func (pos *Position) IsSquareAttacked(sq Square, by Color) bool {
	return pos.attackersToBy(sq, pos.Occupied(), by) != 0
}

// updateCheckInfo recomputes st.CheckersBB, KingBlockers, Pinners and
// CheckSquares for the side to move, called after every do_move/do_null_move
// and once during Set. It is not incremental — Stockfish's own
// set_check_info recomputes from scratch on each ply too, since blockers
// depend on the full board shape, not just the last move's squares.
func (pos *Position) updateCheckInfo() {
	st := pos.st
	us, them := pos.sideToMove, pos.sideToMove.Other()
	ksq := pos.KingSquare(us)
	occ := pos.Occupied()

	st.CheckersBB = pos.attackersToBy(ksq, occ, them)

	st.KingBlockers[White] = pos.sliderBlockers(pos.byColor[Black], pos.KingSquare(White), &st.Pinners[Black])
	st.KingBlockers[Black] = pos.sliderBlockers(pos.byColor[White], pos.KingSquare(Black), &st.Pinners[White])

	theirKing := pos.KingSquare(them)
	occNoUsKing := occ
	st.CheckSquares[Pawn] = PawnAttacks(them, theirKing)
	st.CheckSquares[Knight] = KnightAttacks(theirKing)
	st.CheckSquares[Bishop] = BishopAttacks(theirKing, occNoUsKing)
	st.CheckSquares[Rook] = RookAttacks(theirKing, occNoUsKing)
	st.CheckSquares[Queen] = st.CheckSquares[Bishop] | st.CheckSquares[Rook]
	st.CheckSquares[King] = 0
}

func (pos *Position) refreshState() {
	pos.updateCheckInfo()
	pos.st.Key = pos.composeKey()
	pos.st.PawnKey = pos.computePawnKey()
	pos.st.MaterialKey = pos.computeMaterialKey()
	pos.st.NonPawnMaterial[White] = pos.computeNonPawnMaterial(White)
	pos.st.NonPawnMaterial[Black] = pos.computeNonPawnMaterial(Black)
	pos.st.PliesFromNull = 0
	pos.st.Repetition = 0
}

// recomputeKeyFromScratch rebuilds the full Zobrist key by scanning every
// square, independent of the incremental pieceKeyAccum. Used only by
// VerifyInvariants (grounded on goosemg/board.go's Validate()) to catch
// incremental-maintenance bugs in tests.
func (pos *Position) recomputeKeyFromScratch() uint64 {
	var pieceAccum uint64
	for s := Square(0); s < 64; s++ {
		if p := pos.board[s]; p != Empty {
			pieceAccum ^= pieceKey(p, s)
		}
	}
	key := pieceAccum
	if pos.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[pos.st.CastlingRights]
	if pos.st.EpSquare != NoSquare {
		key ^= zobristEnPassant[pos.st.EpSquare.File()]
	}
	return key
}

func (pos *Position) computePawnKey() uint64 {
	var key uint64
	for _, c := range [2]Color{White, Black} {
		for bb := pos.PiecesOf(c, Pawn); bb != 0; bb &= bb - 1 {
			key ^= pieceKey(MakePiece(c, Pawn), bb.LSB())
		}
	}
	return key
}

func (pos *Position) computeMaterialKey() uint64 {
	var key uint64
	for p := Piece(1); p < 16; p++ {
		if p.Type() == NoPieceType {
			continue
		}
		if n := pos.count[p]; n > 0 {
			key ^= zobristMaterial[p][n]
		}
	}
	return key
}

var pieceValueMG = [PieceTypeCount]int{0, 0, 320, 330, 500, 900, 0}

func (pos *Position) computeNonPawnMaterial(c Color) int {
	total := 0
	for pt := Knight; pt <= Queen; pt++ {
		total += pos.PiecesOf(c, pt).Count() * pieceValueMG[pt]
	}
	return total
}

// epPseudoLegal reports whether an en-passant capture onto ep would be
// pseudo-legal right now (there is an enemy pawn that just double-stepped
// adjacent to ep's file), used by Set/DoMove to decide whether to fold the
// ep file into the Zobrist key, matching the invariant that en passant only
// contributes to the key when it could actually be played.
func (pos *Position) epPseudoLegal(ep Square) bool {
	us := pos.sideToMove
	capSq := MakeSquare(ep.File(), ep.Rank()-pawnPushDir(us))
	if pos.PieceOn(capSq) != MakePiece(us.Other(), Pawn) {
		return false
	}
	return PawnAttacks(us.Other(), ep)&pos.PiecesOf(us, Pawn) != 0
}

func pawnPushDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}
