package position

// StateInfo is one undo record in the position's history chain. It is
// heap-allocated per do_move/do_null_move (clone copies the previous record), and chained
// through Previous — the address of an already-pushed record never moves
// no matter how many further moves are made, which is what lets
// repetition/cycle detection hold on to older records safely.
type StateInfo struct {
	Previous *StateInfo

	// Copied from the previous StateInfo on make, then possibly updated.
	MaterialKey      uint64
	PawnKey          uint64
	NonPawnMaterial  [2]int
	CastlingRights   CastlingRight
	Rule50           int
	PliesFromNull    int
	EpSquare         Square

	// Recomputed from scratch on make.
	Key             uint64
	CheckersBB      Bitboard
	KingBlockers    [2]Bitboard
	Pinners         [2]Bitboard
	CheckSquares    [PieceTypeCount]Bitboard
	CapturedPiece   Piece
	Move            Move
	Repetition      int // 0 = none; +n/-n = plies back to first recurrence, sign per two/three-fold
}

func (st *StateInfo) clone() *StateInfo {
	cp := *st
	cp.Previous = st
	cp.Move = MoveNone
	cp.CapturedPiece = Empty
	cp.Repetition = 0
	return &cp
}
