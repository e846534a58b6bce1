package position

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadFEN is the sentinel wrapped by every FEN-parsing failure, per
// spec.md's BadFen error condition.
var ErrBadFEN = errors.New("bad fen")

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(ch byte) Piece {
	var c Color
	if ch >= 'a' && ch <= 'z' {
		c = Black
	} else {
		c = White
	}
	switch ch | 0x20 {
	case 'p':
		return MakePiece(c, Pawn)
	case 'n':
		return MakePiece(c, Knight)
	case 'b':
		return MakePiece(c, Bishop)
	case 'r':
		return MakePiece(c, Rook)
	case 'q':
		return MakePiece(c, Queen)
	case 'k':
		return MakePiece(c, King)
	}
	return Empty
}

func charFromPiece(p Piece) byte {
	var ch byte
	switch p.Type() {
	case Pawn:
		ch = 'p'
	case Knight:
		ch = 'n'
	case Bishop:
		ch = 'b'
	case Rook:
		ch = 'r'
	case Queen:
		ch = 'q'
	case King:
		ch = 'k'
	}
	if p.Color() == White {
		ch -= 0x20
	}
	return ch
}

// Set parses fen and initializes pos to the described position. chess960
// marks the position as the arbitrary-rook-file castling variant; it does
// not change parsing. The castling field is accepted in KQkq or file-letter
// (shredder-FEN) form either way, and a file letter naming a rook off the
// a/h files turns the variant on by itself.
func (pos *Position) Set(fen string, chess960 bool) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return wrapFEN(ErrBadFEN, "not enough fields")
	}

	*pos = Position{chess960: chess960}
	pos.st = &StateInfo{EpSquare: NoSquare}
	for i := range pos.castlingRookSquare {
		pos.castlingRookSquare[i] = NoSquare
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return wrapFEN(ErrBadFEN, "expected 8 ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == Empty {
				return wrapFEN(ErrBadFEN, "unrecognized piece character")
			}
			if file >= 8 {
				return wrapFEN(ErrBadFEN, "rank overflow")
			}
			pos.addPiece(p, MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return wrapFEN(ErrBadFEN, "rank does not sum to 8 files")
		}
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return wrapFEN(ErrBadFEN, "side to move must be w or b")
	}

	if err := pos.setCastlingField(fields[2]); err != nil {
		return err
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return wrapFEN(ErrBadFEN, "invalid en passant square")
		}
		file := fields[3][0] - 'a'
		rank := fields[3][1] - '1'
		if file > 7 || rank > 7 {
			return wrapFEN(ErrBadFEN, "en passant square out of range")
		}
		ep := MakeSquare(int(file), int(rank))
		if pos.epPseudoLegal(ep) {
			pos.st.EpSquare = ep
		}
	}

	pos.st.Rule50 = 0
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return wrapFEN(ErrBadFEN, "halfmove clock not a number")
		}
		pos.st.Rule50 = n
	}
	fullmove := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return wrapFEN(ErrBadFEN, "fullmove number not a number")
		}
		fullmove = n
	}
	pos.gamePly = max0(2*(fullmove-1), 0) + int(pos.sideToMove)

	if pos.PiecesOf(White, King).Count() != 1 || pos.PiecesOf(Black, King).Count() != 1 {
		return wrapFEN(ErrBadFEN, "each side must have exactly one king")
	}

	pos.refreshState()
	return nil
}

func max0(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// setCastlingField accepts both standard KQkq notation and shredder/file-
// letter notation (A-H/a-h) for the arbitrary-rook-file castling variant.
func (pos *Position) setCastlingField(field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		ch := field[i]
		var c Color
		if ch >= 'a' && ch <= 'z' {
			c = Black
		} else {
			c = White
		}
		upper := ch &^ 0x20
		kingSq := pos.KingSquare(c)
		homeRank := 0
		if c == Black {
			homeRank = 7
		}

		var rookFile int
		switch upper {
		case 'K':
			rookFile = pos.findRookFile(c, homeRank, kingSq.File(), 7)
		case 'Q':
			rookFile = pos.findRookFile(c, homeRank, -1, kingSq.File())
		default:
			if upper < 'A' || upper > 'H' {
				return wrapFEN(ErrBadFEN, "invalid castling rights character")
			}
			rookFile = int(upper - 'A')
			pos.chess960 = pos.chess960 || rookFile != 0 && rookFile != 7
		}
		if rookFile < 0 {
			continue
		}
		rookSq := MakeSquare(rookFile, homeRank)
		var cr CastlingRight
		if rookFile > kingSq.File() {
			cr = pickOO(c)
		} else {
			cr = pickOOO(c)
		}
		idx := castlingIndex(cr)
		pos.castlingRookSquare[idx] = rookSq
		pos.st.CastlingRights |= cr
		pos.buildCastlingPath(idx, cr, kingSq, rookSq)
	}
	return nil
}

func pickOO(c Color) CastlingRight {
	if c == White {
		return WhiteOO
	}
	return BlackOO
}
func pickOOO(c Color) CastlingRight {
	if c == White {
		return WhiteOOO
	}
	return BlackOOO
}

// findRookFile scans outward from the board edge appropriate to the K/Q
// side; standard chess always finds the corner rook, and the same scan
// finds a displaced rook in shredder-style (arbitrary rook file) setups.
func (pos *Position) findRookFile(c Color, rank, lo, hi int) int {
	if lo == -1 {
		for f := 0; f < hi; f++ {
			sq := MakeSquare(f, rank)
			if pos.PieceOn(sq) == MakePiece(c, Rook) {
				return f
			}
		}
		return -1
	}
	for f := 7; f > lo; f-- {
		sq := MakeSquare(f, rank)
		if pos.PieceOn(sq) == MakePiece(c, Rook) {
			return f
		}
	}
	return -1
}

func (pos *Position) buildCastlingPath(idx int, cr CastlingRight, kingSq, rookSq Square) {
	rank := kingSq.Rank()
	kingDest := MakeSquare(6, rank)
	rookDest := MakeSquare(5, rank)
	if cr == WhiteOOO || cr == BlackOOO {
		kingDest = MakeSquare(2, rank)
		rookDest = MakeSquare(3, rank)
	}
	var path Bitboard
	for _, seg := range [][2]Square{{kingSq, kingDest}, {rookSq, rookDest}} {
		lo, hi := seg[0], seg[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		for s := lo; s <= hi; s++ {
			if s != kingSq && s != rookSq {
				path |= SquareBB(s)
			}
		}
	}
	pos.castlingPath[idx] = path
	pos.castlingRightsOf[kingSq] |= cr
	pos.castlingRightsOf[rookSq] |= cr
}

// ToFEN serializes the current position.
func (pos *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pos.board[MakeSquare(file, rank)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if pos.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	cr := pos.st.CastlingRights
	if cr == NoCastling {
		sb.WriteByte('-')
	} else {
		if cr&WhiteOO != 0 {
			sb.WriteByte('K')
		}
		if cr&WhiteOOO != 0 {
			sb.WriteByte('Q')
		}
		if cr&BlackOO != 0 {
			sb.WriteByte('k')
		}
		if cr&BlackOOO != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')
	if pos.st.EpSquare != NoSquare {
		sb.WriteString(pos.st.EpSquare.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.st.Rule50))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.gamePly/2 + 1))
	return sb.String()
}

func wrapFEN(sentinel error, detail string) error {
	return &fenError{sentinel: sentinel, detail: detail}
}

type fenError struct {
	sentinel error
	detail   string
}

func (e *fenError) Error() string { return e.sentinel.Error() + ": " + e.detail }
func (e *fenError) Unwrap() error { return e.sentinel }
