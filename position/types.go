// Package position implements the board representation: bitboards, the
// incrementally-maintained Position, move making/unmaking, move generation,
// static exchange evaluation, and repetition/cycle detection.
package position

import "fmt"

// Square is a board square in [0, 63], a8=56 h1=7 style indexing: file + 8*rank.
type Square int8

const NoSquare Square = -1

func MakeSquare(file, rank int) Square { return Square(rank*8 + file) }
func (s Square) File() int             { return int(s) & 7 }
func (s Square) Rank() int             { return int(s) >> 3 }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}

// Color is White or Black.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color { return c ^ 1 }

// PieceType is the colorless kind of piece.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeCount
)

// Piece packs a Color and a PieceType. Empty is the zero value.
type Piece int8

const Empty Piece = 0

func MakePiece(c Color, pt PieceType) Piece { return Piece(pt) | Piece(c)<<3 }
func (p Piece) Type() PieceType             { return PieceType(p & 7) }
func (p Piece) Color() Color                { return Color(p >> 3) }
func (p Piece) IsEmpty() bool               { return p.Type() == NoPieceType }

// Bitboard is a 64-bit set of squares.
type Bitboard uint64

func SquareBB(s Square) Bitboard { return Bitboard(1) << uint(s) }

func (b Bitboard) Has(s Square) bool  { return b&SquareBB(s) != 0 }
func (b Bitboard) Count() int         { return popcount(b) }
func (b Bitboard) LSB() Square        { return Square(trailingZeros(b)) }
func (b Bitboard) MSB() Square        { return Square(63 - leadingZeros(b)) }
func (b Bitboard) PopLSB() (Square, Bitboard) {
	s := b.LSB()
	return s, b & (b - 1)
}

const FileA Bitboard = 0x0101010101010101
const Rank1 Bitboard = 0xFF

// Move encodes (from, to, promotion, flag) into 16 bits, matching a
// castling-variant-agnostic representation: castling is "king captures own
// rook", i.e. To() is the rook's origin square.
type Move uint16

const (
	MoveNone Move = 0
	// A null (pass) move is represented out of band by Position.DoNullMove,
	// since the 0/0 encoding of MoveNone must remain distinguishable.
	MoveNull Move = 0xFFFF
)

type MoveFlag uint8

const (
	FlagNormal MoveFlag = iota
	FlagEnPassant
	FlagCastling
	FlagPromotion
)

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePromoShift = 12
	moveFlagShift  = 14
	moveMask6      = 0x3F
)

func NewMove(from, to Square, flag MoveFlag, promo PieceType) Move {
	return Move(uint16(from)&moveMask6) |
		Move(uint16(to)&moveMask6)<<moveToShift |
		Move(uint16(promo)&0x3)<<movePromoShift |
		Move(uint16(flag)&0x3)<<moveFlagShift
}

func (m Move) From() Square      { return Square((m >> moveFromShift) & moveMask6) }
func (m Move) To() Square        { return Square((m >> moveToShift) & moveMask6) }
func (m Move) Flag() MoveFlag    { return MoveFlag((m >> moveFlagShift) & 0x3) }
func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }

// PromotionType decodes the promotion piece; the 2-bit field stores
// Knight..Queen offset by Knight so all four fit in 2 bits.
func (m Move) PromotionType() PieceType {
	return Knight + PieceType((m>>movePromoShift)&0x3)
}

func newPromoMove(from, to Square, pt PieceType) Move {
	return Move(uint16(from)&moveMask6) |
		Move(uint16(to)&moveMask6)<<moveToShift |
		Move(uint16(pt-Knight)&0x3)<<movePromoShift |
		Move(uint16(FlagPromotion))<<moveFlagShift
}

func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	if m == MoveNull {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("  nbrq"[m.PromotionType()])
	}
	return s
}

// CastlingRight is one of the four castling permissions.
type CastlingRight uint8

const (
	WhiteOO CastlingRight = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO
	NoCastling CastlingRight = 0
	AnyCastling              = WhiteOO | WhiteOOO | BlackOO | BlackOOO
)

// CastlingIndex is a small [0,4) index used to address per-right arrays
// (castlingRookSquare, castlingPath).
func castlingIndex(cr CastlingRight) int {
	switch cr {
	case WhiteOO:
		return 0
	case WhiteOOO:
		return 1
	case BlackOO:
		return 2
	case BlackOOO:
		return 3
	}
	return -1
}
