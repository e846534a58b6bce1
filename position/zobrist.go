package position

import "math/rand"

// Zobrist tables, grounded on goosemg/zobrist.go, extended with a
// piece-count material key and a cuckoo table for has_game_cycle detection
// (SPEC_FULL.md's supplement drawn from original_source/position.h/search.cpp).

var zobristPiece [16][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

// zobristMaterial[piece][count] hashes piece-count-of-a-kind for the
// material key, an independent incremental hash used to index
// material-imbalance lookups without colliding with the full position key.
var zobristMaterial [16][11]uint64

func init() {
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 16; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
		for c := 0; c < 11; c++ {
			zobristMaterial[p][c] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
	initCuckoo()
}

func pieceKey(p Piece, s Square) uint64 { return zobristPiece[p][s] }

// cuckoo/cuckooMove implement Stockfish's has_game_cycle perfect-hash
// table: every reversible non-pawn, non-king move (piece p moving between
// squares s1 and s2) is stored at one of two hash slots of its Zobrist
// piece-square XOR delta, using Cuckoo hashing's standard insert-and-evict
// walk. has_game_cycle probes both hash functions of a candidate delta and,
// on a hit, confirms the move is actually pseudo-legal from the
// intermediate position before accepting the cycle.
var cuckoo [8192]uint64
var cuckooMove [8192]Move

func h1(key uint64) int { return int(key & 8191) }
func h2(key uint64) int { return int((key >> 16) & 8191) }

func initCuckoo() {
	var count int
	for pc := Piece(1); pc < 16; pc++ {
		if pc.Type() == NoPieceType || pc.Type() == Pawn {
			continue
		}
		for s1 := Square(0); s1 < 64; s1++ {
			for s2 := s1 + 1; s2 < 64; s2++ {
				if AttacksBB(pc.Type(), s1, 0)&SquareBB(s2) == 0 {
					continue
				}
				move := NewMove(s1, s2, FlagNormal, 0)
				key := pieceKey(pc, s1) ^ pieceKey(pc, s2) ^ zobristSide
				i := h1(key)
				for {
					cuckoo[i], key = key, cuckoo[i]
					cuckooMove[i], move = move, cuckooMove[i]
					if move == MoveNone {
						break
					}
					if i == h1(key) {
						i = h2(key)
					} else {
						i = h1(key)
					}
				}
				count++
			}
		}
	}
}
