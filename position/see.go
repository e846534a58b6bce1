package position

// seeValue is the static-exchange value table, grounded on engine/see.go's
// SeePieceValue.
var seeValue = [PieceTypeCount]int{0, 100, 320, 330, 500, 900, 20000}

// SeeGE reports whether the static exchange evaluation of m is at least
// threshold, using the iterative "swap list" algorithm: repeatedly add the
// least valuable remaining attacker to the exchange, alternating sides,
// until one side has no attacker left or stops gaining. Grounded on
// engine/see.go's see(), restructured into the incremental threshold-test
// form (no sorted attacker list materialized) used throughout the
// searcher's pruning decisions.
func (pos *Position) SeeGE(m Move, threshold int) bool {
	if m.Flag() == FlagCastling {
		return 0 >= threshold
	}

	from, to := m.From(), m.To()
	capturedValue := 0
	capSq := to
	if m.Flag() == FlagEnPassant {
		capSq = MakeSquare(to.File(), from.Rank())
		capturedValue = seeValue[Pawn]
	} else if pos.PieceOn(to) != Empty {
		capturedValue = seeValue[pos.PieceOn(to).Type()]
	}

	swap := capturedValue - threshold
	if swap < 0 {
		return false
	}
	movedValue := seeValue[pos.PieceOn(from).Type()]
	if m.IsPromotion() {
		movedValue = seeValue[Pawn]
	}
	swap = movedValue - swap
	if swap <= 0 {
		return true
	}

	occ := pos.Occupied() &^ SquareBB(from) &^ SquareBB(capSq) | SquareBB(to)
	stm := pos.PieceOn(from).Color()
	attackers := pos.attackersTo(to, occ)

	res := 1
	for {
		stm = stm.Other()
		attackers &= occ
		stmAttackers := attackers & pos.byColor[stm]
		if stmAttackers == 0 {
			break
		}
		res ^= 1

		var bb Bitboard
		nextVictim := NoPieceType
		for pt := Pawn; pt <= King; pt++ {
			if bb = stmAttackers & pos.byType[pt]; bb != 0 {
				nextVictim = pt
				break
			}
		}
		if nextVictim == NoPieceType {
			break
		}

		sq := bb.LSB()
		occ &^= SquareBB(sq)
		swap = seeValue[nextVictim] - swap
		if swap < res {
			break
		}

		if nextVictim == Pawn || nextVictim == Bishop || nextVictim == Queen {
			attackers |= BishopAttacks(to, occ) & (pos.byType[Bishop] | pos.byType[Queen])
		}
		if nextVictim == Rook || nextVictim == Queen {
			attackers |= RookAttacks(to, occ) & (pos.byType[Rook] | pos.byType[Queen])
		}
		if nextVictim == King {
			if attackers&pos.byColor[stm.Other()] != 0 {
				res ^= 1
			}
			break
		}
	}
	return res != 0
}
