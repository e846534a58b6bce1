package position

// updateRepetition walks the undo chain two plies (one full move) at a
// time looking for an equal key within the last rule50/pliesFromNull
// window, and records how far back the first recurrence was. A repetition
// found at a StateInfo that was itself already a repetition means this is
// now a three-fold. Grounded on engine/state_stack.go's repetition
// bookkeeping, generalized from a side slice into the StateInfo chain.
func (pos *Position) updateRepetition() {
	st := pos.st
	st.Repetition = 0
	end := st.Rule50
	if st.PliesFromNull < end {
		end = st.PliesFromNull
	}
	if end < 4 {
		return
	}
	stp := st.Previous.Previous
	for i := 4; i <= end; i += 2 {
		stp = stp.Previous.Previous
		if stp.Key == st.Key {
			if stp.Repetition != 0 {
				st.Repetition = -i
			} else {
				st.Repetition = i
			}
			break
		}
	}
}

// IsDraw reports a rule-50 or repetition draw at search ply `ply`: any
// three-fold repetition counts, and so does a two-fold whose earlier
// occurrence is fewer than ply plies back (inside the current search), so
// a repetition within the search tree scores as a draw without waiting for
// the third occurrence. Grounded on engine/state_stack.go's isDraw.
func (pos *Position) IsDraw(ply int) bool {
	st := pos.st
	if st.Rule50 > 99 {
		if st.CheckersBB == 0 {
			return true
		}
		// Checkmate on the 100th half-move is not a draw, so a position in
		// check only qualifies if it also has a legal reply.
		if len(pos.GenerateInto(nil, GenLegal)) > 0 {
			return true
		}
		return false
	}
	return st.Repetition != 0 && st.Repetition < ply
}

// UpcomingRepetition reports whether a two-fold repetition that would
// become a draw is reachable from the current node within the remaining
// search horizon, independent of rule50, using the cuckoo-table based
// single-reversible-move detector. Grounded on original_source's
// Position::has_game_cycle, adapted to Go's pointer-chained StateInfo.
func (pos *Position) UpcomingRepetition(ply int) bool {
	st := pos.st
	end := st.Rule50
	if st.PliesFromNull < end {
		end = st.PliesFromNull
	}
	if end < 3 {
		return false
	}
	originalKey := st.Key
	occ := pos.Occupied()
	stp := st.Previous
	for i := 3; i <= end; i += 2 {
		stp = stp.Previous.Previous
		moveKey := originalKey ^ stp.Key
		j := h1(moveKey)
		if cuckoo[j] != moveKey {
			j = h2(moveKey)
			if cuckoo[j] != moveKey {
				continue
			}
		}
		move := cuckooMove[j]
		s1, s2 := move.From(), move.To()
		if (betweenBB(s1, s2)&^SquareBB(s2))&occ != 0 {
			continue
		}
		if ply > i {
			return true
		}
		occupant := s1
		if pos.PieceOn(s1) == Empty {
			occupant = s2
		}
		if pos.PieceOn(occupant).Color() != pos.sideToMove {
			continue
		}
		if stp.Repetition != 0 {
			return true
		}
	}
	return false
}
