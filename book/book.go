// Package book defines the opening-book collaborator interface. An actual
// ECO-derived book lookup is out of scope for feature work, but original_source's
// book.h shows the shape the searcher expects to call into (a single
// find_move keyed on the current position), so that interface is
// supplemented here for a future implementation to satisfy.
package book

import "github.com/oliverans/goosecore/position"

// Probe returns a book move for pos, if the position is still within a
// loaded opening line.
type Probe interface {
	FindMove(pos *position.Position) (position.Move, bool)
}

// None is a Probe that never suggests a move, used when no book is loaded.
type None struct{}

func (None) FindMove(*position.Position) (position.Move, bool) { return position.MoveNone, false }
