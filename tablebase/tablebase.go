// Package tablebase defines the endgame-tablebase collaborator interface
// the searcher may consult at low piece counts. Probing an actual Syzygy
// file set is out of scope; only the interface the searcher depends on
// lives here, so a real implementation can be plugged in without touching
// search.
package tablebase

import "github.com/oliverans/goosecore/position"

// Bound narrows how a Probe result should be used by the searcher, mirroring
// the transposition table's Exact/Lower/Upper distinction.
type Bound int

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Result is a tablebase-reported score for a position, in centipawns from
// the side-to-move's perspective, with the bound it should be treated as.
type Result struct {
	Score int
	Bound Bound
}

// Probe reports a tablebase hit for pos, if any is available.
type Probe interface {
	Probe(pos *position.Position) (Result, bool)
}

// None is a Probe that never has an answer, used when no tablebase is
// configured.
type None struct{}

func (None) Probe(*position.Position) (Result, bool) { return Result{}, false }
