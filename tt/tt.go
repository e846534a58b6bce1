// Package tt is the shared transposition table: a fixed-memory,
// power-of-two-sized array of lock-free clustered entries. Grounded on
// engine/transposition.go's cluster/replacement policy (cluster size 4,
// prefer-same-key then prefer-shallower replacement) combined with
// other_examples/ChizhovVadim-CounterGo's transtable.go CAS-spinlock gate,
// since the teacher's own table is single-threaded and this one must be
// safe for concurrent probes/stores from every search thread.
package tt

import (
	"sync/atomic"

	"github.com/oliverans/goosecore/position"
)

type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

const clusterSize = 4

// entry is one transposition slot. key32 is the upper half of the full
// 64-bit key, the cluster index already having consumed the lower half —
// matching engine/transposition.go's full-hash store traded for CounterGo's
// half-key-plus-gate scheme to keep the struct small. eval caches the
// node's static evaluation separately from score (the search value, which
// may be a bound rather than the true eval), so a later probe that only
// wants the static eval doesn't have to recompute it; pv marks an entry
// that was written at a PV node. A store made at a PV node always
// overwrites its slot; the pv flag of an entry already stored is not
// consulted when deciding whether to replace it.
type entry struct {
	gate  int32
	key32 uint32
	move  position.Move
	score int16
	eval  int16
	depth int8
	bound Bound
	pv    bool
	age   uint8
}

// NoEval marks a stored entry that has no cached static evaluation, the
// sentinel a prober checks before deciding to call Evaluate itself.
const NoEval = -32768

// Table is a fixed-size, lock-free transposition table shared by every
// search thread.
type Table struct {
	entries []entry
	mask    uint64
	age     uint8
}

// New allocates a table sized to approximately megabytes of memory, rounded
// down to a power-of-two cluster count as engine/transposition.go does.
func New(megabytes int) *Table {
	if megabytes < 1 {
		megabytes = 1
	}
	clusterBytes := 16 * clusterSize
	totalBytes := megabytes * 1024 * 1024
	clusters := totalBytes / clusterBytes
	clusters = roundPowerOfTwo(clusters)
	if clusters == 0 {
		clusters = 1
	}
	return &Table{
		entries: make([]entry, clusters*clusterSize),
		mask:    uint64(clusters - 1),
	}
}

func roundPowerOfTwo(n int) int {
	x := 1
	for x<<1 <= n {
		x <<= 1
	}
	return x
}

// NewGeneration bumps the age counter used to evict stale entries from a
// prior search, called once per go command the way engine/search.go resets
// per-search state.
func (t *Table) NewGeneration() {
	t.age++
}

func (t *Table) clusterBase(key uint64) int {
	clusterIndex := key & t.mask
	return int(clusterIndex) * clusterSize
}

// Probe looks up key, translating a stored mate score back to an
// absolute-from-root score using ply, matching the invariant that mate
// scores are stored relative to the node they were found at and must be
// re-based to the probing node's ply.
func (t *Table) Probe(key uint64, ply int) (move position.Move, score int, eval int, depth int, bound Bound, pv bool, found bool) {
	eval = NoEval
	base := t.clusterBase(key)
	key32 := uint32(key >> 32)
	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+i]
		if !atomic.CompareAndSwapInt32(&e.gate, 0, 1) {
			continue
		}
		if e.key32 == key32 {
			move = e.move
			depth = int(e.depth)
			bound = e.bound
			pv = e.pv
			eval = int(e.eval)
			score = fromTTScore(int(e.score), ply)
			found = true
		}
		atomic.StoreInt32(&e.gate, 0)
		if found {
			return
		}
	}
	return
}

// Store writes (or updates) the entry for key. Replacement prefers an
// existing same-key slot, then the shallowest/oldest slot in the cluster,
// mirroring engine/transposition.go's storeEntry search order.
func (t *Table) Store(key uint64, move position.Move, score, eval, depth int, bound Bound, pv bool, ply int) {
	base := t.clusterBase(key)
	key32 := uint32(key >> 32)
	ttScore := toTTScore(score, ply)

	// Pick a replacement candidate with an unsynchronized read pass first
	// (matching engine/transposition.go's plain scan); only the winning
	// slot's gate is ever taken, so stores into the same cluster from
	// different threads never hold more than one gate at a time.
	targetIdx := base
	bestScore := -1 << 30
	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+i]
		switch {
		case e.key32 == key32:
			targetIdx = base + i
			bestScore = 1 << 30
		case e.age != t.age:
			if s := 1<<20 - int(e.depth); s > bestScore {
				bestScore, targetIdx = s, base+i
			}
		default:
			if s := -int(e.depth); s > bestScore {
				bestScore, targetIdx = s, base+i
			}
		}
	}

	target := &t.entries[targetIdx]
	if !atomic.CompareAndSwapInt32(&target.gate, 0, 1) {
		return
	}
	if target.key32 != key32 || depth >= int(target.depth)-3 || bound == BoundExact || pv {
		if move != position.MoveNone || target.key32 != key32 {
			target.move = move
		}
		target.key32 = key32
		target.score = int16(ttScore)
		target.eval = int16(eval)
		target.depth = int8(depth)
		target.bound = bound
		target.pv = pv
		target.age = t.age
	}
	atomic.StoreInt32(&target.gate, 0)
}

const mateScoreThreshold = 29000

func toTTScore(score, ply int) int {
	if score >= mateScoreThreshold {
		return score + ply
	}
	if score <= -mateScoreThreshold {
		return score - ply
	}
	return score
}

func fromTTScore(score, ply int) int {
	if score >= mateScoreThreshold {
		return score - ply
	}
	if score <= -mateScoreThreshold {
		return score + ply
	}
	return score
}

// HashFull estimates the fraction of the table in use, in permille, by
// sampling the first 1000 entries — matching the cheap approximation used
// by UCI-style "hashfull" reporting.
func (t *Table) HashFull() int {
	n := 1000
	if n > len(t.entries) {
		n = len(t.entries)
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.entries[i].age == t.age && t.entries[i].key32 != 0 {
			used++
		}
	}
	return used * 1000 / n
}
