// Package threads runs several search.Searcher instances concurrently
// against one shared transposition table — lazy SMP, the threading model
// original_source's search actually ships (every thread iteratively deepens
// independently; the shared hash table is the only communication channel).
// The goroutine orchestration (time.AfterFunc-driven cancellation, a mutex
// gate around the shared result) is grounded on
// other_examples/ChizhovVadim-CounterGo's searchservice.go, adapted from its
// root-move-split young-brothers-wait shape (each worker pulls the next
// unsearched root move under a shared mutex) to lazy SMP instead: search.Think
// already owns its own root move loop, PVS staging and aspiration windows
// internally, so splitting root moves a second time at the pool layer would
// duplicate that logic rather than reuse it.
package threads

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oliverans/goosecore/position"
	"github.com/oliverans/goosecore/search"
	"github.com/oliverans/goosecore/timeman"
	"github.com/oliverans/goosecore/tt"
)

// Pool owns the shared transposition table and runs N workers' worth of
// search.Searcher against it.
type Pool struct {
	size int
	opts search.Options
	stop *int32

	mu      sync.Mutex
	running bool
}

// New builds a pool of n worker threads. opts.TT is shared by every worker;
// if nil, a table is allocated with New(megabytes). opts.Stop, if nil, is
// allocated here and shared so Pool.Stop reaches every in-flight worker.
func New(n int, megabytes int, opts search.Options) *Pool {
	if n < 1 {
		n = 1
	}
	if opts.TT == nil {
		opts.TT = tt.New(megabytes)
	}
	if opts.Stop == nil {
		opts.Stop = new(int32)
	}
	return &Pool{size: n, opts: opts, stop: opts.Stop}
}

func (p *Pool) Size() int { return p.size }

// Stop requests every running worker to abandon its search at the next
// node-count check, matching Searcher.RequestStop's cooperative contract.
func (p *Pool) Stop() { atomic.StoreInt32(p.stop, 1) }

// Think runs the pool against pos under lim, returning the result of the
// thread that searched deepest before the shared stop fired. A nonzero
// lim.MoveTime (outside an infinite search) additionally arms a wall-clock
// timer as a backstop the way SearchService.Search's time.AfterFunc does,
// so a worker cannot outlive that budget even if its own node-count check
// is slow to observe the stop flag. Clock-based limits arm no timer; each
// worker's own time manager ends its search.
func (p *Pool) Think(pos *position.Position, lim timeman.Limits) search.Result {
	atomic.StoreInt32(p.stop, 0)
	p.opts.TT.NewGeneration()

	p.mu.Lock()
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	if !lim.Infinite && lim.MoveTime > 0 {
		timer := time.AfterFunc(time.Duration(lim.MoveTime)*time.Millisecond, p.Stop)
		defer timer.Stop()
	}

	var mu sync.Mutex
	var best search.Result
	haveBest := false
	var deepest int

	var g errgroup.Group
	for i := 0; i < p.size; i++ {
		i := i
		g.Go(func() error {
			workerOpts := p.opts
			if i > 0 {
				// Helper threads stay quiet; only the main thread reports
				// iteration info, matching a single "go"-command worth of
				// UCI-style output instead of N interleaved streams.
				workerOpts.Log = nil
			}
			s := search.New(workerOpts)
			threadPos := pos.Clone()
			res := s.Think(threadPos, lim)

			mu.Lock()
			defer mu.Unlock()
			if !haveBest || res.Depth > deepest || (res.Depth == deepest && i == 0) {
				best = res
				deepest = res.Depth
				haveBest = true
			}
			return nil
		})
	}
	g.Wait()
	p.Stop()
	return best
}

// Running reports whether a Think call is currently in flight, used by a
// protocol dispatcher to reject overlapping "go" commands.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
