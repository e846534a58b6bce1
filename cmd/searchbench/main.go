package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/oliverans/goosecore/eval"
	"github.com/oliverans/goosecore/position"
	"github.com/oliverans/goosecore/search"
	"github.com/oliverans/goosecore/threads"
	"github.com/oliverans/goosecore/timeman"
)

func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	threadsFlag := flag.Int("threads", 1, "number of lazy-SMP worker threads")
	hashFlag := flag.Int("hash", 64, "transposition table size in megabytes")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	var cpuFile *os.File
	var err error
	if *cpuProfile != "" {
		cpuFile, err = os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := position.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}

	depth := *depthFlag
	repeat := *repeatFlag
	lim := timeman.Limits{Depth: depth}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d threads=%d hash=%dMB\n", fen, depth, repeat, *threadsFlag, *hashFlag)

	startAll := time.Now()
	for i := 0; i < repeat; i++ {
		pos := position.New()
		if err := pos.Set(fen, false); err != nil {
			log.Fatalf("Set(%q): %v", fen, err)
		}

		pool := threads.New(*threadsFlag, *hashFlag, search.Options{Eval: eval.DefaultEvaluator{}})

		iterStart := time.Now()
		res := pool.Think(pos, lim)
		iterElapsed := time.Since(iterStart)

		fmt.Printf("iteration %d: bestmove %v  score=%d  depth=%d  nodes=%d  time=%v\n",
			i+1, res.BestMove, res.Score, res.Depth, res.Nodes, iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v\n", totalElapsed)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
