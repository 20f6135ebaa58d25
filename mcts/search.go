// Parallel playout driver: runs the MCTS budget across workers sharing
// one tree and transposition table, then extracts the principal
// variation.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's sched/sched.go worker-pool (N goroutines
// pulling off a shared counter) and on original_source/backend/src/lib.rs's
// iteration-budget formula.
package mcts

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
)

// Options configures a Search call.
type Options struct {
	// Iterations overrides the computed budget when non-zero. Tests use
	// this to keep runs small and deterministic.
	Iterations int
	// Workers overrides runtime.NumCPU() when positive; zero or negative
	// uses runtime.NumCPU(). Workers==1 runs single-threaded with a seeded
	// RNG, for reproducible runs.
	Workers int
	// Seed drives the RNG. Only meaningful for reproducibility when
	// Workers==1; parallel runs seed each worker independently.
	Seed int64
}

// IterationBudget computes the default playout budget for a league of
// the given team count: teams below 8 get a flat 100,000 iterations;
// from 8 teams on the budget is floor(10000 * (20*teams+10)^0.33), about
// 54,000 at 8 teams and growing with team count (it passes 100,000
// above roughly 50 teams).
func IterationBudget(teams int) int {
	if teams < 8 {
		return 100000
	}
	return int(10000 * math.Pow(20*float64(teams)+10, 0.33))
}

// TeamCount returns the number of distinct teams registered across a
// state's groups, the input to IterationBudget.
func TeamCount(s *State) int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Teams)
	}
	return n
}

// Search runs the MCTS budget from root and returns the state reached
// by following the most-visited child at each step from the root: the
// principal variation, materialized as a board rather than a bare move
// list so callers can read off every slot, filled or not.
func Search(root *State, opts Options) *State {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = IterationBudget(TeamCount(root))
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	table := NewTable(0)
	rootNode := newNode(root, nil, Move{})

	if workers <= 1 {
		rng := rand.New(rand.NewSource(opts.Seed))
		for i := 0; i < iterations; i++ {
			playout(rootNode, table, rng)
		}
	} else {
		var remaining int64 = int64(iterations)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(workerSeed int64) {
				defer wg.Done()
				rng := rand.New(rand.NewSource(workerSeed))
				for atomic.AddInt64(&remaining, -1) >= 0 {
					playout(rootNode, table, rng)
				}
			}(opts.Seed + int64(w) + 1)
		}
		wg.Wait()
	}

	cur := rootNode
	for {
		child, ok := cur.bestChild()
		if !ok {
			break
		}
		cur = child
	}
	return cur.state
}
