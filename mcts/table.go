// Bounded approximate transposition table.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm.rs's use of the
// `mcts` crate's ApproxTable, and on go-kgp's habit of per-node
// fine-grained locking (sched/sched.go's sync.Mutex around the shared
// score map) rather than one table-wide lock.
package mcts

import "sync"

type tableEntry struct {
	mu      sync.Mutex
	valid   bool
	hash    uint64
	eval    int
	visits  uint32
}

// Table is a fixed-capacity hash-keyed cache of state evaluations. A
// hash collision silently evicts the prior entry: reads may then return
// a stale evaluation for a different state, which only biases tree
// selection and never constrains correctness.
type Table struct {
	entries []tableEntry
}

// NewTable allocates a table with room for capacity entries, defaulting
// to 4,096 when capacity is non-positive.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Table{entries: make([]tableEntry, capacity)}
}

func (t *Table) slot(hash uint64) *tableEntry {
	return &t.entries[hash%uint64(len(t.entries))]
}

// Lookup returns the cached evaluation for hash and whether the slot was
// actually written by this hash (best-effort: a collision can report a
// stale hit for the wrong state).
func (t *Table) Lookup(hash uint64) (eval int, visits uint32, ok bool) {
	e := t.slot(hash)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.valid || e.hash != hash {
		return 0, 0, false
	}
	return e.eval, e.visits, true
}

// Store records an evaluation for hash, overwriting whatever collided
// entry was there before (idempotent up to evaluation staleness).
func (t *Table) Store(hash uint64, eval int) {
	e := t.slot(hash)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.valid && e.hash == hash {
		e.visits++
		// running average keeps the cached value representative across
		// repeated visits instead of pinning to the first sample.
		e.eval += (eval - e.eval) / int(e.visits)
		return
	}
	e.hash = hash
	e.eval = eval
	e.visits = 1
	e.valid = true
}
