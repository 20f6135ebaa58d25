// Neighbor generation: swap a problematic slot's team with a free
// slot's, weighted by how much damage each problematic slot is causing.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm/practices.rs's
// impl Anneal for PracticeScheduleProblem.
package anneal

import (
	"math"
	"math/rand"

	"leaguesched/conflict"
)

// Neighbor returns a candidate parameter vector reachable from param by
// one or more swaps, the number of swaps set by extent (the annealer's
// current temperature): floor(extent)+1 swap attempts, each one picking
// a "problematic" index to relieve and a "free" index to relieve it
// into.
//
// A problematic index is one whose team overlaps a coach-conflicted
// teammate, or itself (double-booked); it is pushed into the target
// pool once per overlapping teammate, twice more if it is
// self-overlapping, so noisier slots are proportionally more likely to
// be picked. The free pool holds every empty slot plus every slot whose
// team overlaps a coach-conflicted teammate but not itself; a slot whose
// team overlaps nobody lands in neither pool. When no free index
// remains, the fallback swaps the problematic slot with any other slot
// at random.
func Neighbor(rng *rand.Rand, param ParameterVector, conflicts *conflict.Graph, extent float64) ParameterVector {
	next := param.Clone()
	if len(next) == 0 {
		return next
	}

	busy := conflict.NewBusyTeamQueue()

	var target, free []int

	for i, a := range param {
		if a.Team == NoTeam {
			free = append(free, i)
			continue
		}

		count := conflicts.ConflictCount(a.Team, a.Slot.Window, busy)
		for k := 0; k < count; k++ {
			target = append(target, i)
		}

		if busy.IsBusy(a.Team, a.Slot.Window) {
			target = append(target, i, i) // 2x distribution: doubly problematic
			continue
		}

		if count == 0 {
			busy.Add(a.Team, a.Slot.Window)
			continue
		}

		busy.Add(a.Team, a.Slot.Window)
		free = append(free, i)
	}

	operations := int(math.Floor(extent)) + 1
	for op := 0; op < operations; op++ {
		if len(target) == 0 {
			continue
		}
		problematic := target[rng.Intn(len(target))]

		if len(free) > 0 {
			ok := free[rng.Intn(len(free))]
			next[ok].Team, next[problematic].Team = next[problematic].Team, next[ok].Team
			free = removeAll(free, ok)
			target = removeAll(target, problematic)
			continue
		}

		if len(next) <= 1 {
			break
		}

		idx := problematic
		for idx == problematic {
			idx = rng.Intn(len(next))
		}
		next[idx].Team, next[problematic].Team = next[problematic].Team, next[idx].Team
		target = removeAll(target, problematic)
	}

	return next
}

// removeAll returns s with every occurrence of v removed, preserving
// order of the remaining elements.
func removeAll(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
