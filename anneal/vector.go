// Parameter vector for the practice-field simulated-annealing solver: one
// (time slot, optional team) pair per slot.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm/practices.rs's
// ParameterVector = Vec<(TimeSlot, Option<Team>)> and PracticeScheduleProblem::seed.
package anneal

import (
	"math/rand"

	"leaguesched/availability"
	"leaguesched/conflict"
)

// NoTeam marks a slot assignment as empty.
const NoTeam int32 = -1

// TimeSlot is a (field, window) pair a practice may be booked into.
type TimeSlot struct {
	Field  int32
	Window availability.Window
}

// Assignment pairs a slot with the team practicing there, or NoTeam.
type Assignment struct {
	Slot TimeSlot
	Team int32
}

// ParameterVector is the state the annealer searches over: exactly one
// Assignment per input slot, in a fixed order established at Seed time.
type ParameterVector []Assignment

// Clone returns an independent copy, since Neighbor must never mutate
// the parameter vector it was handed.
func (p ParameterVector) Clone() ParameterVector {
	next := make(ParameterVector, len(p))
	copy(next, p)
	return next
}

// Problem bundles the fixed inputs the cost and neighbor functions need:
// the coach-conflict graph and the team/slot inventories.
type Problem struct {
	Conflicts *conflict.Graph
	Teams     []int32
	Slots     []TimeSlot
}

// Seed builds the initial parameter vector: teams are shuffled, slots are
// shuffled, and teams are assigned to slots round-robin by cycling the
// shuffled team list until every slot has a team. With fewer teams than
// slots, teams repeat; every slot starts filled, and since Neighbor only
// exchanges teams between slots, no slot is ever emptied later. With no
// teams at all, every slot is NoTeam.
func (p *Problem) Seed(rng *rand.Rand) ParameterVector {
	if len(p.Slots) == 0 {
		return nil
	}

	teams := append([]int32(nil), p.Teams...)
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	slotOrder := rng.Perm(len(p.Slots))

	result := make(ParameterVector, 0, len(p.Slots))
	if len(teams) == 0 {
		for _, idx := range slotOrder {
			result = append(result, Assignment{Slot: p.Slots[idx], Team: NoTeam})
		}
		return result
	}

	t := 0
	for _, idx := range slotOrder {
		result = append(result, Assignment{Slot: p.Slots[idx], Team: teams[t%len(teams)]})
		t++
	}
	return result
}
