// Cost function for the practice-field annealer: empty slots and
// conflicting bookings are both penalized, conflicts much more heavily.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm/practices.rs's
// PracticeScheduleProblem::cost.
package anneal

import "leaguesched/conflict"

const (
	emptySlotPenalty = 2.5
	conflictPenalty  = 20.0
)

// Cost walks the vector in order, replaying a busy-team queue exactly
// once, and charges emptySlotPenalty per unfilled slot plus
// conflictPenalty per overlap: a team double-booked against itself, or
// against any coach-conflicted teammate already busy at that window.
func Cost(param ParameterVector, conflicts *conflict.Graph) float64 {
	busy := conflict.NewBusyTeamQueue()

	empty := 0.0
	collisions := 0.0

	for _, a := range param {
		if a.Team == NoTeam {
			empty++
			continue
		}

		if busy.IsBusy(a.Team, a.Slot.Window) {
			collisions++
		}
		busy.Add(a.Team, a.Slot.Window)

		collisions += float64(conflicts.ConflictCount(a.Team, a.Slot.Window, busy))
	}

	return empty*emptySlotPenalty + collisions*conflictPenalty
}
