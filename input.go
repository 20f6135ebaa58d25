// ScheduledInput: the sole input to the scheduling core.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Mirrors original_source/db/src/lib.rs's
// CreateFieldInput/CreateTeamInput/CreateTimeSlotInput family, flattened
// into the shapes the schedulers actually consume.
package league

import (
	"fmt"

	"leaguesched/availability"
)

// TimeSlotSpec is one bookable window on a field.
type TimeSlotSpec struct {
	Window      availability.Window
	Concurrency uint8
}

// FieldInput is a field and the time slots it offers.
type FieldInput struct {
	FieldID   FieldID
	TimeSlots []TimeSlotSpec
	// Practice marks a practice-only field: its slots route to the SA
	// scheduler instead of MCTS.
	Practice bool
}

// CoachConflictInput is one clique of teams sharing a coach.
type CoachConflictInput struct {
	ConflictID ConflictID
	RegionID   RegionID
	Teams      []TeamID
}

// ScheduledInput is the sole input to Schedule. One value corresponds to
// one region: the streaming transport sends one ScheduledInput per
// region; regions are independent subproblems and never share state.
type ScheduledInput struct {
	UniqueID uint32
	Fields   []FieldInput
	// TeamGroups partitions teams for the game scheduler: team id ranges
	// across groups are disjoint, every team appears in exactly one group.
	TeamGroups     [][]TeamID
	CoachConflicts []CoachConflictInput
}

// Validate runs the Configuration-kind checks that must pass
// synchronously before any search begins: duplicate slots, malformed
// windows (End before Start), and coach-conflict team ids that were
// never registered in a group.
func (in *ScheduledInput) Validate() error {
	seen := make(map[FieldID]map[availability.Window]struct{})
	for _, field := range in.Fields {
		slots, ok := seen[field.FieldID]
		if !ok {
			slots = make(map[availability.Window]struct{})
			seen[field.FieldID] = slots
		}
		for _, ts := range field.TimeSlots {
			if ts.Window.End < ts.Window.Start {
				return Errorf(Configuration, "input",
					"malformed slot %s on field %d: end before start", ts.Window, field.FieldID)
			}
			if _, dup := slots[ts.Window]; dup {
				return Errorf(Configuration, "input",
					"duplicate slot %s on field %d", ts.Window, field.FieldID)
			}
			slots[ts.Window] = struct{}{}
		}
	}

	if len(in.Fields) == 0 {
		return Errorf(Configuration, "input", "no fields in input")
	}

	registered := make(map[TeamID]struct{})
	for _, group := range in.TeamGroups {
		for _, team := range group {
			registered[team] = struct{}{}
		}
	}
	for _, cc := range in.CoachConflicts {
		for _, team := range cc.Teams {
			if _, ok := registered[team]; !ok {
				return Errorf(Configuration, "input",
					"coach conflict %d references unregistered team %d", cc.ConflictID, team)
			}
		}
	}

	return nil
}

func (f FieldInput) String() string {
	return fmt.Sprintf("field %d (%d slots, practice=%v)", f.FieldID, len(f.TimeSlots), f.Practice)
}
