// Scheduler facade: the sole entry point that turns a ScheduledInput
// into an Output, dispatching practice-only fields to the annealer and
// game fields to MCTS.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/lib.rs's top-level schedule()
// dispatch between algorithm::schedule (games) and
// algorithm::practices::schedule (practices).
package schedule

import (
	"context"
	"sort"

	league "leaguesched"
	"leaguesched/anneal"
	"leaguesched/availability"
	"leaguesched/conflict"
	"leaguesched/internal/store"
	"leaguesched/mcts"
)

// Facade is the scheduling core. It satisfies rpc.Scheduler.
type Facade struct {
	cache    *store.Store // optional; nil disables idempotent retry
	notifier Notifier     // optional; nil disables progress notification
}

// New builds a Facade. cache may be nil.
func New(cache *store.Store) *Facade {
	return &Facade{cache: cache}
}

// Schedule runs one region's ScheduledInput through its full lifecycle
// and returns the resulting Output.
func (f *Facade) Schedule(ctx context.Context, in *league.ScheduledInput) (*league.Output, error) {
	r := &run{}

	if f.cache != nil {
		if cached, ok, err := f.cache.Get(ctx, in.UniqueID); err == nil && ok {
			return cached, nil
		}
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	conflictGraph := conflictGraphOf(in)

	gameSlots, gameGroups := gameInputOf(in)
	practiceProblem := practiceInputOf(in, conflictGraph)

	r.advance(StateSeeded)
	f.notify(in.UniqueID, StateSeeded)
	r.advance(StateRunning)
	f.notify(in.UniqueID, StateRunning)

	var gameState *mcts.State
	if len(gameSlots) > 0 {
		gameState = mcts.Search(mcts.New(gameSlots, gameGroups), mcts.Options{})
	}

	var practiceResult anneal.ParameterVector
	if len(practiceProblem.Slots) > 0 {
		practiceResult = anneal.Solve(practiceProblem, anneal.Options{})
	}

	out := mergeOutput(in, gameState, practiceResult)
	r.advance(StateFinalized)
	f.notify(in.UniqueID, StateFinalized)

	if f.cache != nil {
		if err := f.cache.Put(ctx, out); err != nil {
			league.Debug.Println("failed to cache output:", err)
		}
	}

	return out, nil
}

func conflictGraphOf(in *league.ScheduledInput) *conflict.Graph {
	cliques := make([][]int32, 0, len(in.CoachConflicts))
	for _, cc := range in.CoachConflicts {
		teams := make([]int32, len(cc.Teams))
		for i, t := range cc.Teams {
			teams[i] = int32(t)
		}
		cliques = append(cliques, teams)
	}
	return conflict.New(cliques)
}

// gameInputOf builds the MCTS slot inventory (one per concurrent
// sub-booking of every non-practice field's time slots) and team
// groups.
func gameInputOf(in *league.ScheduledInput) ([]mcts.Slot, []mcts.Group) {
	var slots []mcts.Slot
	for _, field := range in.Fields {
		if field.Practice {
			continue
		}
		for _, ts := range field.TimeSlots {
			n := int(ts.Concurrency)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				slots = append(slots, mcts.Slot{Field: int32(field.FieldID), Window: ts.Window})
			}
		}
	}

	groups := make([]mcts.Group, len(in.TeamGroups))
	for i, g := range in.TeamGroups {
		teams := make([]int32, len(g))
		for j, t := range g {
			teams[j] = int32(t)
		}
		groups[i] = mcts.Group{ID: i, Teams: teams}
	}

	return slots, groups
}

// practiceInputOf builds the annealer's Problem from practice-only
// fields, flattening every team group into one pool: practices are not
// scoped by game group.
func practiceInputOf(in *league.ScheduledInput, conflicts *conflict.Graph) *anneal.Problem {
	var slots []anneal.TimeSlot
	for _, field := range in.Fields {
		if !field.Practice {
			continue
		}
		for _, ts := range field.TimeSlots {
			n := int(ts.Concurrency)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				slots = append(slots, anneal.TimeSlot{Field: int32(field.FieldID), Window: ts.Window})
			}
		}
	}

	var teams []int32
	for _, g := range in.TeamGroups {
		for _, t := range g {
			teams = append(teams, int32(t))
		}
	}

	return &anneal.Problem{Conflicts: conflicts, Teams: teams, Slots: slots}
}

// mergeOutput collects the MCTS and annealer results into one Output,
// sorted by window start as the scheduling core's interfaces require.
func mergeOutput(in *league.ScheduledInput, gameState *mcts.State, practice anneal.ParameterVector) *league.Output {
	var reservations []league.Reservation

	if gameState != nil {
		for i, slot := range gameState.Slots() {
			g := gameState.GameAt(i)
			booking := league.Booking{Kind: league.Empty}
			if g != nil {
				booking = league.Booking{
					Kind: league.GameBooking,
					Home: league.TeamID(g.TeamOne),
					Away: league.TeamID(g.TeamTwo),
				}
			}
			reservations = append(reservations, league.Reservation{
				Field:   league.FieldID(slot.Field),
				Window:  slot.Window,
				Booking: booking,
			})
		}
	}

	for _, a := range practice {
		booking := league.Booking{Kind: league.Empty}
		if a.Team != anneal.NoTeam {
			booking = league.Booking{Kind: league.PracticeBooking, Team: league.TeamID(a.Team)}
		}
		reservations = append(reservations, league.Reservation{
			Field:   league.FieldID(a.Slot.Field),
			Window:  a.Slot.Window,
			Booking: booking,
		})
	}

	sort.Slice(reservations, func(i, j int) bool {
		return windowLess(reservations[i].Window, reservations[j].Window)
	})

	return &league.Output{UniqueID: in.UniqueID, TimeSlots: reservations}
}

func windowLess(a, b availability.Window) bool {
	return a.Start < b.Start
}
