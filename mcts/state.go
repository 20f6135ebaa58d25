// Game-scheduler search state: slot -> game assignment plus per-team
// busy lists, the substrate the MCTS tree policy searches over.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm.rs's MCTSState /
// PlayableGroup / GameState impl (the `mcts` Rust crate's GameState
// trait), translated to a concrete Go type instead of a generic trait
// since this search has exactly one domain to serve.
package mcts

import (
	"sort"

	"leaguesched/availability"
)

// Slot is a (field, window) pair that may be booked at most once.
type Slot struct {
	Field  int32
	Window availability.Window
}

func (s Slot) less(o Slot) bool {
	if s.Field != o.Field {
		return s.Field < o.Field
	}
	return s.Window.Less(o.Window)
}

// Game is an unordered pair of distinct teams from the same group.
type Game struct {
	TeamOne, TeamTwo int32
	GroupID          int
}

// Group is an ordered collection of teams that may play each other.
// Team id ranges across groups are disjoint; every team appears in
// exactly one group (invariant enforced by the facade, not here).
type Group struct {
	ID    int
	Teams []int32
}

// State is the global scheduler state: a slot->game assignment, the
// ordered list of groups, and the per-team busy lists. The map and groups
// are conceptually owned by the state; Clone followed by MakeMove produces
// a new logical state by value-copying (simple, cache-friendly for the slot counts
// this scheduler targets — see DESIGN.md for the structural-sharing
// alternative this repo considered but did not take).
type State struct {
	slots  []Slot // sorted by (field, window) ascending; immutable after New
	games  []*Game // parallel to slots; nil entry means the slot is empty
	groups []Group
	busy   map[int32]availability.BusyList
}

// New builds an empty (all-slots-unfilled) state for the given slot
// inventory and team groups. It is the SEEDED-state constructor for
// the game scheduler.
func New(slots []Slot, groups []Group) *State {
	sorted := append([]Slot(nil), slots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })

	busy := make(map[int32]availability.BusyList)
	for _, g := range groups {
		for _, team := range g.Teams {
			busy[team] = nil
		}
	}

	return &State{
		slots:  sorted,
		games:  make([]*Game, len(sorted)),
		groups: groups,
		busy:   busy,
	}
}

// Slots returns the sorted slot inventory.
func (s *State) Slots() []Slot { return s.slots }

// Len is the number of input slots, the length of a complete principal
// variation.
func (s *State) Len() int { return len(s.slots) }

// GameAt returns the game booked at slots[i], or nil if empty.
func (s *State) GameAt(i int) *Game { return s.games[i] }

// Clone returns an independent copy of s: a new state after a move must
// be equal-by-value for equal move sequences, and concurrent search
// branches must never observe each other's mutations.
func (s *State) Clone() *State {
	games := make([]*Game, len(s.games))
	copy(games, s.games)

	busy := make(map[int32]availability.BusyList, len(s.busy))
	for team, list := range s.busy {
		// fresh backing array: appends on one clone must not land in a
		// slice another clone shares
		busy[team] = append(availability.BusyList(nil), list...)
	}

	return &State{
		slots:  s.slots, // shared: immutable
		games:  games,
		groups: s.groups, // shared: immutable
		busy:   busy,
	}
}

// Move is a candidate (slot -> game) assignment produced by
// AvailableMoves.
type Move struct {
	SlotIndex int
	Game      Game
}

// AvailableMoves enumerates every legal move from the current state: for
// each empty slot, for each group, every ordered pair of distinct teams
// not already busy at that slot's window. This is the single inner loop
// governing search cost.
func (s *State) AvailableMoves() []Move {
	var moves []Move

	for i, slot := range s.slots {
		if s.games[i] != nil {
			continue
		}

		for _, group := range s.groups {
			for _, teamOne := range group.Teams {
				if s.busy[teamOne].IsBusy(slot.Window) {
					continue
				}
				for _, teamTwo := range group.Teams {
					if teamOne == teamTwo {
						continue
					}
					if s.busy[teamTwo].IsBusy(slot.Window) {
						continue
					}
					moves = append(moves, Move{
						SlotIndex: i,
						Game: Game{
							TeamOne: teamOne,
							TeamTwo: teamTwo,
							GroupID: group.ID,
						},
					})
				}
			}
		}
	}

	return moves
}

// MakeMove applies mov in place: inserts the game into the slot map and
// appends the slot to both teams' busy lists. Callers that need the
// prior state untouched must Clone first (the tree policy does this on
// every descent, see tree.go).
func (s *State) MakeMove(mov Move) {
	g := mov.Game
	s.games[mov.SlotIndex] = &g
	w := s.slots[mov.SlotIndex].Window
	s.busy[g.TeamOne] = s.busy[g.TeamOne].Add(w)
	s.busy[g.TeamTwo] = s.busy[g.TeamTwo].Add(w)
}

// Hash returns a 64-bit digest of the slot->game assignment, the key the
// bounded transposition table uses. Collisions are tolerated: a
// false match only biases search, it never constrains it.
func (s *State) Hash() uint64 {
	var h uint64 = 1469598103934665603 // FNV-1a offset basis
	const prime uint64 = 1099511628211

	mix := func(v uint64) {
		h ^= v
		h *= prime
	}

	for i, g := range s.games {
		if g == nil {
			continue
		}
		mix(uint64(i)<<1 | 1)
		mix(uint64(uint32(g.TeamOne))<<32 | uint64(uint32(g.TeamTwo)))
	}
	return h
}
