// Pre-schedule validity report: a read-only pass over a ScheduledInput
// that surfaces the same class of problems a league administrator would
// want to see before committing to a full search, without running one.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/db/src/pre_schedule_report.rs's
// PreScheduleReport: duplicate team-group usage detection and the
// combinatorial required-matches count (ncr(n,2) per group, scaled by
// matches-to-play), reworked from a database query into a pure function
// over the in-memory ScheduledInput this repo already has on hand.
package report

import (
	league "leaguesched"
)

// DuplicateGroup flags two or more TeamGroups entries that contain the
// exact same set of teams. original_source calls this a target
// collision: the same set of teams registered more than once is almost
// always an administrator mistake, never intentional.
type DuplicateGroup struct {
	Teams   []league.TeamID
	Indices []int // positions in ScheduledInput.TeamGroups sharing Teams
}

// Report is the outcome of walking one ScheduledInput.
type Report struct {
	DuplicateGroups       []DuplicateGroup
	UnregisteredConflicts []league.ConflictID
	TotalMatchesRequired  uint64
	TotalSlotsSupplied    uint64
	Undersupplied         bool
}

// Generate walks in and returns a Report. matchesToPlay is the number of
// times each pair of teams within a group must meet (the round-robin
// multiplicity); it must be at least 1.
func Generate(in *league.ScheduledInput, matchesToPlay uint8) Report {
	if matchesToPlay == 0 {
		matchesToPlay = 1
	}

	var r Report
	r.DuplicateGroups = duplicateGroups(in.TeamGroups)
	r.UnregisteredConflicts = unregisteredConflicts(in)

	for _, group := range in.TeamGroups {
		r.TotalMatchesRequired += ncr(uint64(len(group)), 2) * uint64(matchesToPlay)
	}

	for _, field := range in.Fields {
		if field.Practice {
			continue
		}
		for _, ts := range field.TimeSlots {
			n := uint64(ts.Concurrency)
			if n == 0 {
				n = 1
			}
			r.TotalSlotsSupplied += n
		}
	}

	r.Undersupplied = r.TotalSlotsSupplied < r.TotalMatchesRequired
	return r
}

// duplicateGroups collects TeamGroups indices that share an identical
// team set, the way PreScheduleReport's collision_map groups targets by
// their BTreeSet<TeamGroup>.
func duplicateGroups(groups [][]league.TeamID) []DuplicateGroup {
	type key = string
	byKey := make(map[key][]int)
	teamsByKey := make(map[key][]league.TeamID)

	for i, group := range groups {
		k := teamSetKey(group)
		byKey[k] = append(byKey[k], i)
		teamsByKey[k] = group
	}

	var out []DuplicateGroup
	for k, indices := range byKey {
		if len(indices) < 2 {
			continue
		}
		out = append(out, DuplicateGroup{Teams: teamsByKey[k], Indices: indices})
	}
	return out
}

// teamSetKey builds a canonical, order-independent key for a team set
// via insertion-sort into a small sorted slice: these groups are
// expected to stay small (a handful of teams), so an O(n^2) sort avoids
// pulling in sort for a handful of uint32s.
func teamSetKey(teams []league.TeamID) string {
	sorted := make([]league.TeamID, len(teams))
	copy(sorted, teams)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	buf := make([]byte, 0, len(sorted)*5)
	for _, t := range sorted {
		buf = appendUint(buf, uint32(t))
		buf = append(buf, ',')
	}
	return string(buf)
}

func appendUint(buf []byte, v uint32) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// unregisteredConflicts reports every CoachConflict that references a
// team absent from every TeamGroup. Validate already rejects this at
// schedule time; the report surfaces it earlier, before a caller commits
// to building the rest of the input.
func unregisteredConflicts(in *league.ScheduledInput) []league.ConflictID {
	registered := make(map[league.TeamID]struct{})
	for _, group := range in.TeamGroups {
		for _, t := range group {
			registered[t] = struct{}{}
		}
	}

	var out []league.ConflictID
	for _, cc := range in.CoachConflicts {
		for _, t := range cc.Teams {
			if _, ok := registered[t]; !ok {
				out = append(out, cc.ConflictID)
				break
			}
		}
	}
	return out
}

// ncr is n choose r, computed directly since the group sizes this repo
// deals with (dozens of teams at most) never risk factorial overflow at
// r=2.
func ncr(n, r uint64) uint64 {
	if r > n {
		return 0
	}
	if r == 2 {
		return n * (n - 1) / 2
	}
	num, den := uint64(1), uint64(1)
	for i := uint64(0); i < r; i++ {
		num *= n - i
		den *= i + 1
	}
	return num / den
}

// HasDuplicates reports whether d was registered under more than one
// TeamGroups index.
func (d DuplicateGroup) HasDuplicates() bool { return len(d.Indices) > 1 }
