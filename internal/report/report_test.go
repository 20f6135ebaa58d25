package report

import (
	"testing"

	league "leaguesched"
	"leaguesched/availability"
)

func win(start, end int64) availability.Window {
	return availability.Window{Start: start, End: end}
}

func TestDuplicateGroupsDetectsIdenticalTeamSets(t *testing.T) {
	in := &league.ScheduledInput{
		TeamGroups: [][]league.TeamID{
			{1, 2, 3},
			{3, 1, 2}, // same set, different order
			{4, 5},
		},
	}

	r := Generate(in, 1)
	if len(r.DuplicateGroups) != 1 {
		t.Fatalf("expected 1 duplicate group, got %d", len(r.DuplicateGroups))
	}
	if !r.DuplicateGroups[0].HasDuplicates() {
		t.Fatal("expected HasDuplicates to be true")
	}
	if len(r.DuplicateGroups[0].Indices) != 2 {
		t.Fatalf("expected 2 indices sharing the team set, got %v", r.DuplicateGroups[0].Indices)
	}
}

func TestGenerateCountsRequiredMatches(t *testing.T) {
	in := &league.ScheduledInput{
		TeamGroups: [][]league.TeamID{{1, 2, 3, 4}}, // 4 teams -> ncr(4,2) = 6
		Fields: []league.FieldInput{
			{
				FieldID:   1,
				TimeSlots: []league.TimeSlotSpec{{Window: win(0, 3600), Concurrency: 1}},
			},
		},
	}

	r := Generate(in, 2) // 6 * 2 = 12 required
	if r.TotalMatchesRequired != 12 {
		t.Fatalf("expected 12 required matches, got %d", r.TotalMatchesRequired)
	}
	if r.TotalSlotsSupplied != 1 {
		t.Fatalf("expected 1 supplied slot, got %d", r.TotalSlotsSupplied)
	}
	if !r.Undersupplied {
		t.Fatal("expected report to flag undersupply")
	}
}

func TestGenerateFlagsUnregisteredConflictTeam(t *testing.T) {
	in := &league.ScheduledInput{
		TeamGroups: [][]league.TeamID{{1, 2}},
		CoachConflicts: []league.CoachConflictInput{
			{ConflictID: 9, Teams: []league.TeamID{1, 99}},
		},
	}

	r := Generate(in, 1)
	if len(r.UnregisteredConflicts) != 1 || r.UnregisteredConflicts[0] != 9 {
		t.Fatalf("expected conflict 9 flagged, got %v", r.UnregisteredConflicts)
	}
}

func TestGenerateNoIssuesOnCleanInput(t *testing.T) {
	in := &league.ScheduledInput{
		TeamGroups: [][]league.TeamID{{1, 2}, {3, 4}},
		Fields: []league.FieldInput{
			{
				FieldID: 1,
				TimeSlots: []league.TimeSlotSpec{
					{Window: win(0, 3600), Concurrency: 1},
					{Window: win(3600, 7200), Concurrency: 1},
				},
			},
		},
	}

	r := Generate(in, 1)
	if len(r.DuplicateGroups) != 0 {
		t.Fatalf("expected no duplicate groups, got %v", r.DuplicateGroups)
	}
	if len(r.UnregisteredConflicts) != 0 {
		t.Fatalf("expected no unregistered conflicts, got %v", r.UnregisteredConflicts)
	}
	if r.Undersupplied {
		t.Fatal("2 slots should cover 2 required matches (1 per group)")
	}
}
