package conflict

import (
	"testing"

	"leaguesched/availability"
)

func TestNeighborsFormClique(t *testing.T) {
	g := New([][]int32{{1, 2, 3}})

	for _, team := range []int32{1, 2, 3} {
		neighbors := g.Neighbors(team)
		if len(neighbors) != 2 {
			t.Fatalf("team %d: got %d neighbors, want 2", team, len(neighbors))
		}
	}

	if len(g.Neighbors(99)) != 0 {
		t.Fatal("unregistered team should have no neighbors")
	}
}

func TestConflictCount(t *testing.T) {
	g := New([][]int32{{1, 2, 3}})
	busy := NewBusyTeamQueue()
	w := availability.Window{Start: 0, End: 100}

	if got := g.ConflictCount(1, w, busy); got != 0 {
		t.Fatalf("expected 0 conflicts before any bookings, got %d", got)
	}

	busy.Add(2, w)
	if got := g.ConflictCount(1, w, busy); got != 1 {
		t.Fatalf("expected 1 conflict, got %d", got)
	}

	busy.Add(3, w)
	if got := g.ConflictCount(1, w, busy); got != 2 {
		t.Fatalf("expected 2 conflicts, got %d", got)
	}
}

func TestDisjointCliquesDoNotConflict(t *testing.T) {
	g := New([][]int32{{1, 2}, {3, 4}})
	if len(g.Neighbors(1)) != 1 || g.Neighbors(1)[0] != 2 {
		t.Fatalf("team 1 should only be connected to team 2")
	}
	busy := NewBusyTeamQueue()
	busy.Add(3, availability.Window{Start: 0, End: 10})
	if got := g.ConflictCount(1, availability.Window{Start: 0, End: 10}, busy); got != 0 {
		t.Fatalf("teams in different cliques must not conflict, got %d", got)
	}
}
