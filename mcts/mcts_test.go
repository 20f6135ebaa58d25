package mcts

import (
	"math/rand"
	"testing"

	"leaguesched/availability"
)

func win(start, end int64) availability.Window {
	return availability.Window{Start: start, End: end}
}

func TestTrivialFill(t *testing.T) {
	slots := []Slot{{Field: 1, Window: win(0, 3600)}}
	groups := []Group{{ID: 0, Teams: []int32{1, 2}}}

	final := Search(New(slots, groups), Options{Iterations: 200, Workers: 1, Seed: 1})

	if g := final.GameAt(0); g == nil {
		t.Fatal("expected the only slot to be filled with two teams and one slot")
	}
}

func TestOverlapForbidsDoubleBooking(t *testing.T) {
	slots := []Slot{
		{Field: 1, Window: win(0, 3600)},
		{Field: 2, Window: win(1800, 5400)}, // overlaps slot 0's window
	}
	groups := []Group{{ID: 0, Teams: []int32{1, 2}}}

	final := Search(New(slots, groups), Options{Iterations: 500, Workers: 1, Seed: 2})

	filled := 0
	for i := 0; i < final.Len(); i++ {
		if final.GameAt(i) != nil {
			filled++
		}
	}
	if filled > 1 {
		t.Fatalf("only two teams exist and their windows overlap: at most one slot can fill, got %d", filled)
	}
}

func TestTwoGroupsDisjoint(t *testing.T) {
	slots := []Slot{
		{Field: 1, Window: win(0, 3600)},
		{Field: 1, Window: win(3600, 7200)},
	}
	groups := []Group{
		{ID: 0, Teams: []int32{1, 2}},
		{ID: 1, Teams: []int32{3, 4}},
	}

	final := Search(New(slots, groups), Options{Iterations: 500, Workers: 1, Seed: 3})

	for i := 0; i < final.Len(); i++ {
		g := final.GameAt(i)
		if g == nil {
			continue
		}
		if g.GroupID == 0 {
			if g.TeamOne == 3 || g.TeamOne == 4 || g.TeamTwo == 3 || g.TeamTwo == 4 {
				t.Fatalf("game assigned to group 0 used a team from group 1: %+v", g)
			}
		} else {
			if g.TeamOne == 1 || g.TeamOne == 2 || g.TeamTwo == 1 || g.TeamTwo == 2 {
				t.Fatalf("game assigned to group 1 used a team from group 0: %+v", g)
			}
		}
	}
}

func TestEmptyInputTolerated(t *testing.T) {
	final := Search(New(nil, nil), Options{Iterations: 10, Workers: 1, Seed: 4})
	if final.Len() != 0 {
		t.Fatalf("expected an empty board, got %d slots", final.Len())
	}
}

func TestDeterministicSingleThreaded(t *testing.T) {
	slots := []Slot{
		{Field: 1, Window: win(0, 3600)},
		{Field: 1, Window: win(3600, 7200)},
		{Field: 2, Window: win(0, 3600)},
	}
	groups := []Group{{ID: 0, Teams: []int32{1, 2, 3, 4}}}

	run := func() []*Game {
		final := Search(New(slots, groups), Options{Iterations: 300, Workers: 1, Seed: 42})
		games := make([]*Game, final.Len())
		copy(games, final.games)
		return games
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("length mismatch between runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		switch {
		case a[i] == nil && b[i] == nil:
			continue
		case a[i] == nil || b[i] == nil:
			t.Fatalf("slot %d: one run filled it, the other didn't", i)
		case *a[i] != *b[i]:
			t.Fatalf("slot %d: runs diverged: %+v vs %+v", i, *a[i], *b[i])
		}
	}
}

func TestBalancePrefersEvenDistribution(t *testing.T) {
	even := []*Game{
		{TeamOne: 1, TeamTwo: 2}, {TeamOne: 3, TeamTwo: 4},
		{TeamOne: 1, TeamTwo: 3}, {TeamOne: 2, TeamTwo: 4},
	}
	lopsided := []*Game{
		{TeamOne: 1, TeamTwo: 2}, {TeamOne: 1, TeamTwo: 3}, {TeamOne: 1, TeamTwo: 4},
	}

	s1 := &State{games: even}
	s2 := &State{games: lopsided}

	if Evaluate(s1) <= Evaluate(s2) {
		t.Fatalf("even distribution (score %d) should outscore lopsided (score %d)",
			Evaluate(s1), Evaluate(s2))
	}
}

func TestHashStableAcrossEquivalentMoveOrder(t *testing.T) {
	slots := []Slot{
		{Field: 1, Window: win(0, 3600)},
		{Field: 1, Window: win(3600, 7200)},
	}
	groups := []Group{{ID: 0, Teams: []int32{1, 2, 3, 4}}}

	s1 := New(slots, groups)
	s1.MakeMove(Move{SlotIndex: 0, Game: Game{TeamOne: 1, TeamTwo: 2}})
	s1.MakeMove(Move{SlotIndex: 1, Game: Game{TeamOne: 3, TeamTwo: 4}})

	s2 := New(slots, groups)
	s2.MakeMove(Move{SlotIndex: 1, Game: Game{TeamOne: 3, TeamTwo: 4}})
	s2.MakeMove(Move{SlotIndex: 0, Game: Game{TeamOne: 1, TeamTwo: 2}})

	if s1.Hash() != s2.Hash() {
		t.Fatal("same final assignment reached via different move order should hash identically")
	}
}

func TestSelectChildSeedsFromTable(t *testing.T) {
	slots := []Slot{{Field: 1, Window: win(0, 3600)}}
	groups := []Group{{ID: 0, Teams: []int32{1, 2}}}

	parent := New(slots, groups)
	n := newNode(parent, nil, Move{})
	if len(n.untried) != 2 {
		t.Fatalf("expected both team orderings as candidate moves, got %d", len(n.untried))
	}

	table := NewTable(16)
	for _, mov := range n.untried {
		child := parent.Clone()
		child.MakeMove(mov)
		table.Store(child.Hash(), 7)
	}

	c, expanded := n.selectChild(table, rand.New(rand.NewSource(1)))
	if !expanded {
		t.Fatal("expected the untried move to be expanded into a new child")
	}
	if c.visits == 0 {
		t.Fatal("a child whose state matches a transposition-table entry should be seeded, not start cold")
	}
	if got := c.total / float64(c.visits); got != 7 {
		t.Fatalf("seeded average = %v, want 7", got)
	}
}

func TestPlayoutReusesCachedEvaluationOnHit(t *testing.T) {
	slots := []Slot{{Field: 1, Window: win(0, 3600)}}
	groups := []Group{{ID: 0, Teams: []int32{1, 2}}}

	state := New(slots, groups)
	state.MakeMove(Move{SlotIndex: 0, Game: Game{TeamOne: 1, TeamTwo: 2}})

	root := newNode(state, nil, Move{})
	if len(root.untried) != 0 {
		t.Fatalf("expected the single filled slot to leave no untried moves, got %d", len(root.untried))
	}

	table := NewTable(16)
	const cached = -999
	table.Store(state.Hash(), cached)

	playout(root, table, rand.New(rand.NewSource(1)))

	if root.visits != 1 {
		t.Fatalf("expected exactly one backpropagated visit, got %d", root.visits)
	}
	if got := root.total / float64(root.visits); got != cached {
		t.Fatalf("playout should have reused the cached evaluation %d instead of re-evaluating, got %v", cached, got)
	}
}

func TestZeroIterationsKeepsBoardShape(t *testing.T) {
	slots := []Slot{{Field: 1, Window: win(0, 3600)}}
	groups := []Group{{ID: 0, Teams: []int32{1, 2}}}

	final := Search(New(slots, groups), Options{Iterations: 0, Workers: 1, Seed: 0})
	// Iterations: 0 falls back to the computed budget, not a true no-op;
	// assert only that the board shape survives the round trip.
	if final.Len() != 1 {
		t.Fatalf("expected the single input slot to survive, got %d", final.Len())
	}
}
