// Coach-conflict graph: an undirected graph of teams that share a coach.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm/practices.rs, which
// builds the same structure with petgraph's UnGraphMap; this package
// uses a plain adjacency map since the graph is always a disjoint union
// of small cliques and never needs petgraph's generality.
package conflict

import "leaguesched/availability"

// Graph is an undirected graph over team identities. It is a disjoint
// union of cliques, one per coach, built once per scheduling run.
type Graph struct {
	adjacency map[int32]map[int32]struct{}
}

// New builds a Graph from a list of coach-conflict cliques, each a set
// of team ids that must never play or practice concurrently.
func New(cliques [][]int32) *Graph {
	g := &Graph{adjacency: make(map[int32]map[int32]struct{})}
	for _, clique := range cliques {
		for _, team := range clique {
			g.addNode(team)
		}
		for i, a := range clique {
			for j, b := range clique {
				if i == j {
					continue
				}
				g.addEdge(a, b)
			}
		}
	}
	return g
}

func (g *Graph) addNode(team int32) {
	if _, ok := g.adjacency[team]; !ok {
		g.adjacency[team] = make(map[int32]struct{})
	}
}

func (g *Graph) addEdge(a, b int32) {
	g.addNode(a)
	g.addNode(b)
	g.adjacency[a][b] = struct{}{}
}

// Neighbors returns the teams that share a coach with team, in O(deg).
func (g *Graph) Neighbors(team int32) []int32 {
	edges := g.adjacency[team]
	out := make([]int32, 0, len(edges))
	for n := range edges {
		out = append(out, n)
	}
	return out
}

// BusyTeamQueue is the incremental record of which teams have already
// been booked at which windows, consulted in iteration order by the
// annealer's cost function and neighbor generator.
type BusyTeamQueue struct {
	windows map[int32]availability.BusyList
}

// NewBusyTeamQueue returns an empty queue.
func NewBusyTeamQueue() *BusyTeamQueue {
	return &BusyTeamQueue{windows: make(map[int32]availability.BusyList)}
}

// IsBusy reports whether team has a prior booking overlapping w.
func (q *BusyTeamQueue) IsBusy(team int32, w availability.Window) bool {
	return q.windows[team].IsBusy(w)
}

// Add records a booking for team at w.
func (q *BusyTeamQueue) Add(team int32, w availability.Window) {
	q.windows[team] = q.windows[team].Add(w)
}

// ConflictCount returns the number of neighbors of team (in the coach
// graph) already busy at w. team itself is not counted; callers test
// team's own business with IsBusy.
func (g *Graph) ConflictCount(team int32, w availability.Window, busy *BusyTeamQueue) int {
	count := 0
	for _, neighbor := range g.Neighbors(team) {
		if busy.IsBusy(neighbor, w) {
			count++
		}
	}
	return count
}
