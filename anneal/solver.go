// Simulated-annealing solver: exponential cooling from T=100, Metropolis
// acceptance, best-ever retention.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on original_source/backend/src/algorithm/practices.rs's use
// of argmin::solver::simulatedannealing::SimulatedAnnealing::new(100.0)
// over 10,000 iterations; argmin's own cooling schedule isn't visible
// from the Rust source, so the exponential factor below is this repo's
// choice (see DESIGN.md).
package anneal

import (
	"math"
	"math/rand"
)

const (
	initialTemperature = 100.0
	iterations         = 10000
	// coolingRate decays initialTemperature to roughly 0.1 over
	// iterations steps: 100 * coolingRate^10000 ~= 0.1.
	coolingRate = 0.9993
)

// Options configures a Solve call. Zero value uses the defaults above.
type Options struct {
	Iterations  int
	InitialTemp float64
	CoolingRate float64
	Seed        int64
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = iterations
	}
	if o.InitialTemp <= 0 {
		o.InitialTemp = initialTemperature
	}
	if o.CoolingRate <= 0 {
		o.CoolingRate = coolingRate
	}
	return o
}

// Solve anneals p.Seed() down to a low-cost parameter vector and returns
// the best vector observed across the run, not necessarily the final
// one: accepted moves can still worsen cost under the Metropolis
// criterion, so the search tracks its best-ever separately.
func Solve(p *Problem, opts Options) ParameterVector {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	current := p.Seed(rng)
	currentCost := Cost(current, p.Conflicts)

	best := current.Clone()
	bestCost := currentCost

	temperature := opts.InitialTemp

	for i := 0; i < opts.Iterations; i++ {
		candidate := Neighbor(rng, current, p.Conflicts, temperature)
		candidateCost := Cost(candidate, p.Conflicts)

		delta := candidateCost - currentCost
		accept := delta < 0 || rng.Float64() < metropolis(delta, temperature)

		if accept {
			current = candidate
			currentCost = candidateCost
			if currentCost < bestCost {
				best = current.Clone()
				bestCost = currentCost
			}
		}

		temperature *= opts.CoolingRate
	}

	return best
}

func metropolis(delta, temperature float64) float64 {
	if temperature <= 0 {
		return 0
	}
	return math.Exp(-delta / temperature)
}
