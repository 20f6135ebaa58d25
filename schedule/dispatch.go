// Multi-region dispatch: every ScheduledInput is scheduled
// independently, in parallel.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on the pack's use of golang.org/x/sync (JensRantil-meeting-scheduler's
// go.mod, and KWARC-kalah-game's indirect requirement of the same module).
package schedule

import (
	"context"

	"golang.org/x/sync/errgroup"

	league "leaguesched"
)

// Dispatch schedules every region in inputs concurrently and returns
// their Outputs in the same order. A region's failure cancels the
// shared context; regions already searching run to completion, since
// the searches do not consult it. Dispatch returns the first error
// encountered.
func (f *Facade) Dispatch(ctx context.Context, inputs []*league.ScheduledInput) ([]*league.Output, error) {
	outputs := make([]*league.Output, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			out, err := f.Schedule(gctx, in)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
