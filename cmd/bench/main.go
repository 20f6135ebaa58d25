// One-shot CLI: runs the scheduling core against a fixture file and
// prints a summary report, without bringing up the gRPC service or the
// dashboard.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's cmd/tournament/main.go: flag-parse, load, run,
// simplified since this is a one-shot run rather than a long-lived
// conf.Manager set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	league "leaguesched"
	"leaguesched/internal/report"
	"leaguesched/schedule"
)

func main() {
	var (
		fixture       = flag.String("fixture", "", "Path to a JSON-encoded ScheduledInput")
		matchesToPlay = flag.Uint("matches", 1, "Matches each pair of teams within a group must play, for the pre-schedule report")
	)
	flag.Parse()

	if *fixture == "" {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: bench -fixture FILE.json")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*fixture)
	if err != nil {
		log.Fatal(err)
	}

	var in league.ScheduledInput
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Fatalf("decoding fixture: %s", err)
	}

	rep := report.Generate(&in, uint8(*matchesToPlay))
	fmt.Printf("pre-schedule report: %d required matches, %d supplied slots, undersupplied=%v\n",
		rep.TotalMatchesRequired, rep.TotalSlotsSupplied, rep.Undersupplied)
	for _, dup := range rep.DuplicateGroups {
		fmt.Printf("  duplicate team group %v used by team-group indices %v\n", dup.Teams, dup.Indices)
	}
	for _, id := range rep.UnregisteredConflicts {
		fmt.Printf("  coach conflict %d references a team outside every group\n", id)
	}

	f := schedule.New(nil)
	start := time.Now()
	out, err := f.Schedule(context.Background(), &in)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatal(err)
	}

	filled, empty := 0, 0
	for _, ts := range out.TimeSlots {
		if ts.Booking.Kind == league.Empty {
			empty++
		} else {
			filled++
		}
	}
	fmt.Printf("schedule: %d slots filled, %d empty, computed in %s\n", filled, empty, elapsed)
}
