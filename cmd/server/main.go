// Entry point: wires configuration, the idempotent output store, the
// gRPC scheduling service and the progress dashboard together and runs
// them until interrupted.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's main.go/cmd/server/main.go: Prepare every
// Manager, then call config.Start() to block until shutdown.
package main

import (
	"flag"
	"fmt"
	"os"

	"leaguesched/internal/conf"
	"leaguesched/internal/dashboard"
	"leaguesched/internal/rpc"
	"leaguesched/internal/store"
	"leaguesched/schedule"
)

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	c := conf.Load()

	cache := store.Register(c)
	facade := schedule.New(cache)

	dashboard.Register(c, facade)
	rpc.Register(c, facade)

	c.Start()
}
