// Process lifecycle: register long-running components and bring them
// up and down together.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's conf/manage.go.
package conf

import (
	"fmt"
	"os"
	"os/signal"
)

// Manager is a long-running component of the server process: the gRPC
// listener, the dashboard, the output store.
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

// Register adds m to the set of managers Start brings up and down.
// Registering after Start has been called is a programmer error.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("late register: %#v", m))
	}
	c.man = append(c.man, m)
}

// Start launches every registered manager, then blocks until either an
// interrupt signal or c.Kill is observed, at which point it shuts every
// manager down in registration order and returns.
func (c *Conf) Start() {
	for _, m := range c.man {
		c.Debug.Printf("starting %s", m)
		go m.Start()
	}
	c.run = true

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		c.Debug.Println("caught interrupt")
	case <-c.Ctx.Done():
		c.Debug.Println("requested shutdown")
	}

	c.Debug.Println("waiting for managers to shut down")
	for _, m := range c.man {
		c.Debug.Printf("shutting %s down", m)
		m.Shutdown()
	}
	c.Debug.Println("shut down")
}
