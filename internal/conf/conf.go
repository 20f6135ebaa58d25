// Configuration
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's conf/conf.go and conf/io.go: same flag/TOML-overlay
// shape and the Ctx/Kill/Manager-registry lifecycle from conf/manage.go,
// fields replaced with the scheduling core's.
package conf

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	league "leaguesched"
)

const defaultPath = "leaguesched.toml"

func init() {
	def := &defaultConfig

	flag.UintVar(&def.RPC.Port, "port", def.RPC.Port,
		"Port to use for the gRPC scheduling service")
	flag.DurationVar(&def.RPC.Timeout, "timeout", def.RPC.Timeout,
		"Per-request deadline for scheduling RPCs (stored in the configuration; no request applies it)")
	flag.StringVar(&def.RPC.JWKSURL, "jwks", def.RPC.JWKSURL,
		"URL to fetch the JWKS used to verify request tokens")

	flag.UintVar(&def.Workers, "workers", def.Workers,
		"Number of CPU-bound workers (stored in the configuration; MCTS playouts always use runtime.NumCPU())")

	flag.StringVar(&def.Store.File, "store", def.Store.File,
		"SQLite file backing the idempotent output cache")

	flag.UintVar(&def.Dashboard.Port, "dashboard-port", def.Dashboard.Port,
		"Port to use for the read-only progress dashboard")
	flag.BoolVar(&def.Dashboard.Enabled, "dashboard", def.Dashboard.Enabled,
		"Enable the WebSocket progress dashboard")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Discard standard log output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&path, "conf", path, "Path to configuration file")
}

// RPCConf configures the gRPC transport boundary.
type RPCConf struct {
	Port    uint          `toml:"port"`
	Timeout time.Duration `toml:"timeout"`
	JWKSURL string        `toml:"jwks_url"`
}

// StoreConf configures the idempotent output cache.
type StoreConf struct {
	File string `toml:"file"`
}

// DashboardConf configures the read-only progress dashboard.
type DashboardConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

// Conf is the process-wide configuration, loaded once at startup. Its
// TOML-mapped fields are plain data; Ctx/Kill/Log/Debug and the manager
// registry are filled in by Load and used to drive an orderly shutdown.
type Conf struct {
	RPC       RPCConf       `toml:"rpc"`
	Store     StoreConf     `toml:"store"`
	Dashboard DashboardConf `toml:"dashboard"`
	Workers   uint          `toml:"workers"`

	Log   *log.Logger        `toml:"-"`
	Debug *log.Logger        `toml:"-"`
	Ctx   context.Context    `toml:"-"`
	Kill  context.CancelFunc `toml:"-"`

	man []Manager
	run bool
}

var defaultConfig = Conf{
	RPC: RPCConf{
		Port:    7420,
		Timeout: time.Second * 30,
	},
	Store: StoreConf{
		File: "leaguesched.db",
	},
	Dashboard: DashboardConf{
		Enabled: true,
		Port:    8080,
	},
	Workers: uint(runtime.NumCPU()),

	Log:   log.Default(),
	Debug: league.Debug,
}

var (
	debug  = false
	silent = false
	dump   = false
	path   = defaultPath
)

// Load reads the configuration file named by -conf, falling back to the
// defaults above when the default file does not exist (a missing file
// named explicitly by -conf is fatal), and applies -debug/-silent.
func Load() *Conf {
	var c Conf

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		c = defaultConfig
		if _, err := toml.NewDecoder(file).Decode(&c); err != nil {
			log.Print(err)
			c = defaultConfig
		}
	case os.IsNotExist(err) && path == defaultPath:
		c = defaultConfig
	default:
		log.Fatal(err)
	}

	c.Ctx, c.Kill = context.WithCancel(context.Background())

	switch {
	case debug:
		league.Debug.SetOutput(os.Stderr)
		log.Default().SetFlags(log.LstdFlags | log.Lshortfile)
		league.Debug.Println("Debug logging has been enabled")
	case silent:
		log.Default().SetOutput(io.Discard)
	}

	if dump {
		if err := c.Dump(os.Stdout); err != nil {
			log.Fatalln("Failed to dump default configuration:", err)
		}
		os.Exit(0)
	}

	return &c
}

// Dump serialises c as TOML.
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
