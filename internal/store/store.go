// Output cache: a SQLite-backed, idempotent memo of completed Outputs
// keyed by unique_id, so a retried request doesn't re-run the search.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's db/db.go: paired read/write *sql.DB handles, WAL
// pragma tuning, prepared statements loaded from embedded .sql files,
// and a periodic-maintenance Manager. This store does not persist
// regions, fields, teams, or time slots, only the Output of a run keyed
// by the caller-supplied unique_id; see the league-scheduler expanded
// specification's note on why this does not count as league storage.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"path"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	league "leaguesched"
	"leaguesched/internal/conf"
)

//go:embed sql/*.sql
var sqlDir embed.FS

// Store is the output cache. It satisfies conf.Manager.
type Store struct {
	read  *sql.DB
	write *sql.DB

	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt
}

func (*Store) String() string { return "output store" }

// Get returns the previously computed Output for uniqueID, if any.
func (s *Store) Get(ctx context.Context, uniqueID uint32) (*league.Output, bool, error) {
	var payload []byte
	err := s.queries["select-output"].QueryRowContext(ctx, uniqueID).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var out league.Output
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// Put records out under its own UniqueID, replacing whatever was there
// before: a caller that retries a request gets the same answer without
// re-running the search.
func (s *Store) Put(ctx context.Context, out *league.Output) error {
	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = s.commands["insert-output"].ExecContext(ctx, out.UniqueID, payload)
	return err
}

// Start runs a daily maintenance tick: delete stale rows, then run
// PRAGMA optimize.
func (s *Store) Start() {
	tick := time.NewTicker(24 * time.Hour)
	defer tick.Stop()
	for range tick.C {
		if res, err := s.commands["delete-stale"].Exec(); err != nil {
			log.Print(err)
		} else if n, err := res.RowsAffected(); err == nil && n > 0 {
			league.Debug.Println("deleted", n, "stale cache rows")
		}
		if _, err := s.write.Exec("PRAGMA optimize;"); err != nil {
			log.Print(err)
		}
	}
}

// Shutdown flushes and closes both connections.
func (s *Store) Shutdown() {
	if _, err := s.write.Exec("PRAGMA optimize;"); err != nil {
		log.Print(err)
	}
	if err := s.write.Close(); err != nil {
		log.Print(err)
	}
	if err := s.read.Close(); err != nil {
		log.Print(err)
	}
}

// Register opens the store's SQLite file, loads the embedded schema and
// prepared statements, and registers the store with c's manager
// lifecycle.
func Register(c *conf.Conf) *Store {
	read, err := sql.Open("sqlite3", c.Store.File)
	if err != nil {
		log.Fatal(err, ": ", c.Store.File)
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", c.Store.File)
	if err != nil {
		log.Fatal(err, ": ", c.Store.File)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	s := &Store{
		read:     read,
		write:    write,
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
	}

	for _, pragma := range []string{
		"journal_mode = WAL",
		"synchronous = normal",
		"temp_store = memory",
		"foreign_keys = on",
	} {
		if _, err := s.write.Exec("PRAGMA " + pragma + ";"); err != nil {
			log.Fatal(err)
		}
	}

	entries, err := sqlDir.ReadDir("sql")
	if err != nil {
		log.Fatal(err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sqlDir, "sql/"+entry.Name())
		if err != nil {
			log.Fatal(err)
		}

		switch {
		case strings.HasPrefix(base, "create-"):
			if _, err := s.write.Exec(string(data)); err != nil {
				log.Fatal(base, ": ", err)
			}
		case strings.HasPrefix(base, "select-"):
			name := strings.TrimSuffix(base, ".sql")
			if s.queries[name], err = s.read.Prepare(string(data)); err != nil {
				log.Fatal(base, ": ", err)
			}
		default:
			name := strings.TrimSuffix(base, ".sql")
			if s.commands[name], err = s.write.Prepare(string(data)); err != nil {
				log.Fatal(base, ": ", err)
			}
		}
	}

	c.Register(s)
	return s
}
