// Read-only scheduling-progress dashboard: a websocket broadcast of
// state transitions (SEEDED/RUNNING/FINALIZED) for every region being
// scheduled, with no write path back into the scheduling core.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's web/manage.go (a conf.Manager owning its own
// *http.ServeMux and listen loop) and web/ws.go (upgrading one HTTP
// connection to a long-lived duplex stream per client), swapped from
// nhooyr.io/websocket to github.com/gorilla/websocket, the websocket
// library the rest of the retrieval pack actually carries.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"leaguesched/internal/conf"
	"leaguesched/schedule"
)

// Event is one state transition, broadcast to every connected client.
type Event struct {
	UniqueID uint32         `json:"unique_id"`
	State    schedule.State `json:"state"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	type wire struct {
		UniqueID uint32 `json:"unique_id"`
		State    string `json:"state"`
	}
	return json.Marshal(wire{UniqueID: e.UniqueID, State: e.State.String()})
}

// Dashboard is the websocket broadcast Manager. It implements
// schedule.Notifier.
type Dashboard struct {
	conf *conf.Conf
	mux  *http.ServeMux
	srv  *http.Server

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Read-only dashboard, served alongside the gRPC API: any origin may
	// watch a run's progress.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (*Dashboard) String() string { return "scheduling-progress dashboard" }

// Notify fans out an Event to every connected client. It never blocks:
// a client whose send buffer is full is dropped rather than stalling
// the scheduling run that produced the event.
func (d *Dashboard) Notify(uniqueID uint32, state schedule.State) {
	evt := Event{UniqueID: uniqueID, State: state}

	d.mu.Lock()
	defer d.mu.Unlock()
	for conn, ch := range d.clients {
		select {
		case ch <- evt:
		default:
			d.conf.Debug.Printf("dropping slow dashboard client %s", conn.RemoteAddr())
			delete(d.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

func (d *Dashboard) socket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.conf.Debug.Printf("dashboard upgrade failed: %s", err)
		return
	}

	ch := make(chan Event, 16)
	d.mu.Lock()
	d.clients[conn] = ch
	d.mu.Unlock()

	d.conf.Debug.Printf("dashboard client connected from %s", r.RemoteAddr)

	go d.drainPings(conn)

	for evt := range ch {
		if err := conn.WriteJSON(evt); err != nil {
			break
		}
	}
	d.disconnect(conn)
}

// drainPings discards anything the client sends: the protocol is
// server-to-client only, but the read loop must still run so gorilla's
// connection-health pings get answered and a closed client is detected.
func (d *Dashboard) drainPings(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			d.disconnect(conn)
			return
		}
	}
}

func (d *Dashboard) disconnect(conn *websocket.Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ch, ok := d.clients[conn]; ok {
		delete(d.clients, conn)
		close(ch)
	}
	conn.Close()
}

// Start serves the dashboard until Shutdown is called.
func (d *Dashboard) Start() {
	addr := fmt.Sprintf(":%d", d.conf.Dashboard.Port)
	d.conf.Debug.Printf("serving dashboard on %s", addr)
	if err := d.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		d.conf.Log.Print(err)
	}
}

// Shutdown closes every connected client and stops the HTTP server.
func (d *Dashboard) Shutdown() {
	d.mu.Lock()
	for conn, ch := range d.clients {
		delete(d.clients, conn)
		close(ch)
		conn.Close()
	}
	d.mu.Unlock()

	d.srv.Close()
}

// Register builds the Dashboard, wires it as the Facade's Notifier and
// as a conf.Manager, and returns it. If c.Dashboard.Enabled is false,
// Register does nothing and returns nil.
func Register(c *conf.Conf, facade *schedule.Facade) *Dashboard {
	if !c.Dashboard.Enabled {
		return nil
	}

	d := &Dashboard{
		conf:    c,
		mux:     http.NewServeMux(),
		clients: make(map[*websocket.Conn]chan Event),
	}
	d.mux.HandleFunc("/socket", d.socket)
	d.mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})
	d.srv = &http.Server{Addr: fmt.Sprintf(":%d", c.Dashboard.Port), Handler: d.mux}

	facade.SetNotifier(d)
	c.Register(d)
	return d
}
