package dashboard

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"leaguesched/internal/conf"
	"leaguesched/schedule"
)

func testConf(t *testing.T, port uint) *conf.Conf {
	t.Helper()
	return &conf.Conf{
		Dashboard: conf.DashboardConf{Enabled: true, Port: port},
		Log:       log.New(io.Discard, "", 0),
		Debug:     log.New(io.Discard, "", 0),
	}
}

func TestNotifyBroadcastsToConnectedClient(t *testing.T) {
	c := testConf(t, 0)
	facade := schedule.New(nil)
	d := Register(c, facade)
	if d == nil {
		t.Fatal("expected a Dashboard when Enabled is true")
	}

	srv := httptest.NewServer(d.mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Give the server goroutine time to register the client before the
	// event fires; Notify only reaches clients already registered.
	time.Sleep(20 * time.Millisecond)

	d.Notify(42, schedule.StateRunning)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var evt struct {
		UniqueID uint32 `json:"unique_id"`
		State    string `json:"state"`
	}
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if evt.UniqueID != 42 || evt.State != "running" {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestRegisterDisabledReturnsNil(t *testing.T) {
	c := testConf(t, 0)
	c.Dashboard.Enabled = false
	if d := Register(c, schedule.New(nil)); d != nil {
		t.Fatal("expected nil Dashboard when Enabled is false")
	}
}
