package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/arena/internal/adapters/relay"
	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:        "test",
		Port:        8080,
		ReadLimit:   4096,
		PingPeriod:  time.Second,
		OfferLimit:  5,
		OfferWindow: time.Second,
	}
}

func TestHealthz(t *testing.T) {
	r := SetupRouter(context.Background(), testConfig(), app.NewRegistry(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestRoomsListsAnnouncedHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reg := app.NewRegistry()
	srv := httptest.NewServer(SetupRouter(ctx, testConfig(), reg, nil))
	defer srv.Close()

	host, err := relay.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws/signal")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer host.Close()
	id, err := host.Announce(ctx)
	if err != nil {
		t.Fatalf("announce: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Rooms []app.RoomInfo `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Rooms) != 1 || string(body.Rooms[0].ID) != string(id) {
		t.Fatalf("rooms = %+v", body.Rooms)
	}
}

func TestSignalOptionsFromConfig(t *testing.T) {
	opts := SignalOptions(testConfig())
	if opts.ReadLimit != 4096 || opts.PingPeriod != time.Second || opts.OfferLimit != 5 {
		t.Fatalf("opts = %+v", opts)
	}
}
