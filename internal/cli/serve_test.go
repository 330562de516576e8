package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dotstitch/dotstitch/pkg/config"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
	"github.com/dotstitch/dotstitch/pkg/store"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	rosterPath := filepath.Join(t.TempDir(), "team.json")
	players := `[{"playerName":"Sam Reyes","jerseyNumber":"7","size":"34"}]`
	if err := os.WriteFile(rosterPath, []byte(players), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Roster = rosterPath
	cfg.Store.Backend = "memory"

	return &server{
		cli:       New(io.Discard, LogInfo),
		cfg:       cfg,
		positions: store.NewPositions(store.NewMemoryBackend()),
	}
}

// withURLParam injects a chi route parameter for handler-level tests.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandlePlayers(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.handlePlayers(rec, httptest.NewRequest(http.MethodGet, "/api/players", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var players []roster.Player
	if err := json.NewDecoder(rec.Body).Decode(&players); err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 || players[0].PlayerName != "Sam Reyes" {
		t.Errorf("players = %+v", players)
	}
}

func TestHandleExportRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"unknown view", `{"playerName":"Sam Reyes","view":"hood"}`, http.StatusBadRequest},
		{"unknown player", `{"playerName":"Nobody"}`, http.StatusNotFound},
		{"bad format", `{"playerName":"Sam Reyes","format":"bmp"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(tt.body))
			srv.handleExport(rec, req)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.code, rec.Body)
			}
		})
	}
}

func TestHandlePlacementsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	key := store.PlayerKey("Sam Reyes", "7")
	recs := store.ViewRecords{
		scene.ViewBack: &store.PlacementRecord{
			Name: &store.TextPlacement{Text: "Sam Reyes", Left: 300, Top: 128},
		},
	}
	if err := srv.positions.Save(ctx, key, recs); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/placements/"+key, nil)
	req = withURLParam(req, "key", key)
	rec := httptest.NewRecorder()
	srv.handleGetPlacements(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got store.ViewRecords
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got[scene.ViewBack] == nil || got[scene.ViewBack].Name.Left != 300 {
		t.Errorf("records = %+v", got)
	}
}
