package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/benbeisheim/roomchess-backend/internal/service"
	"github.com/benbeisheim/roomchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T) (*fiber.App, *service.RoomService) {
	t.Helper()
	store, err := storage.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := zerolog.Nop()
	rs := service.NewRoomService(service.NewRoomManager(4, store, log), store)
	app := fiber.New()
	Register(app, NewRoomController(rs, log), NewWebSocketController(rs, log), []string{"http://localhost:5173"}, log)
	return app, rs
}

func doJSON(t *testing.T, app *fiber.App, method, target, player, body string, out interface{}) int {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

func TestListAndOpenRooms(t *testing.T) {
	app, rs := newTestApp(t)

	var rooms []service.RoomSummary
	if code := doJSON(t, app, http.MethodGet, "/api/rooms", "alice", "", &rooms); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(rooms) != 4 || rooms[0].RoomID != 1 || rooms[0].Status != model.StatusWaiting {
		t.Fatalf("unexpected rooms %+v", rooms)
	}

	if _, err := rs.JoinRoom(3, model.Player{ID: "bob"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	var open struct {
		RoomID int `json:"roomId"`
	}
	if code := doJSON(t, app, http.MethodPost, "/api/rooms/open", "alice", "", &open); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if open.RoomID != 3 {
		t.Fatalf("expected room 3, got %d", open.RoomID)
	}
}

func TestGetRoomStateAndMoves(t *testing.T) {
	app, rs := newTestApp(t)

	var errBody map[string]string
	if code := doJSON(t, app, http.MethodGet, "/api/room/99", "alice", "", &errBody); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code := doJSON(t, app, http.MethodGet, "/api/room/1/moves/e2", "alice", "", nil); code != http.StatusConflict {
		t.Fatalf("expected 409 before the game starts, got %d", code)
	}

	for _, p := range []string{"alice", "bob"} {
		if _, err := rs.JoinRoom(1, model.Player{ID: p}); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}

	var state model.RoomState
	if code := doJSON(t, app, http.MethodGet, "/api/room/1", "alice", "", &state); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if state.Status != model.StatusPlaying || len(state.Players) != 2 {
		t.Fatalf("unexpected state %+v", state)
	}

	var moves model.MovesEvent
	if code := doJSON(t, app, http.MethodGet, "/api/room/1/moves/b1", "alice", "", &moves); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if moves.Square != "b1" || len(moves.Targets) != 2 || moves.Targets[0] != "a3" {
		t.Fatalf("unexpected moves %+v", moves)
	}
	if code := doJSON(t, app, http.MethodGet, "/api/room/1/moves/b1", "mallory", "", nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for an outsider, got %d", code)
	}
}

func TestValidateSetup(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "Standard", body: `{"arrangement":"PPPPPPPP/RNBQKBNR"}`, code: http.StatusOK},
		{name: "SameShadeBishops", body: `{"arrangement":"PPPPPPPP/RBNBKQNR"}`, code: http.StatusBadRequest},
		{name: "MalformedBody", body: `{"arrangement":`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := doJSON(t, app, http.MethodPost, "/api/setup/validate", "alice", tt.body, nil); code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
		})
	}
}

func TestDeleteSnapshot(t *testing.T) {
	app, _ := newTestApp(t)

	if code := doJSON(t, app, http.MethodDelete, "/api/room/2/snapshot", "alice", "", nil); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := doJSON(t, app, http.MethodDelete, "/api/room/0/snapshot", "alice", "", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
