package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessboard/internal/chess"
	"github.com/benbeisheim/chessboard/internal/model"
	"github.com/benbeisheim/chessboard/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() (*fiber.App, *service.GameService) {
	gs := service.NewGameService(service.NewGameManager())
	app := fiber.New()
	NewGameController(gs).Register(app.Group("/api/game"))
	return app, gs
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp.StatusCode, raw
}

func createGame(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/api/game/create", body)
	if status != fiber.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", status, fiber.StatusCreated, raw)
	}
	var resp struct {
		GameID string `json:"gameId"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp.GameID
}

func decodeState(t *testing.T, raw []byte) model.GameState {
	t.Helper()
	var s model.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("unexpected error: %v body=%s", err, raw)
	}
	return s
}

func TestCreateGameEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFEN    string
	}{
		{name: "empty body", wantStatus: fiber.StatusCreated, wantFEN: chess.StandardFEN},
		{name: "empty object", body: `{}`, wantStatus: fiber.StatusCreated, wantFEN: chess.StandardFEN},
		{
			name:       "custom position",
			body:       `{"fen":"4k3/8/8/8/8/8/8/4K2R w K - 0 1"}`,
			wantStatus: fiber.StatusCreated,
			wantFEN:    "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		},
		{name: "bad position", body: `{"fen":"8/8 w"}`, wantStatus: fiber.StatusBadRequest},
		{name: "malformed json", body: `{"fen":`, wantStatus: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		status, raw := do(t, app, http.MethodPost, "/api/game/create", tt.body)
		if status != tt.wantStatus {
			t.Errorf("%s: unexpected status: got=%d want=%d body=%s", tt.name, status, tt.wantStatus, raw)
			continue
		}
		if tt.wantFEN == "" {
			continue
		}
		var resp struct {
			GameID string `json:"gameId"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, stateRaw := do(t, app, http.MethodGet, "/api/game/"+resp.GameID, "")
		if got := decodeState(t, stateRaw).Board.FEN; got != tt.wantFEN {
			t.Errorf("%s: unexpected FEN: got=%s want=%s", tt.name, got, tt.wantFEN)
		}
	}
}

func TestMoveEndpoints(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp()
	id := createGame(t, app, "")
	base := "/api/game/" + id

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "legal move", method: http.MethodPost, path: base + "/move", body: `{"from":"e2","to":"e4"}`, wantStatus: fiber.StatusOK},
		{name: "wrong side", method: http.MethodPost, path: base + "/move", body: `{"from":"d2","to":"d4"}`, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "bad square", method: http.MethodPost, path: base + "/move", body: `{"from":"e7","to":"e0"}`, wantStatus: fiber.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: base + "/move", body: `[`, wantStatus: fiber.StatusBadRequest},
		{name: "reply", method: http.MethodPost, path: base + "/move", body: `{"from":"e7","to":"e5"}`, wantStatus: fiber.StatusOK},
		{name: "undo", method: http.MethodDelete, path: base + "/move", wantStatus: fiber.StatusOK},
		{name: "unknown game", method: http.MethodPost, path: "/api/game/nope/move", body: `{"from":"e2","to":"e4"}`, wantStatus: fiber.StatusNotFound},
		{name: "unknown game state", method: http.MethodGet, path: "/api/game/nope", wantStatus: fiber.StatusNotFound},
	}
	// Steps share one game and run in order.
	for _, tt := range tests {
		status, raw := do(t, app, tt.method, tt.path, tt.body)
		if status != tt.wantStatus {
			t.Errorf("%s: unexpected status: got=%d want=%d body=%s", tt.name, status, tt.wantStatus, raw)
		}
	}

	_, raw := do(t, app, http.MethodGet, base+"?flipped=true", "")
	s := decodeState(t, raw)
	if s.ToMove != "black" || len(s.Notations) != 1 || s.Notations[0] != "e4" {
		t.Errorf("unexpected state: to move %s, notations %v", s.ToMove, s.Notations)
	}
	if !s.Board.Flipped || s.Board.Tiles[0].Position != "h1" {
		t.Error("flipped query was ignored")
	}

	status, _ := do(t, app, http.MethodDelete, base+"/move", "")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", status, fiber.StatusOK)
	}
	status, _ = do(t, app, http.MethodDelete, base+"/move", "")
	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("unexpected status for an empty log: got=%d want=%d", status, fiber.StatusUnprocessableEntity)
	}
}

func TestLegalMovesEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp()
	id := createGame(t, app, `{"fen":"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1"}`)

	tests := []struct {
		query      string
		wantStatus int
		wantMoves  int
	}{
		{query: "", wantStatus: fiber.StatusOK, wantMoves: 4},
		{query: "?from=e1", wantStatus: fiber.StatusOK, wantMoves: 4},
		{query: "?from=e2", wantStatus: fiber.StatusOK, wantMoves: 0},
		{query: "?from=x1", wantStatus: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		status, raw := do(t, app, http.MethodGet, "/api/game/"+id+"/moves"+tt.query, "")
		if status != tt.wantStatus {
			t.Errorf("%q: unexpected status: got=%d want=%d", tt.query, status, tt.wantStatus)
			continue
		}
		if status != fiber.StatusOK {
			continue
		}
		var resp struct {
			Moves []model.SimpleMove `json:"moves"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Moves) != tt.wantMoves {
			t.Errorf("%q: unexpected moves: got=%v", tt.query, resp.Moves)
		}
	}
}

func TestGameOverEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp()
	id := createGame(t, app, `{"fen":"k7/1R6/2K5/8/8/8/8/8 b - - 0 1"}`)

	_, raw := do(t, app, http.MethodGet, "/api/game/"+id, "")
	if s := decodeState(t, raw); s.Status != model.StatusStalemate {
		t.Errorf("unexpected status: got=%s want=%s", s.Status, model.StatusStalemate)
	}
	status, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move", `{"from":"a8","to":"a7"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("unexpected status: got=%d want=%d", status, fiber.StatusUnprocessableEntity)
	}

	status, _ = do(t, app, http.MethodDelete, "/api/game/"+id, "")
	if status != fiber.StatusNoContent {
		t.Errorf("unexpected status: got=%d want=%d", status, fiber.StatusNoContent)
	}
	status, _ = do(t, app, http.MethodGet, "/api/game/"+id, "")
	if status != fiber.StatusNotFound {
		t.Errorf("unexpected status: got=%d want=%d", status, fiber.StatusNotFound)
	}
}

func TestResetEndpoint(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp()
	id := createGame(t, app, "")

	if status, raw := do(t, app, http.MethodPost, "/api/game/"+id+"/move", `{"from":"e2","to":"e4"}`); status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, raw)
	}

	status, raw := do(t, app, http.MethodPost, "/api/game/"+id+"/reset", "")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", status, fiber.StatusOK, raw)
	}
	s := decodeState(t, raw)
	if s.Board.FEN != chess.StandardFEN || len(s.Notations) != 0 {
		t.Errorf("unexpected state after reset: fen=%s notations=%v", s.Board.FEN, s.Notations)
	}

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	status, raw = do(t, app, http.MethodPost, "/api/game/"+id+"/reset", `{"fen":"`+fen+`"}`)
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", status, fiber.StatusOK, raw)
	}
	if got := decodeState(t, raw).Board.FEN; got != fen {
		t.Errorf("unexpected fen: got=%s want=%s", got, fen)
	}

	if status, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/reset", `{"fen":"nonsense"}`); status != fiber.StatusBadRequest {
		t.Errorf("unexpected status: got=%d want=%d", status, fiber.StatusBadRequest)
	}
	if status, _ := do(t, app, http.MethodPost, "/api/game/missing/reset", ""); status != fiber.StatusNotFound {
		t.Errorf("unexpected status: got=%d want=%d", status, fiber.StatusNotFound)
	}
}
