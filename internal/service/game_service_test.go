package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessboard/internal/chess"
	"github.com/benbeisheim/chessboard/internal/model"
	"github.com/google/uuid"
)

func newService() (*GameService, *GameManager) {
	gm := NewGameManager()
	return NewGameService(gm), gm
}

func TestCreateGame(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fen     string
		wantFEN string
		wantErr error
	}{
		{name: "standard", wantFEN: chess.StandardFEN},
		{name: "from position", fen: "4k3/8/8/8/8/8/8/4K2R w K - 0 1", wantFEN: "4k3/8/8/8/8/8/8/4K2R w K - 0 1"},
		{name: "bad position", fen: "not a position", wantErr: chess.ErrInvalidFEN},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gs, gm := newService()

			id, err := gs.CreateGame(tt.fen)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if gm.Size() != 0 {
					t.Error("failed creation registered a game")
				}
				return
			}
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("unexpected game id %q: %v", id, err)
			}
			state, err := gs.GetGameState(id, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.Board.FEN != tt.wantFEN {
				t.Errorf("unexpected FEN: got=%s want=%s", state.Board.FEN, tt.wantFEN)
			}
		})
	}
}

func TestUnknownGame(t *testing.T) {
	t.Parallel()
	gs, _ := newService()
	id := uuid.New().String()

	checks := map[string]error{
		"exists": gs.Exists(id),
		"delete": gs.DeleteGame(id),
	}
	_, checks["state"] = gs.GetGameState(id, false)
	_, checks["moves"] = gs.LegalMoves(id, "")
	_, checks["move"] = gs.HandleMove(id, model.SimpleMove{From: "e2", To: "e4"})
	_, checks["undo"] = gs.UndoMove(id)
	checks["connect"] = gs.RegisterConnection(id, "observer", nil, false)
	checks["send"] = gs.SendToObserver(id, "observer", nil)
	_, checks["reset"] = gs.ResetGame(id, "")

	for name, err := range checks {
		if !errors.Is(err, ErrGameNotFound) {
			t.Errorf("%s: unexpected error: got=%v want=%v", name, err, ErrGameNotFound)
		}
	}
	gs.UnregisterConnection(id, "observer")
}

func TestPlayThroughService(t *testing.T) {
	t.Parallel()
	gs, gm := newService()
	id, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := gs.HandleMove(id, model.SimpleMove{From: "g1", To: "f3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ToMove != "black" || len(state.Notations) != 1 || state.Notations[0] != "Nf3" {
		t.Errorf("unexpected state: to move %s, notations %v", state.ToMove, state.Notations)
	}
	if _, err := gs.HandleMove(id, model.SimpleMove{From: "f3", To: "e5"}); !errors.Is(err, model.ErrIllegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, model.ErrIllegalMove)
	}

	moves, err := gs.LegalMoves(id, "b8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("unexpected moves: got=%v", moves)
	}

	state, err = gs.UndoMove(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Board.FEN != chess.StandardFEN {
		t.Errorf("unexpected FEN after undo: got=%s", state.Board.FEN)
	}
	if _, err := gs.UndoMove(id); !errors.Is(err, model.ErrNothingToUndo) {
		t.Errorf("unexpected error: got=%v want=%v", err, model.ErrNothingToUndo)
	}

	if err := gm.CreateGame(id, chess.CreateStandardBoard()); !errors.Is(err, ErrGameExists) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameExists)
	}
	if err := gs.DeleteGame(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gm.Size() != 0 {
		t.Errorf("unexpected game count: got=%d want=0", gm.Size())
	}
}
