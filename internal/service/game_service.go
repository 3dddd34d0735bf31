package service

import (
	"fmt"

	"github.com/benbeisheim/chessboard/internal/chess"
	"github.com/benbeisheim/chessboard/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game from the standard position, or from fen when it is
// not empty.
func (gs *GameService) CreateGame(fen string) (string, error) {
	board, err := startingBoard(fen)
	if err != nil {
		return "", err
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, board); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

// Exists reports ErrGameNotFound for unknown ids.
func (gs *GameService) Exists(gameID string) error {
	_, err := gs.gameManager.GetGame(gameID)
	return err
}

func (gs *GameService) GetGameState(gameID string, flipped bool) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.State(flipped), nil
}

func (gs *GameService) LegalMoves(gameID string, from string) ([]model.SimpleMove, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(from)
}

func (gs *GameService) HandleMove(gameID string, move model.SimpleMove) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	if _, err := game.MakeMove(move.From, move.To); err != nil {
		return model.GameState{}, err
	}
	return game.State(false), nil
}

func (gs *GameService) UndoMove(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	if _, err := game.Undo(); err != nil {
		return model.GameState{}, err
	}
	return game.State(false), nil
}

// ResetGame clears the move log of a running game and restarts it from fen,
// or from the standard position.
func (gs *GameService) ResetGame(gameID string, fen string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	board, err := startingBoard(fen)
	if err != nil {
		return model.GameState{}, err
	}

	game.Reset(board)
	return game.State(false), nil
}

func startingBoard(fen string) (*chess.Board, error) {
	if fen == "" {
		return chess.CreateStandardBoard(), nil
	}
	return chess.ParseFEN(fen)
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, observerID string, conn model.Conn, flipped bool) error {
	return gs.gameManager.RegisterConnection(gameID, observerID, conn, flipped)
}

func (gs *GameService) SendToObserver(gameID string, observerID string, v interface{}) error {
	return gs.gameManager.SendToObserver(gameID, observerID, v)
}

func (gs *GameService) UnregisterConnection(gameID string, observerID string) {
	gs.gameManager.UnregisterConnection(gameID, observerID)
}
