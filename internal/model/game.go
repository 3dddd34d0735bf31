package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessboard/internal/chess"
	"github.com/benbeisheim/chessboard/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrLeavesKingInCheck = errors.New("move leaves the king in check")
	ErrGameOver          = errors.New("game is over")
	ErrNothingToUndo     = errors.New("no move to undo")
	ErrDuplicateObserver = errors.New("observer already connected")
	ErrUnknownObserver   = errors.New("observer not connected")
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

func (s Status) IsOver() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

// Game is one session: the currently displayed board, the move log that led
// to it and the observers watching it.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *chess.Board
	log         *MoveLog
	sound       string
	connections *GameConnections
}

type GameState struct {
	ID              string         `json:"gameId"`
	Board           *BoardState    `json:"boardState"`
	ToMove          string         `json:"toMove"`
	Status          Status         `json:"status"`
	IsCheck         bool           `json:"isCheck"`
	Sound           string         `json:"sound"`
	MoveHistory     []Move         `json:"moveHistory"`
	Notations       []string       `json:"notations"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	EnPassantTarget *string        `json:"enPassantTarget"`
	LastMove        *SimpleMove    `json:"lastMove"`
}

// CapturedPieces lists the taken pieces of each side, most valuable first.
type CapturedPieces struct {
	White []PieceView `json:"white"`
	Black []PieceView `json:"black"`
}

func NewGame(id string, board *chess.Board) *Game {
	return &Game{
		ID:          id,
		board:       board,
		log:         NewMoveLog(),
		connections: NewGameConnections(),
	}
}

func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return statusOf(g.board)
}

func statusOf(b *chess.Board) Status {
	p := b.CurrentPlayer()
	switch {
	case p.IsInCheckmate():
		return StatusCheckmate
	case p.IsInStalemate():
		return StatusStalemate
	case p.IsInCheck():
		return StatusCheck
	default:
		return StatusRunning
	}
}

func (g *Game) State(flipped bool) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state(flipped)
}

func (g *Game) state(flipped bool) GameState {
	status := statusOf(g.board)
	state := GameState{
		ID:          g.ID,
		Board:       NewBoardState(g.board, flipped),
		ToMove:      g.board.MoveMaker().String(),
		Status:      status,
		IsCheck:     status == StatusCheck || status == StatusCheckmate,
		Sound:       g.sound,
		MoveHistory: g.log.History(),
		Notations:   g.log.Notations(),
		CapturedPieces: CapturedPieces{
			White: pieceViews(g.log.TakenPieces(chess.White)),
			Black: pieceViews(g.log.TakenPieces(chess.Black)),
		},
	}
	if p, ok := g.board.EnPassantPawn(); ok {
		target := chess.PositionAt(p.Position() + chess.NumTilesPerRow*p.Alliance().OppositeDirection())
		state.EnPassantTarget = &target
	}
	if last, ok := g.log.Last(); ok {
		state.LastMove = &SimpleMove{
			From: chess.PositionAt(last.Move.CurrentCoordinate()),
			To:   chess.PositionAt(last.Move.DestinationCoordinate()),
		}
	}
	return state
}

func pieceViews(pieces []chess.Piece) []PieceView {
	views := make([]PieceView, 0, len(pieces))
	for _, p := range pieces {
		views = append(views, NewPieceView(p))
	}
	return views
}

// LegalMoves lists the side to move's moves that keep its king safe. An empty
// from lists every such move.
func (g *Game) LegalMoves(from string) ([]SimpleMove, error) {
	origin := -1
	if from != "" {
		c, err := chess.CoordinateAt(from)
		if err != nil {
			return nil, err
		}
		origin = c
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	moves := make([]SimpleMove, 0)
	for _, m := range g.board.CurrentPlayer().SafeMoves() {
		if origin != -1 && m.CurrentCoordinate() != origin {
			continue
		}
		moves = append(moves, SimpleMove{
			From: chess.PositionAt(m.CurrentCoordinate()),
			To:   chess.PositionAt(m.DestinationCoordinate()),
		})
	}
	return moves, nil
}

// MakeMove resolves the squares against the board's legal moves and applies
// the move for the side to move.
func (g *Game) MakeMove(from, to string) (chess.Move, error) {
	g.mu.Lock()
	move, err := g.makeMove(from, to)
	g.mu.Unlock()
	if err != nil {
		return move, err
	}

	g.broadcastState()
	return move, nil
}

func (g *Game) makeMove(from, to string) (chess.Move, error) {
	if statusOf(g.board).IsOver() {
		return chess.NullMove, ErrGameOver
	}
	move, err := chess.CreateMoveFromNotation(g.board, from, to)
	if err != nil {
		return chess.NullMove, err
	}

	transition := g.board.CurrentPlayer().MakeMove(move)
	switch transition.Status() {
	case chess.MoveStatusIllegal:
		return move, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	case chess.MoveStatusLeavesPlayerInCheck:
		return move, fmt.Errorf("%w: %s", ErrLeavesKingInCheck, move)
	}

	g.log.Add(move)
	g.board = transition.Board()
	g.sound = soundOf(move, g.board)
	log.Debugf("game %s: %s played %s", g.ID, move.MovedPiece().Alliance(), move)
	return move, nil
}

func soundOf(move chess.Move, next *chess.Board) string {
	switch {
	case next.CurrentPlayer().IsInCheck():
		return "check"
	case move.IsCastlingMove():
		return "castle"
	case move.IsAttack():
		return "capture"
	default:
		return "move"
	}
}

// Undo takes back the last logged move and restores the board it was made on.
func (g *Game) Undo() (chess.Move, error) {
	g.mu.Lock()
	last, ok := g.log.RemoveLast()
	if ok {
		g.board = last.Board
		g.sound = ""
	}
	g.mu.Unlock()
	if !ok {
		return chess.NullMove, ErrNothingToUndo
	}

	g.broadcastState()
	return last.Move, nil
}

// Reset clears the log and starts over from the given board.
func (g *Game) Reset(board *chess.Board) {
	g.mu.Lock()
	g.log.Clear()
	g.board = board
	g.sound = ""
	g.mu.Unlock()

	g.broadcastState()
}

func (g *Game) MoveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.log.Size()
}

func (g *Game) ObserverCount() int {
	return g.connections.Size()
}

// RegisterConnection adds an observer and sends it the current state.
func (g *Game) RegisterConnection(observerID string, conn Conn, flipped bool) error {
	if !g.connections.add(observerID, conn, flipped) {
		return fmt.Errorf("%w: %s", ErrDuplicateObserver, observerID)
	}
	log.Infof("game %s: observer %s connected", g.ID, observerID)

	if err := g.connections.write(observerID, g.stateMessage(flipped)); err != nil {
		g.connections.remove(observerID)
		return fmt.Errorf("failed to send initial state: %w", err)
	}
	return nil
}

// Send writes v to one observer. Writes to an observer never overlap with the
// game's broadcasts.
func (g *Game) Send(observerID string, v interface{}) error {
	return g.connections.write(observerID, v)
}

func (g *Game) UnregisterConnection(observerID string) {
	g.connections.remove(observerID)
	log.Infof("game %s: observer %s disconnected", g.ID, observerID)
}

func (g *Game) broadcastState() {
	states := map[bool]ws.Message{}
	g.connections.broadcast(func(flipped bool) interface{} {
		if msg, ok := states[flipped]; ok {
			return msg
		}
		msg := g.stateMessage(flipped)
		states[flipped] = msg
		return msg
	})
}

func (g *Game) stateMessage(flipped bool) ws.Message {
	payload, err := json.Marshal(g.State(flipped))
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return ws.NewErrorMessage("failed to marshal state")
	}
	return ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}
}
