package model

import (
	"sort"

	"github.com/benbeisheim/chessboard/internal/chess"
)

type SimpleMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CastleRookMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Ply is one logged move as the client renders it.
type Ply struct {
	Piece          PieceView       `json:"piece"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	CapturedPiece  *PieceView      `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Notation       string          `json:"notation"`
}

// Move pairs a white ply with the black reply. Either side is nil when the
// game started with Black to move or Black has not replied yet.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// LogEntry is a move that was made together with the board it was made on.
type LogEntry struct {
	Move  chess.Move
	Board *chess.Board
}

func (e LogEntry) Notation() string {
	return e.Move.String()
}

func (e LogEntry) Ply() Ply {
	ply := Ply{
		Piece:    NewPieceView(e.Move.MovedPiece()),
		From:     chess.PositionAt(e.Move.CurrentCoordinate()),
		To:       chess.PositionAt(e.Move.DestinationCoordinate()),
		Notation: e.Notation(),
	}
	if captured, ok := e.Move.AttackedPiece(); ok {
		view := NewPieceView(captured)
		ply.CapturedPiece = &view
	}
	if rook, destination, ok := e.Move.CastleRook(); ok {
		ply.CastleRookMove = &CastleRookMove{
			From: chess.PositionAt(rook.Position()),
			To:   chess.PositionAt(destination),
		}
	}
	return ply
}

// MoveLog is the linear history of a game. Undo only ever removes the last
// entry.
type MoveLog struct {
	entries []LogEntry
}

func NewMoveLog() *MoveLog {
	return &MoveLog{entries: make([]LogEntry, 0)}
}

func (l *MoveLog) Add(m chess.Move) {
	l.entries = append(l.entries, LogEntry{Move: m, Board: m.Board()})
}

func (l *MoveLog) Size() int {
	return len(l.entries)
}

func (l *MoveLog) Clear() {
	l.entries = l.entries[:0]
}

func (l *MoveLog) RemoveLast() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}
	last := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return last, true
}

func (l *MoveLog) Last() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l *MoveLog) Entries() []LogEntry {
	return append([]LogEntry(nil), l.entries...)
}

func (l *MoveLog) Notations() []string {
	notations := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		notations = append(notations, e.Notation())
	}
	return notations
}

// History groups the log into numbered moves.
func (l *MoveLog) History() []Move {
	history := make([]Move, 0, (len(l.entries)+1)/2)
	for _, e := range l.entries {
		ply := e.Ply()
		if e.Move.MovedPiece().Alliance() == chess.White {
			history = append(history, Move{WhitePly: &ply})
			continue
		}
		if n := len(history); n > 0 && history[n-1].BlackPly == nil {
			history[n-1].BlackPly = &ply
			continue
		}
		history = append(history, Move{BlackPly: &ply})
	}
	return history
}

// TakenPieces returns the pieces of the alliance captured so far, most
// valuable first.
func (l *MoveLog) TakenPieces(a chess.Alliance) []chess.Piece {
	taken := make([]chess.Piece, 0)
	for _, e := range l.entries {
		if captured, ok := e.Move.AttackedPiece(); ok && captured.Alliance() == a {
			taken = append(taken, captured)
		}
	}
	sort.SliceStable(taken, func(i, j int) bool {
		return taken[i].Value() > taken[j].Value()
	})
	return taken
}
