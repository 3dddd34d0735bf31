package chess

import "strings"

// Kind discriminates the six piece variants.
type Kind uint8

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

func (k Kind) Name() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Value is the conventional material value of the kind.
func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 100
	case Knight, Bishop:
		return 300
	case Rook:
		return 500
	case Queen:
		return 900
	case King:
		return 10000
	default:
		return 0
	}
}

// Piece is an immutable value. Two pieces are equal when kind, alliance,
// position and first-move flag all match.
type Piece struct {
	kind      Kind
	alliance  Alliance
	position  int
	firstMove bool
}

// NewPiece returns a piece that has not moved yet.
func NewPiece(kind Kind, alliance Alliance, position int) Piece {
	return Piece{kind: kind, alliance: alliance, position: position, firstMove: true}
}

// NewMovedPiece returns a piece whose first move is behind it.
func NewMovedPiece(kind Kind, alliance Alliance, position int) Piece {
	return Piece{kind: kind, alliance: alliance, position: position}
}

func (p Piece) Kind() Kind {
	return p.kind
}

func (p Piece) Alliance() Alliance {
	return p.alliance
}

func (p Piece) Position() int {
	return p.position
}

func (p Piece) IsFirstMove() bool {
	return p.firstMove
}

func (p Piece) Value() int {
	return p.kind.Value()
}

// MovePiece returns the piece relocated to the move's destination.
func (p Piece) MovePiece(m Move) Piece {
	return NewMovedPiece(p.kind, p.alliance, m.DestinationCoordinate())
}

// CalculateLegalMoves returns the moves the piece may make on b by its own
// movement rule, without regard to the safety of its king.
func (p Piece) CalculateLegalMoves(b *Board) []Move {
	switch p.kind {
	case Pawn:
		return p.pawnMoves(b)
	case Knight:
		return p.jumpMoves(b, knightOffsets)
	case King:
		return p.jumpMoves(b, kingOffsets)
	case Bishop:
		return p.slideMoves(b, bishopVectors)
	case Rook:
		return p.slideMoves(b, rookVectors)
	case Queen:
		return p.slideMoves(b, queenVectors)
	default:
		return nil
	}
}

func (p Piece) String() string {
	if p.alliance == Black {
		return strings.ToLower(p.kind.String())
	}
	return p.kind.String()
}
