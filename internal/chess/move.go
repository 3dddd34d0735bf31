package chess

import "errors"

// ErrNullMove is the panic value raised when the null move is executed.
var ErrNullMove = errors.New("cannot execute the null move")

// MoveKind discriminates the move variants.
type MoveKind uint8

const (
	MoveKindNull MoveKind = iota
	MoveKindMajor
	MoveKindMajorAttack
	MoveKindPawn
	MoveKindPawnAttack
	MoveKindPawnJump
	MoveKindPawnEnPassant
	MoveKindKingSideCastle
	MoveKindQueenSideCastle
)

func (k MoveKind) String() string {
	switch k {
	case MoveKindNull:
		return "null"
	case MoveKindMajor:
		return "major"
	case MoveKindMajorAttack:
		return "major attack"
	case MoveKindPawn:
		return "pawn"
	case MoveKindPawnAttack:
		return "pawn attack"
	case MoveKindPawnJump:
		return "pawn jump"
	case MoveKindPawnEnPassant:
		return "en passant"
	case MoveKindKingSideCastle:
		return "king side castle"
	case MoveKindQueenSideCastle:
		return "queen side castle"
	default:
		return ""
	}
}

// Move is an immutable description of one transition from its source board.
// Attack variants carry the attacked piece, castles carry the rook and where
// it lands.
type Move struct {
	kind        MoveKind
	board       *Board
	movedPiece  Piece
	destination int
	firstMove   bool

	attackedPiece Piece

	castleRook            Piece
	castleRookDestination int
}

// NullMove is the sentinel returned when no move matches a lookup.
var NullMove = Move{kind: MoveKindNull, destination: -1, castleRookDestination: -1}

func newMove(kind MoveKind, b *Board, p Piece, destination int) Move {
	return Move{
		kind:                  kind,
		board:                 b,
		movedPiece:            p,
		destination:           destination,
		firstMove:             p.firstMove,
		castleRookDestination: -1,
	}
}

func newAttackMove(kind MoveKind, b *Board, p Piece, destination int, attacked Piece) Move {
	m := newMove(kind, b, p, destination)
	m.attackedPiece = attacked
	return m
}

func newCastleMove(kind MoveKind, b *Board, king Piece, destination int, rook Piece, rookDestination int) Move {
	m := newMove(kind, b, king, destination)
	m.castleRook = rook
	m.castleRookDestination = rookDestination
	return m
}

func (m Move) Kind() MoveKind {
	return m.kind
}

func (m Move) Board() *Board {
	return m.board
}

func (m Move) IsNull() bool {
	return m.kind == MoveKindNull
}

// CurrentCoordinate is where the moved piece stands before the move, -1 for
// the null move.
func (m Move) CurrentCoordinate() int {
	if m.IsNull() {
		return -1
	}
	return m.movedPiece.position
}

func (m Move) DestinationCoordinate() int {
	return m.destination
}

func (m Move) MovedPiece() Piece {
	return m.movedPiece
}

// WasFirstMove reports the moved piece's first-move flag at move time.
func (m Move) WasFirstMove() bool {
	return m.firstMove
}

func (m Move) IsAttack() bool {
	switch m.kind {
	case MoveKindMajorAttack, MoveKindPawnAttack, MoveKindPawnEnPassant:
		return true
	default:
		return false
	}
}

func (m Move) IsCastlingMove() bool {
	return m.kind == MoveKindKingSideCastle || m.kind == MoveKindQueenSideCastle
}

// AttackedPiece returns the captured piece of an attack move.
func (m Move) AttackedPiece() (Piece, bool) {
	return m.attackedPiece, m.IsAttack()
}

// CastleRook returns the rook relocated by a castling move and its landing
// square.
func (m Move) CastleRook() (Piece, int, bool) {
	return m.castleRook, m.castleRookDestination, m.IsCastlingMove()
}

// Equal compares moves by value, ignoring the board they were generated on.
func (m Move) Equal(other Move) bool {
	return m.kind == other.kind &&
		m.movedPiece == other.movedPiece &&
		m.destination == other.destination &&
		m.attackedPiece == other.attackedPiece &&
		m.castleRook == other.castleRook &&
		m.castleRookDestination == other.castleRookDestination
}

// Execute builds the board that results from the move. The mover is the moved
// piece's alliance and the opponent moves next. Executing the null move panics
// with ErrNullMove.
func (m Move) Execute() *Board {
	if m.IsNull() || m.board == nil {
		panic(ErrNullMove)
	}
	mover := m.movedPiece.alliance
	builder := NewBuilder()

	for _, p := range m.board.pieces(mover) {
		if p == m.movedPiece {
			continue
		}
		if m.IsCastlingMove() && p == m.castleRook {
			continue
		}
		builder.SetPiece(p)
	}
	for _, p := range m.board.pieces(mover.Opposite()) {
		if m.IsAttack() && p == m.attackedPiece {
			continue
		}
		builder.SetPiece(p)
	}

	moved := m.movedPiece.MovePiece(m)
	builder.SetPiece(moved)
	switch m.kind {
	case MoveKindPawnJump:
		builder.SetEnPassantPawn(moved)
	case MoveKindKingSideCastle, MoveKindQueenSideCastle:
		builder.SetPiece(NewMovedPiece(Rook, m.castleRook.alliance, m.castleRookDestination))
	}
	builder.SetMoveMaker(mover.Opposite())
	return builder.Build()
}

// String renders the move in the notation used by the move log.
func (m Move) String() string {
	switch m.kind {
	case MoveKindNull:
		return "--"
	case MoveKindKingSideCastle:
		return "O-O"
	case MoveKindQueenSideCastle:
		return "O-O-O"
	case MoveKindPawn, MoveKindPawnJump:
		return PositionAt(m.destination)
	case MoveKindPawnAttack, MoveKindPawnEnPassant:
		return PositionAt(m.movedPiece.position)[:1] + "x" + PositionAt(m.destination)
	case MoveKindMajorAttack:
		return m.movedPiece.kind.String() + "x" + PositionAt(m.destination)
	default:
		return m.movedPiece.kind.String() + PositionAt(m.destination)
	}
}

// UCI renders the move as origin and destination squares, e.g. "e2e4".
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return PositionAt(m.CurrentCoordinate()) + PositionAt(m.destination)
}
