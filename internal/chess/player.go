package chess

import "sync"

// MoveStatus is the outcome of a move attempt.
type MoveStatus uint8

const (
	MoveStatusDone MoveStatus = iota
	MoveStatusIllegal
	MoveStatusLeavesPlayerInCheck
)

func (s MoveStatus) IsDone() bool {
	return s == MoveStatusDone
}

func (s MoveStatus) String() string {
	switch s {
	case MoveStatusDone:
		return "done"
	case MoveStatusIllegal:
		return "illegal move"
	case MoveStatusLeavesPlayerInCheck:
		return "leaves player in check"
	default:
		return ""
	}
}

// MoveTransition is the result of Player.MakeMove. Board is the original board
// unless the status is MoveStatusDone.
type MoveTransition struct {
	board  *Board
	move   Move
	status MoveStatus
}

func (t MoveTransition) Board() *Board {
	return t.board
}

func (t MoveTransition) Move() Move {
	return t.move
}

func (t MoveTransition) Status() MoveStatus {
	return t.status
}

// Player is one side's view of a board. It is built by the board and holds
// the side's moves, the opponent's moves and the squares the opponent attacks.
type Player struct {
	board    *Board
	alliance Alliance
	king     Piece
	hasKing  bool

	legalMoves         []Move
	opponentLegalMoves []Move
	opponentAttacks    [NumTiles]int

	safeOnce  sync.Once
	safeMoves []Move
}

func newPlayer(b *Board, a Alliance, legals, opponentLegals []Move, opponentAttacks [NumTiles]int) *Player {
	p := &Player{
		board:              b,
		alliance:           a,
		opponentLegalMoves: opponentLegals,
		opponentAttacks:    opponentAttacks,
	}
	for _, piece := range b.pieces(a) {
		if piece.kind == King {
			p.king, p.hasKing = piece, true
			break
		}
	}
	p.legalMoves = append(legals, p.calculateKingCastles()...)
	return p
}

func (p *Player) Alliance() Alliance {
	return p.alliance
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) Opponent() *Player {
	return p.board.Player(p.alliance.Opposite())
}

func (p *Player) ActivePieces() []Piece {
	return p.board.ActivePieces(p.alliance)
}

// King returns the player's king. Positions without one are not rejected, so
// callers get ok=false instead.
func (p *Player) King() (Piece, bool) {
	return p.king, p.hasKing
}

// LegalMoves returns every move the player's pieces may make by their
// movement rules, castles included. Moves that would expose the king are
// rejected later by MakeMove.
func (p *Player) LegalMoves() []Move {
	return append([]Move(nil), p.legalMoves...)
}

// OpponentLegalMoves returns the opponent's moves on the same board.
func (p *Player) OpponentLegalMoves() []Move {
	return append([]Move(nil), p.opponentLegalMoves...)
}

// SafeMoves returns the legal moves that do not leave the king in check.
func (p *Player) SafeMoves() []Move {
	return append([]Move(nil), p.safe()...)
}

func (p *Player) safe() []Move {
	p.safeOnce.Do(func() {
		for _, m := range p.legalMoves {
			if p.MakeMove(m).Status().IsDone() {
				p.safeMoves = append(p.safeMoves, m)
			}
		}
	})
	return p.safeMoves
}

// IsAttacked reports whether the opponent controls the square.
func (p *Player) IsAttacked(coordinate int) bool {
	return p.opponentAttacks[coordinate] > 0
}

// AttacksOnTile returns the opponent moves landing on the square.
func (p *Player) AttacksOnTile(coordinate int) []Move {
	var attacks []Move
	for _, m := range p.opponentLegalMoves {
		if m.destination == coordinate {
			attacks = append(attacks, m)
		}
	}
	return attacks
}

func (p *Player) IsInCheck() bool {
	return p.hasKing && p.IsAttacked(p.king.position)
}

func (p *Player) IsInCheckmate() bool {
	return p.IsInCheck() && !p.hasEscapeMoves()
}

func (p *Player) IsInStalemate() bool {
	return !p.IsInCheck() && !p.hasEscapeMoves()
}

func (p *Player) hasEscapeMoves() bool {
	return len(p.safe()) > 0
}

func (p *Player) legalMove(m Move) (Move, bool) {
	for _, legal := range p.legalMoves {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return NullMove, false
}

// MakeMove applies m if it is one of the player's legal moves and it does not
// leave the player's king attacked on the resulting board. The move is
// executed on the player's board, whichever board m was generated on. It
// never panics, the null move included.
func (p *Player) MakeMove(m Move) MoveTransition {
	if m.IsNull() {
		return MoveTransition{board: p.board, move: m, status: MoveStatusIllegal}
	}
	legal, ok := p.legalMove(m)
	if !ok {
		return MoveTransition{board: p.board, move: m, status: MoveStatusIllegal}
	}
	next := legal.Execute()
	if next.Player(p.alliance).IsInCheck() {
		return MoveTransition{board: p.board, move: legal, status: MoveStatusLeavesPlayerInCheck}
	}
	return MoveTransition{board: next, move: legal, status: MoveStatusDone}
}

// castleLayout describes one side's castling squares.
type castleLayout struct {
	kingStart int

	kingSideRook    int
	kingSideEmpty   []int
	kingSideSafe    []int
	kingSideKingTo  int
	kingSideRookTo  int
	queenSideRook   int
	queenSideEmpty  []int
	queenSideSafe   []int
	queenSideKingTo int
	queenSideRookTo int
}

var castleLayouts = map[Alliance]castleLayout{
	White: {
		kingStart:       60,
		kingSideRook:    63,
		kingSideEmpty:   []int{61, 62},
		kingSideSafe:    []int{61, 62},
		kingSideKingTo:  62,
		kingSideRookTo:  61,
		queenSideRook:   56,
		queenSideEmpty:  []int{57, 58, 59},
		queenSideSafe:   []int{58, 59},
		queenSideKingTo: 58,
		queenSideRookTo: 59,
	},
	Black: {
		kingStart:       4,
		kingSideRook:    7,
		kingSideEmpty:   []int{5, 6},
		kingSideSafe:    []int{5, 6},
		kingSideKingTo:  6,
		kingSideRookTo:  5,
		queenSideRook:   0,
		queenSideEmpty:  []int{1, 2, 3},
		queenSideSafe:   []int{2, 3},
		queenSideKingTo: 2,
		queenSideRookTo: 3,
	},
}

// calculateKingCastles returns the castling moves open to the player: the
// king is unmoved on its home square and not in check, the squares between it
// and an unmoved rook are empty, and the squares the king crosses are not
// attacked.
func (p *Player) calculateKingCastles() []Move {
	layout := castleLayouts[p.alliance]
	if !p.hasKing || !p.king.firstMove || p.king.position != layout.kingStart || p.IsInCheck() {
		return nil
	}

	var castles []Move
	if rook, ok := p.castleRook(layout.kingSideRook, layout.kingSideEmpty, layout.kingSideSafe); ok {
		castles = append(castles, newCastleMove(MoveKindKingSideCastle, p.board, p.king,
			layout.kingSideKingTo, rook, layout.kingSideRookTo))
	}
	if rook, ok := p.castleRook(layout.queenSideRook, layout.queenSideEmpty, layout.queenSideSafe); ok {
		castles = append(castles, newCastleMove(MoveKindQueenSideCastle, p.board, p.king,
			layout.queenSideKingTo, rook, layout.queenSideRookTo))
	}
	return castles
}

func (p *Player) castleRook(rookTile int, empty, safe []int) (Piece, bool) {
	for _, c := range empty {
		if p.board.Tile(c).IsOccupied() {
			return Piece{}, false
		}
	}
	rook, ok := p.board.Tile(rookTile).Piece()
	if !ok || rook.kind != Rook || rook.alliance != p.alliance || !rook.firstMove {
		return Piece{}, false
	}
	for _, c := range safe {
		if p.IsAttacked(c) {
			return Piece{}, false
		}
	}
	return rook, true
}
