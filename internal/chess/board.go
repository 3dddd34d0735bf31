package chess

import "strings"

// Board is an immutable position. Boards are only produced by a Builder, either
// directly or through Move.Execute.
type Board struct {
	tiles         [NumTiles]Tile
	whitePieces   []Piece
	blackPieces   []Piece
	enPassantPawn Piece
	hasEnPassant  bool
	moveMaker     Alliance

	whitePlayer *Player
	blackPlayer *Player
}

// Builder stages the pieces, the side to move and the en-passant pawn of the
// next board.
type Builder struct {
	config        map[int]Piece
	moveMaker     Alliance
	enPassantPawn *Piece
}

func NewBuilder() *Builder {
	return &Builder{config: make(map[int]Piece, 32)}
}

// SetPiece places p on its own position, replacing any earlier occupant.
func (bd *Builder) SetPiece(p Piece) *Builder {
	bd.config[p.position] = p
	return bd
}

func (bd *Builder) SetMoveMaker(a Alliance) *Builder {
	bd.moveMaker = a
	return bd
}

func (bd *Builder) SetEnPassantPawn(p Piece) *Builder {
	bd.enPassantPawn = &p
	return bd
}

// Build produces the board and computes both players' moves on it.
func (bd *Builder) Build() *Board {
	b := &Board{moveMaker: bd.moveMaker}
	for c := 0; c < NumTiles; c++ {
		if p, ok := bd.config[c]; ok {
			b.tiles[c] = NewTile(c, &p)
			if p.alliance == White {
				b.whitePieces = append(b.whitePieces, p)
			} else {
				b.blackPieces = append(b.blackPieces, p)
			}
			continue
		}
		b.tiles[c] = NewTile(c, nil)
	}
	if bd.enPassantPawn != nil {
		b.enPassantPawn = *bd.enPassantPawn
		b.hasEnPassant = true
	}

	whiteMoves := b.calculateLegalMoves(b.whitePieces)
	blackMoves := b.calculateLegalMoves(b.blackPieces)
	whiteAttacks := b.calculateAttacks(b.whitePieces, whiteMoves)
	blackAttacks := b.calculateAttacks(b.blackPieces, blackMoves)

	b.whitePlayer = newPlayer(b, White, flatten(whiteMoves), flatten(blackMoves), blackAttacks)
	b.blackPlayer = newPlayer(b, Black, flatten(blackMoves), flatten(whiteMoves), whiteAttacks)
	return b
}

// CreateStandardBoard returns the initial chess position with White to move.
func CreateStandardBoard() *Board {
	back := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	bd := NewBuilder()
	for col, kind := range back {
		bd.SetPiece(NewPiece(kind, Black, col))
		bd.SetPiece(NewPiece(Pawn, Black, NumTilesPerRow+col))
		bd.SetPiece(NewPiece(Pawn, White, 6*NumTilesPerRow+col))
		bd.SetPiece(NewPiece(kind, White, 7*NumTilesPerRow+col))
	}
	return bd.SetMoveMaker(White).Build()
}

// calculateLegalMoves returns each piece's moves, indexed like pieces.
func (b *Board) calculateLegalMoves(pieces []Piece) [][]Move {
	moves := make([][]Move, len(pieces))
	for i, p := range pieces {
		moves[i] = p.CalculateLegalMoves(b)
	}
	return moves
}

func (b *Board) calculateAttacks(pieces []Piece, moves [][]Move) [NumTiles]int {
	var attacks [NumTiles]int
	for i, p := range pieces {
		for _, c := range p.attackedSquares(b, moves[i]) {
			attacks[c]++
		}
	}
	return attacks
}

func flatten(moves [][]Move) []Move {
	var n int
	for _, ms := range moves {
		n += len(ms)
	}
	flat := make([]Move, 0, n)
	for _, ms := range moves {
		flat = append(flat, ms...)
	}
	return flat
}

func (b *Board) Tile(coordinate int) Tile {
	return b.tiles[coordinate]
}

func (b *Board) WhitePieces() []Piece {
	return append([]Piece(nil), b.whitePieces...)
}

func (b *Board) BlackPieces() []Piece {
	return append([]Piece(nil), b.blackPieces...)
}

// ActivePieces returns a copy of the pieces of a on the board in coordinate
// order.
func (b *Board) ActivePieces(a Alliance) []Piece {
	return append([]Piece(nil), b.pieces(a)...)
}

func (b *Board) pieces(a Alliance) []Piece {
	if a == White {
		return b.whitePieces
	}
	return b.blackPieces
}

// EnPassantPawn returns the pawn that may be captured en passant on this
// board, if any.
func (b *Board) EnPassantPawn() (Piece, bool) {
	return b.enPassantPawn, b.hasEnPassant
}

func (b *Board) MoveMaker() Alliance {
	return b.moveMaker
}

func (b *Board) WhitePlayer() *Player {
	return b.whitePlayer
}

func (b *Board) BlackPlayer() *Player {
	return b.blackPlayer
}

func (b *Board) Player(a Alliance) *Player {
	if a == White {
		return b.whitePlayer
	}
	return b.blackPlayer
}

func (b *Board) CurrentPlayer() *Player {
	return b.Player(b.moveMaker)
}

// AllLegalMoves returns White's legal moves followed by Black's.
func (b *Board) AllLegalMoves() []Move {
	white, black := b.whitePlayer.legalMoves, b.blackPlayer.legalMoves
	all := make([]Move, 0, len(white)+len(black))
	all = append(all, white...)
	return append(all, black...)
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for c := 0; c < NumTiles; c++ {
		_, _ = builder.WriteString(b.tiles[c].String())
		if (c+1)%NumTilesPerRow == 0 {
			_, _ = builder.WriteRune('\n')
		} else {
			_, _ = builder.WriteString("  ")
		}
	}
	return builder.String()
}
