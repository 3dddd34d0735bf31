package chess

var (
	knightOffsets = []int{-17, -15, -10, -6, 6, 10, 15, 17}
	kingOffsets   = []int{-9, -8, -7, -1, 1, 7, 8, 9}

	bishopVectors = []int{-9, -7, 7, 9}
	rookVectors   = []int{-8, -1, 1, 8}
	queenVectors  = []int{-9, -8, -7, -1, 1, 7, 8, 9}

	pawnOffsets = []int{8, 16, 7, 9}
)

// Offsets that would wrap across the A or H file when added to a coordinate
// on that file, keyed by piece kind.
var (
	knightFirstColumnExclusions   = offsetSet(-17, -10, 6, 15)
	knightSecondColumnExclusions  = offsetSet(-10, 6)
	knightSeventhColumnExclusions = offsetSet(-6, 10)
	knightEighthColumnExclusions  = offsetSet(-15, -6, 10, 17)

	kingFirstColumnExclusions  = offsetSet(-9, -1, 7)
	kingEighthColumnExclusions = offsetSet(-7, 1, 9)

	slideFirstColumnExclusions  = offsetSet(-9, -1, 7)
	slideEighthColumnExclusions = offsetSet(-7, 1, 9)
)

func offsetSet(offsets ...int) map[int]bool {
	s := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		s[o] = true
	}
	return s
}

func (p Piece) isColumnExclusion(current, offset int) bool {
	switch p.kind {
	case Knight:
		return FirstColumn[current] && knightFirstColumnExclusions[offset] ||
			SecondColumn[current] && knightSecondColumnExclusions[offset] ||
			SeventhColumn[current] && knightSeventhColumnExclusions[offset] ||
			EighthColumn[current] && knightEighthColumnExclusions[offset]
	case King:
		return FirstColumn[current] && kingFirstColumnExclusions[offset] ||
			EighthColumn[current] && kingEighthColumnExclusions[offset]
	default:
		return FirstColumn[current] && slideFirstColumnExclusions[offset] ||
			EighthColumn[current] && slideEighthColumnExclusions[offset]
	}
}

// destinationMove classifies a candidate destination: nil when a friendly
// piece stands there, an attack when an enemy does, a quiet move otherwise.
func (p Piece) destinationMove(b *Board, destination int) (Move, bool) {
	occupant, occupied := b.Tile(destination).Piece()
	if !occupied {
		return newMove(MoveKindMajor, b, p, destination), true
	}
	if occupant.alliance == p.alliance {
		return Move{}, false
	}
	return newAttackMove(MoveKindMajorAttack, b, p, destination, occupant), true
}

func (p Piece) jumpMoves(b *Board, offsets []int) []Move {
	var moves []Move
	for _, offset := range offsets {
		destination := p.position + offset
		if !IsValidTileCoordinate(destination) || p.isColumnExclusion(p.position, offset) {
			continue
		}
		if m, ok := p.destinationMove(b, destination); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (p Piece) slideMoves(b *Board, vectors []int) []Move {
	var moves []Move
	for _, vector := range vectors {
		current := p.position
		for {
			if p.isColumnExclusion(current, vector) {
				break
			}
			current += vector
			if !IsValidTileCoordinate(current) {
				break
			}
			m, ok := p.destinationMove(b, current)
			if ok {
				moves = append(moves, m)
			}
			if b.Tile(current).IsOccupied() {
				break
			}
		}
	}
	return moves
}

func (p Piece) pawnMoves(b *Board) []Move {
	var moves []Move
	for _, offset := range pawnOffsets {
		destination := p.position + offset*p.alliance.Direction()
		if !IsValidTileCoordinate(destination) {
			continue
		}

		switch offset {
		case 8:
			if !b.Tile(destination).IsOccupied() {
				// A pawn reaching the last rank stays a pawn.
				moves = append(moves, newMove(MoveKindPawn, b, p, destination))
			}
		case 16:
			if !p.firstMove || !p.onHomeRank() {
				continue
			}
			between := p.position + 8*p.alliance.Direction()
			if !b.Tile(between).IsOccupied() && !b.Tile(destination).IsOccupied() {
				moves = append(moves, newMove(MoveKindPawnJump, b, p, destination))
			}
		case 7:
			if EighthColumn[p.position] && p.alliance.IsWhite() || FirstColumn[p.position] && p.alliance.IsBlack() {
				continue
			}
			if m, ok := p.pawnCapture(b, destination, p.position+p.alliance.OppositeDirection()); ok {
				moves = append(moves, m)
			}
		case 9:
			if FirstColumn[p.position] && p.alliance.IsWhite() || EighthColumn[p.position] && p.alliance.IsBlack() {
				continue
			}
			if m, ok := p.pawnCapture(b, destination, p.position-p.alliance.OppositeDirection()); ok {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (p Piece) onHomeRank() bool {
	return SecondRank[p.position] && p.alliance.IsWhite() || SeventhRank[p.position] && p.alliance.IsBlack()
}

// pawnCapture returns the diagonal capture onto destination, or the en-passant
// capture of the vulnerable pawn standing on beside.
func (p Piece) pawnCapture(b *Board, destination, beside int) (Move, bool) {
	if occupant, occupied := b.Tile(destination).Piece(); occupied {
		if occupant.alliance == p.alliance {
			return Move{}, false
		}
		return newAttackMove(MoveKindPawnAttack, b, p, destination, occupant), true
	}
	enPassantPawn, ok := b.EnPassantPawn()
	if !ok || enPassantPawn.alliance == p.alliance {
		return Move{}, false
	}
	if enPassantPawn.position != beside || !sideBySide(p.position, beside) {
		return Move{}, false
	}
	return newAttackMove(MoveKindPawnEnPassant, b, p, destination, enPassantPawn), true
}

// attackedSquares lists the squares the piece controls on b. Pawns control
// their forward diagonals whether or not anything stands there; every other
// piece controls the squares it could move or capture onto.
func (p Piece) attackedSquares(b *Board, moves []Move) []int {
	if p.kind != Pawn {
		squares := make([]int, 0, len(moves))
		for _, m := range moves {
			squares = append(squares, m.destination)
		}
		return squares
	}
	var squares []int
	if !(EighthColumn[p.position] && p.alliance.IsWhite() || FirstColumn[p.position] && p.alliance.IsBlack()) {
		if d := p.position + 7*p.alliance.Direction(); IsValidTileCoordinate(d) {
			squares = append(squares, d)
		}
	}
	if !(FirstColumn[p.position] && p.alliance.IsWhite() || EighthColumn[p.position] && p.alliance.IsBlack()) {
		if d := p.position + 9*p.alliance.Direction(); IsValidTileCoordinate(d) {
			squares = append(squares, d)
		}
	}
	return squares
}
