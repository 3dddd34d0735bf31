package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const StandardFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid fen")

var standardBackRank = [NumTilesPerRow]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// ParseFEN builds a board from a six-field position string. First-move flags
// are derived from the castling field and from the pieces' home squares. The
// move clocks are validated but not kept.
func ParseFEN(fen string) (*Board, error) {
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return nil, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != NumTilesPerRow {
		return nil, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}

	var moveMaker Alliance
	switch segments[1] {
	case "w":
		moveMaker = White
	case "b":
		moveMaker = Black
	default:
		return nil, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	rights, err := parseCastleRights(segments[2])
	if err != nil {
		return nil, err
	}

	bd := NewBuilder().SetMoveMaker(moveMaker)
	kings := map[Alliance]int{}
	for r, fenRow := range rows {
		col := 0
		for _, cell := range fenRow {
			if unicode.IsDigit(cell) {
				skip := int(cell - '0')
				if skip == 0 || col+skip > NumTilesPerRow {
					return nil, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				col += skip
				continue
			}
			if col >= NumTilesPerRow {
				return nil, fmt.Errorf("%w: too many cells in row %d", ErrInvalidFEN, r+1)
			}
			kind, alliance, ok := kindFromSymbol(cell)
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			position := r*NumTilesPerRow + col
			p := NewMovedPiece(kind, alliance, position)
			p.firstMove = isFirstMove(kind, alliance, position, rights)
			if kind == King {
				kings[alliance]++
			}
			bd.SetPiece(p)
			col++
		}
		if col != NumTilesPerRow {
			return nil, fmt.Errorf("%w: missing cells in row %d", ErrInvalidFEN, r+1)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	if segments[3] != "-" {
		target, err := CoordinateAt(segments[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		// White to move means Black just jumped over rank 6, and the
		// other way round over rank 3.
		targetRow := 2
		if moveMaker == Black {
			targetRow = 5
		}
		if row(target) != targetRow {
			return nil, fmt.Errorf("%w: en passant square %s on the wrong rank", ErrInvalidFEN, segments[3])
		}
		// The pawn that just jumped stands one step past the target square.
		jumper := moveMaker.Opposite()
		pawnAt := target - NumTilesPerRow*jumper.OppositeDirection()
		p, ok := bd.config[pawnAt]
		if !ok || p.kind != Pawn || p.alliance != jumper {
			return nil, fmt.Errorf("%w: no pawn to capture en passant on %s", ErrInvalidFEN, segments[3])
		}
		bd.SetEnPassantPawn(p)
	}

	if _, err := strconv.ParseUint(segments[4], 10, 16); err != nil {
		return nil, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	if _, err := strconv.ParseUint(segments[5], 10, 16); err != nil {
		return nil, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}

	return bd.Build(), nil
}

type castleRights struct {
	whiteKingSide, whiteQueenSide, blackKingSide, blackQueenSide bool
}

func parseCastleRights(s string) (castleRights, error) {
	var rights castleRights
	if s == "-" {
		return rights, nil
	}
	if len(s) == 0 || len(s) > 4 {
		return rights, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
	for _, e := range s {
		switch e {
		case 'K':
			rights.whiteKingSide = true
		case 'Q':
			rights.whiteQueenSide = true
		case 'k':
			rights.blackKingSide = true
		case 'q':
			rights.blackQueenSide = true
		default:
			return rights, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}
	return rights, nil
}

func isFirstMove(kind Kind, alliance Alliance, position int, rights castleRights) bool {
	homeRow := 7
	kingSide, queenSide := rights.whiteKingSide, rights.whiteQueenSide
	if alliance == Black {
		homeRow = 0
		kingSide, queenSide = rights.blackKingSide, rights.blackQueenSide
	}
	col := column(position)
	switch kind {
	case Pawn:
		return alliance.IsWhite() && SecondRank[position] || alliance.IsBlack() && SeventhRank[position]
	case King:
		return row(position) == homeRow && col == 4 && (kingSide || queenSide)
	case Rook:
		return row(position) == homeRow && (col == 7 && kingSide || col == 0 && queenSide)
	default:
		return row(position) == homeRow && standardBackRank[col] == kind
	}
}

func kindFromSymbol(r rune) (Kind, Alliance, bool) {
	alliance := White
	if unicode.IsLower(r) {
		alliance = Black
	}
	switch unicode.ToUpper(r) {
	case 'P':
		return Pawn, alliance, true
	case 'N':
		return Knight, alliance, true
	case 'B':
		return Bishop, alliance, true
	case 'R':
		return Rook, alliance, true
	case 'Q':
		return Queen, alliance, true
	case 'K':
		return King, alliance, true
	default:
		return 0, alliance, false
	}
}

// FEN renders the board as a six-field position string. Castling rights are
// read from the first-move flags of kings and rooks on their home squares.
func (b *Board) FEN() string {
	builder := strings.Builder{}
	for r := 0; r < NumTilesPerRow; r++ {
		skip := 0
		for col := 0; col < NumTilesPerRow; col++ {
			p, ok := b.tiles[r*NumTilesPerRow+col].Piece()
			if !ok {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(p.String())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if r < NumTilesPerRow-1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.moveMaker == White {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	rights := ""
	for _, cr := range []struct {
		symbol     string
		king, rook int
		alliance   Alliance
	}{
		{"K", 60, 63, White},
		{"Q", 60, 56, White},
		{"k", 4, 7, Black},
		{"q", 4, 0, Black},
	} {
		if b.unmoved(cr.king, King, cr.alliance) && b.unmoved(cr.rook, Rook, cr.alliance) {
			rights += cr.symbol
		}
	}
	if rights == "" {
		rights = "-"
	}
	_, _ = builder.WriteString(rights)
	_, _ = builder.WriteRune(' ')

	if p, ok := b.EnPassantPawn(); ok {
		_, _ = builder.WriteString(PositionAt(p.position + NumTilesPerRow*p.alliance.OppositeDirection()))
	} else {
		_, _ = builder.WriteRune('-')
	}
	_, _ = builder.WriteString(" 0 1")
	return builder.String()
}

func (b *Board) unmoved(coordinate int, kind Kind, alliance Alliance) bool {
	p, ok := b.tiles[coordinate].Piece()
	return ok && p.kind == kind && p.alliance == alliance && p.firstMove
}
