package chess

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	NumTiles       = 64
	NumTilesPerRow = 8
)

var (
	// ErrInvalidCoordinate is returned when a square name cannot be resolved.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	FirstColumn   = initColumn(0)
	SecondColumn  = initColumn(1)
	SeventhColumn = initColumn(6)
	EighthColumn  = initColumn(7)

	// Rows count from the top of the board as the renderer draws it, so the
	// first row holds the eighth rank.
	FirstRow   = initRow(0)
	SecondRow  = initRow(1)
	SeventhRow = initRow(6)
	EighthRow  = initRow(7)

	EighthRank  = FirstRow
	SeventhRank = SecondRow
	SecondRank  = SeventhRow
	FirstRank   = EighthRow

	algebraicNotation = initAlgebraicNotation()
	positionToCoord   = initPositionToCoordinate()
)

func initColumn(column int) [NumTiles]bool {
	var col [NumTiles]bool
	for c := column; c < NumTiles; c += NumTilesPerRow {
		col[c] = true
	}
	return col
}

func initRow(row int) [NumTiles]bool {
	var r [NumTiles]bool
	for c := row * NumTilesPerRow; c < (row+1)*NumTilesPerRow; c++ {
		r[c] = true
	}
	return r
}

func initAlgebraicNotation() [NumTiles]string {
	var names [NumTiles]string
	for c := 0; c < NumTiles; c++ {
		names[c] = fmt.Sprintf("%c%d", 'a'+c%NumTilesPerRow, NumTilesPerRow-c/NumTilesPerRow)
	}
	return names
}

func initPositionToCoordinate() map[string]int {
	m := make(map[string]int, NumTiles)
	for c, name := range algebraicNotation {
		m[name] = c
	}
	return m
}

func IsValidTileCoordinate(coordinate int) bool {
	return coordinate >= 0 && coordinate < NumTiles
}

// PositionAt returns the algebraic name of a coordinate, e.g. 52 -> "e2".
func PositionAt(coordinate int) string {
	if !IsValidTileCoordinate(coordinate) {
		return ""
	}
	return algebraicNotation[coordinate]
}

// CoordinateAt resolves an algebraic square name to its coordinate.
func CoordinateAt(position string) (int, error) {
	c, ok := positionToCoord[position]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrInvalidCoordinate, position)
	}
	return c, nil
}

func row(coordinate int) int {
	return coordinate / NumTilesPerRow
}

func column(coordinate int) int {
	return coordinate % NumTilesPerRow
}

// sideBySide reports whether two squares are horizontal neighbours.
func sideBySide(a, b int) bool {
	return row(a) == row(b) && abs(column(a)-column(b)) == 1
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
