package chess

// Tile is a single square of the board, either empty or holding one piece.
type Tile struct {
	coordinate int
	piece      Piece
	occupied   bool
}

var emptyTiles = initEmptyTiles()

func initEmptyTiles() [NumTiles]Tile {
	var tiles [NumTiles]Tile
	for c := range tiles {
		tiles[c] = Tile{coordinate: c}
	}
	return tiles
}

// NewTile returns an occupied tile for p, or the shared empty tile when p is nil.
func NewTile(coordinate int, p *Piece) Tile {
	if p == nil {
		return emptyTiles[coordinate]
	}
	return Tile{coordinate: coordinate, piece: *p, occupied: true}
}

func (t Tile) Coordinate() int {
	return t.coordinate
}

func (t Tile) IsOccupied() bool {
	return t.occupied
}

// Piece returns the occupant and whether there is one.
func (t Tile) Piece() (Piece, bool) {
	return t.piece, t.occupied
}

func (t Tile) String() string {
	if !t.occupied {
		return "-"
	}
	return t.piece.String()
}
