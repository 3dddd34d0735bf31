package model

import "github.com/benbeisheim/chessboard/internal/chess"

type PieceView struct {
	Type     string `json:"type"`
	Color    string `json:"color"`
	Symbol   string `json:"symbol"`
	Position string `json:"position"`
	HasMoved bool   `json:"hasMoved"`
	Value    int    `json:"value"`
}

type TileView struct {
	Coordinate int        `json:"coordinate"`
	Position   string     `json:"position"`
	Piece      *PieceView `json:"piece"`
}

// BoardState is the board as the presentation layer draws it: tiles from the
// top-left square, or from the bottom-right one when flipped.
type BoardState struct {
	Tiles   []TileView `json:"tiles"`
	FEN     string     `json:"fen"`
	Flipped bool       `json:"flipped"`
}

func NewPieceView(p chess.Piece) PieceView {
	return PieceView{
		Type:     p.Kind().Name(),
		Color:    p.Alliance().String(),
		Symbol:   p.String(),
		Position: chess.PositionAt(p.Position()),
		HasMoved: !p.IsFirstMove(),
		Value:    p.Value(),
	}
}

func NewBoardState(b *chess.Board, flipped bool) *BoardState {
	tiles := make([]TileView, 0, chess.NumTiles)
	for c := 0; c < chess.NumTiles; c++ {
		coordinate := c
		if flipped {
			coordinate = chess.NumTiles - 1 - c
		}
		tile := TileView{
			Coordinate: coordinate,
			Position:   chess.PositionAt(coordinate),
		}
		if p, ok := b.Tile(coordinate).Piece(); ok {
			view := NewPieceView(p)
			tile.Piece = &view
		}
		tiles = append(tiles, tile)
	}
	return &BoardState{
		Tiles:   tiles,
		FEN:     b.FEN(),
		Flipped: flipped,
	}
}
