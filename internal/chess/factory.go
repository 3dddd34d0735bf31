package chess

// CreateMove scans the board's legal moves for one leading from current to
// destination. It returns NullMove when none matches, which must not be
// executed.
func CreateMove(b *Board, current, destination int) Move {
	for _, m := range b.AllLegalMoves() {
		if m.CurrentCoordinate() == current && m.DestinationCoordinate() == destination {
			return m
		}
	}
	return NullMove
}

// CreateMoveFromNotation is CreateMove with algebraic square names.
func CreateMoveFromNotation(b *Board, current, destination string) (Move, error) {
	from, err := CoordinateAt(current)
	if err != nil {
		return NullMove, err
	}
	to, err := CoordinateAt(destination)
	if err != nil {
		return NullMove, err
	}
	return CreateMove(b, from, to), nil
}
