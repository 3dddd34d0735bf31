package chess

// Alliance is the side a piece or player belongs to.
type Alliance uint8

const (
	White Alliance = iota
	Black
)

func (a Alliance) String() string {
	switch a {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

// Direction is the coordinate step of a forward pawn move. White moves toward
// index 0 (the eighth rank), Black toward index 63.
func (a Alliance) Direction() int {
	if a == White {
		return -1
	}
	return 1
}

func (a Alliance) OppositeDirection() int {
	return -a.Direction()
}

func (a Alliance) IsWhite() bool {
	return a == White
}

func (a Alliance) IsBlack() bool {
	return a == Black
}

func (a Alliance) Opposite() Alliance {
	if a == White {
		return Black
	}
	return White
}
