package entity

// Cell is the content of a single board intersection.
// The integer values are part of the JSON representation.
type Cell int

const (
	Empty Cell = iota
	Black      // moves first
	White
)

// Opponent returns the stone of the other player. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (that Cell) IsPlayer() bool {
	return that == Black || that == White
}

func (that Cell) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}
