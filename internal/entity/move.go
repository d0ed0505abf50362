package entity

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveResult reports the outcome of a move request. When Applied is false the
// game is unchanged and Status/CurrentPlayer describe that unchanged state.
type MoveResult struct {
	Applied       bool   `json:"applied"`
	Win           bool   `json:"win"`
	Move          Move   `json:"move"`
	Player        Cell   `json:"player,omitempty"`
	Status        Status `json:"status"`
	CurrentPlayer Cell   `json:"current_player"`
}

// Snapshot is a detached copy of a game, enough for a view to redraw itself.
type Snapshot struct {
	Rules         Rules  `json:"rules"`
	Board         *Board `json:"board"`
	CurrentPlayer Cell   `json:"current_player"`
	Status        Status `json:"status"`
	MoveCount     int    `json:"move_count"`
	LastMove      *Move  `json:"last_move,omitempty"`
}

func (that Snapshot) IsTerminal() bool {
	return that.Status.IsTerminal()
}
