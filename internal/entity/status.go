package entity

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

// Status is the outcome of a game. Winner is set only when State is StateWon.
type Status struct {
	State  State `json:"state"`
	Winner Cell  `json:"winner,omitempty"`
}

func InProgress() Status {
	return Status{State: StateInProgress}
}

func Won(player Cell) Status {
	return Status{State: StateWon, Winner: player}
}

func Draw() Status {
	return Status{State: StateDraw}
}

func (that Status) IsTerminal() bool {
	return that.State != StateInProgress
}

func (that Status) IsWon() bool {
	return that.State == StateWon
}

func (that Status) IsDraw() bool {
	return that.State == StateDraw
}

func (that Status) String() string {
	if that.IsWon() {
		return string(that.State) + "(" + that.Winner.String() + ")"
	}

	return string(that.State)
}
