package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type EventKind string

const (
	EventMove  EventKind = "move"
	EventReset EventKind = "reset"
)

// Event is emitted after every applied move and every reset.
// Result is the zero value for EventReset.
type Event struct {
	Kind     EventKind
	Result   entity.MoveResult
	Snapshot entity.Snapshot
}

type Listener func(Event)

// Game is the state machine of a single Gomoku game: board, turn and outcome.
// It is not safe for concurrent use; the owner serializes calls.
type Game struct {
	rules entity.Rules

	board         *entity.Board
	currentPlayer entity.Cell
	status        entity.Status
	moveCount     int
	lastMove      *entity.Move

	listeners []Listener
}

func NewGame(rules entity.Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	game := &Game{rules: rules}
	game.init()

	return game, nil
}

// NewDefaultGame creates a 15x15 exactly-five game.
func NewDefaultGame() *Game {
	game := &Game{rules: entity.DefaultRules()}
	game.init()

	return game
}

// ApplyMove places the current player's stone at (row, col).
// A rejected move leaves the game untouched and returns an error wrapping
// apperror.ErrInvalidMove together with the reason.
func (that *Game) ApplyMove(row, col int) (entity.MoveResult, error) {
	move := entity.Move{Row: row, Col: col}

	if err := that.validateMove(row, col); err != nil {
		return that.rejected(move), fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	player := that.currentPlayer
	that.board.Set(row, col, player)
	that.moveCount++
	that.lastMove = &move

	win := IsWinningMove(that.board, row, col, that.rules)
	that.updateGameStatus(player, win)

	result := entity.MoveResult{
		Applied:       true,
		Win:           win,
		Move:          move,
		Player:        player,
		Status:        that.status,
		CurrentPlayer: that.currentPlayer,
	}

	that.notify(Event{Kind: EventMove, Result: result, Snapshot: that.Snapshot()})

	return result, nil
}

// Reset returns the game to its initial state. Listeners stay registered.
func (that *Game) Reset() {
	that.init()

	that.notify(Event{Kind: EventReset, Snapshot: that.Snapshot()})
}

func (that *Game) IsTerminal() bool {
	return that.status.IsTerminal()
}

// Board returns a copy of the grid.
func (that *Game) Board() *entity.Board {
	return that.board.Clone()
}

func (that *Game) CurrentPlayer() entity.Cell {
	return that.currentPlayer
}

func (that *Game) Status() entity.Status {
	return that.status
}

func (that *Game) Rules() entity.Rules {
	return that.rules
}

func (that *Game) MoveCount() int {
	return that.moveCount
}

func (that *Game) Snapshot() entity.Snapshot {
	snapshot := entity.Snapshot{
		Rules:         that.rules,
		Board:         that.board.Clone(),
		CurrentPlayer: that.currentPlayer,
		Status:        that.status,
		MoveCount:     that.moveCount,
	}

	if that.lastMove != nil {
		lastMove := *that.lastMove
		snapshot.LastMove = &lastMove
	}

	return snapshot
}

// OnChange registers a listener called synchronously after each state change.
func (that *Game) OnChange(listener Listener) {
	if listener == nil {
		return
	}

	that.listeners = append(that.listeners, listener)
}

func (that *Game) init() {
	that.board = entity.NewBoard(that.rules.Size)
	that.currentPlayer = entity.Black
	that.status = entity.InProgress()
	that.moveCount = 0
	that.lastMove = nil
}

// validateMove - checks if the move is valid.
func (that *Game) validateMove(row, col int) error {
	if that.status.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if !that.board.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	if that.board.At(row, col) != entity.Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	return nil
}

// updateGameStatus - moves the game to its next state after player's stone is placed.
func (that *Game) updateGameStatus(player entity.Cell, win bool) {
	switch {
	case win:
		that.status = entity.Won(player)
	case that.rules.DrawOnFullBoard && that.moveCount == that.rules.Size*that.rules.Size:
		that.status = entity.Draw()
	default:
		that.currentPlayer = player.Opponent()
	}
}

func (that *Game) rejected(move entity.Move) entity.MoveResult {
	return entity.MoveResult{
		Applied:       false,
		Move:          move,
		Status:        that.status,
		CurrentPlayer: that.currentPlayer,
	}
}

func (that *Game) notify(event Event) {
	for _, listener := range that.listeners {
		listener(event)
	}
}
