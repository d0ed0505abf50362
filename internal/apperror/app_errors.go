package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidRules = errors.New("invalid rules")
)
