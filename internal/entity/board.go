package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	BoardSize = 15
	WinLength = 5
)

var ErrBoardNotSquare = errors.New("board is not square")

// Board is a square grid of cells indexed by (row, col).
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) *Board {
	if size < 0 {
		size = 0
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// At returns the cell at (row, col), or Empty when the position is off the board.
func (that *Board) At(row, col int) Cell {
	if !that.InBounds(row, col) {
		return Empty
	}

	return that.cells[that.index(row, col)]
}

// Set writes value at (row, col). It panics when the position is off the board,
// callers validate coordinates first.
func (that *Board) Set(row, col int, value Cell) {
	if !that.InBounds(row, col) {
		panic(fmt.Sprintf("board: position (%d, %d) is out of bounds for size %d", row, col, that.size))
	}

	that.cells[that.index(row, col)] = value
}

func (that *Board) CountEmpty() int {
	count := 0
	for _, cell := range that.cells {
		if cell == Empty {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.CountEmpty() == 0
}

func (that *Board) Clone() *Board {
	clone := &Board{
		size:  that.size,
		cells: make([]Cell, len(that.cells)),
	}
	copy(clone.cells, that.cells)

	return clone
}

// Rows returns a copy of the grid as a slice of rows.
func (that *Board) Rows() [][]Cell {
	rows := make([][]Cell, that.size)
	for row := range rows {
		rows[row] = make([]Cell, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board := NewBoard(len(rows))
	for row, cells := range rows {
		if len(cells) != board.size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardNotSquare, row, len(cells), board.size)
		}

		copy(board.cells[row*board.size:], cells)
	}

	*that = *board

	return nil
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}
