package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

type direction struct {
	row, col int
}

// horizontal, vertical, diagonal, anti-diagonal.
var directions = [...]direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// IsWinningMove reports whether the stone at (row, col) completes a winning line.
// Only lines through the anchor are scanned, so the cost does not depend on how
// full the board is.
//
// Under the default rules a line wins only with exactly WinLength stones; a longer
// line (overline) does not. Each walk goes up to WinLength cells so an overline is
// recognized even when the anchor sits at its end.
func IsWinningMove(board *entity.Board, row, col int, rules entity.Rules) bool {
	player := board.At(row, col)
	if !player.IsPlayer() {
		return false
	}

	for _, dir := range directions {
		count := LineLength(board, row, col, dir.row, dir.col, rules.WinLength)

		if count == rules.WinLength || (rules.AllowOverline && count > rules.WinLength) {
			return true
		}
	}

	return false
}

// LineLength counts the contiguous stones of the anchor's color on the line
// through (row, col) along (dRow, dCol), looking at most limit cells each way.
func LineLength(board *entity.Board, row, col, dRow, dCol, limit int) int {
	player := board.At(row, col)
	if !player.IsPlayer() {
		return 0
	}

	return 1 +
		walk(board, row, col, dRow, dCol, player, limit) +
		walk(board, row, col, -dRow, -dCol, player, limit)
}

func walk(board *entity.Board, row, col, dRow, dCol int, player entity.Cell, limit int) int {
	steps := 0

	for i := 1; i <= limit; i++ {
		r, c := row+dRow*i, col+dCol*i
		if !board.InBounds(r, c) || board.At(r, c) != player {
			break
		}

		steps++
	}

	return steps
}
