package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Rules are the parameters of a game variant.
type Rules struct {
	Size      int `json:"size"`
	WinLength int `json:"win_length"`

	// AllowOverline counts lines longer than WinLength as wins (freestyle).
	AllowOverline bool `json:"allow_overline"`
	// DrawOnFullBoard ends the game in a draw once no empty cell is left.
	DrawOnFullBoard bool `json:"draw_on_full_board"`
}

// DefaultRules are standard Gomoku: 15x15, exactly five in a row.
func DefaultRules() Rules {
	return Rules{
		Size:            BoardSize,
		WinLength:       WinLength,
		AllowOverline:   false,
		DrawOnFullBoard: true,
	}
}

func (that Rules) Validate() error {
	if that.Size < 1 {
		return fmt.Errorf("%w: board size %d", apperror.ErrInvalidRules, that.Size)
	}

	if that.WinLength < 1 || that.WinLength > that.Size {
		return fmt.Errorf("%w: win length %d for board size %d", apperror.ErrInvalidRules, that.WinLength, that.Size)
	}

	return nil
}
