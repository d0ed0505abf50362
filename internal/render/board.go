package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	symbolEmpty = "."
	symbolBlack = "X"
	symbolWhite = "O"

	colorBlack = "1"
	colorWhite = "4"
)

// Renderer draws game snapshots as text. Colors are used only when the output
// profile supports them.
type Renderer struct {
	out *termenv.Output
}

func New(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Board draws the grid with column numbers on top and row numbers on the left.
// The last move is shown in reverse video.
func (that *Renderer) Board(snapshot entity.Snapshot) string {
	var sb strings.Builder

	size := snapshot.Board.Size()

	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%2d ", col)
	}
	sb.WriteString("\n")

	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d ", row)

		for col := 0; col < size; col++ {
			last := snapshot.LastMove != nil && snapshot.LastMove.Row == row && snapshot.LastMove.Col == col
			sb.WriteString(" " + that.stone(snapshot.Board.At(row, col), last) + " ")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Renderer) Status(snapshot entity.Snapshot) string {
	switch snapshot.Status.State {
	case entity.StateWon:
		return that.playerName(snapshot.Status.Winner) + " wins"
	case entity.StateDraw:
		return "draw"
	default:
		return that.playerName(snapshot.CurrentPlayer) + " to move"
	}
}

// Print writes the board followed by the status line.
func (that *Renderer) Print(snapshot entity.Snapshot) error {
	if _, err := fmt.Fprintf(that.out, "%s%s\n", that.Board(snapshot), that.Status(snapshot)); err != nil {
		return fmt.Errorf("failed to print board: %w", err)
	}

	return nil
}

func (that *Renderer) stone(cell entity.Cell, highlight bool) string {
	var style termenv.Style

	switch cell {
	case entity.Black:
		style = that.out.String(symbolBlack).Foreground(that.out.Color(colorBlack)).Bold()
	case entity.White:
		style = that.out.String(symbolWhite).Foreground(that.out.Color(colorWhite)).Bold()
	default:
		style = that.out.String(symbolEmpty).Faint()
	}

	if highlight {
		style = style.Reverse()
	}

	return style.String()
}

func (that *Renderer) playerName(player entity.Cell) string {
	switch player {
	case entity.Black:
		return "black (" + symbolBlack + ")"
	case entity.White:
		return "white (" + symbolWhite + ")"
	default:
		return "nobody"
	}
}
