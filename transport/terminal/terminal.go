package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
)

const (
	commandReset = "reset"
	commandQuit  = "quit"

	usage = "enter <row> <col>, reset or quit"
)

var moveReasons = []error{apperror.ErrOutOfBounds, apperror.ErrCellOccupied, apperror.ErrGameFinished}

type gameManager interface {
	MakeMove(ctx context.Context, row, col int) (entity.MoveResult, entity.Snapshot, error)
	Reset(ctx context.Context) (entity.Snapshot, error)
	Snapshot() entity.Snapshot
}

// Driver plays a hot-seat game over a line-oriented reader and writer.
type Driver struct {
	logger *slog.Logger
	game   gameManager

	in       io.Reader
	out      io.Writer
	renderer *render.Renderer
}

func New(logger *slog.Logger, game gameManager, in io.Reader, out io.Writer, opts ...termenv.OutputOption) *Driver {
	return &Driver{
		logger: logger.With("component", "terminal"),
		game:   game,

		in:       in,
		out:      out,
		renderer: render.New(out, opts...),
	}
}

// Run draws the board and applies commands until quit, end of input or ctx is done.
func (that *Driver) Run(ctx context.Context) error {
	if err := that.show(that.game.Snapshot()); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			quit, err := that.handleLine(ctx, line)
			if err != nil || quit {
				return err
			}
		}
	}
}

func (that *Driver) handleLine(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 0:
		return false, nil
	case len(fields) == 1 && fields[0] == commandQuit:
		return true, nil
	case len(fields) == 1 && fields[0] == commandReset:
		snapshot, err := that.game.Reset(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to reset game: %w", err)
		}

		return false, that.show(snapshot)
	case len(fields) == 2:
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr != nil || colErr != nil {
			that.logger.Debug("unrecognized input", "line", line)
			return false, that.println(usage)
		}

		return false, that.move(ctx, row, col)
	default:
		that.logger.Debug("unrecognized input", "line", line)
		return false, that.println(usage)
	}
}

func (that *Driver) move(ctx context.Context, row, col int) error {
	_, snapshot, err := that.game.MakeMove(ctx, row, col)
	if errors.Is(err, apperror.ErrInvalidMove) {
		return that.println("rejected: " + rejectReason(err))
	}

	if err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return that.show(snapshot)
}

func (that *Driver) show(snapshot entity.Snapshot) error {
	if err := that.renderer.Print(snapshot); err != nil {
		return err
	}

	switch {
	case snapshot.IsTerminal():
		return that.println("type reset to play again or quit to leave")
	case snapshot.Board.IsFull():
		return that.println("the board is full, type reset to play again or quit to leave")
	default:
		return nil
	}
}

func (that *Driver) println(text string) error {
	if _, err := fmt.Fprintln(that.out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func rejectReason(err error) string {
	for _, reason := range moveReasons {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}

	return apperror.ErrInvalidMove.Error()
}
