package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Manager *usecase.GameManager
}

// New builds a manager over a default 15x15 game.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	return newSuite(t, gomoku.NewDefaultGame())
}

func NewWithRules(t *testing.T, rules entity.Rules) (context.Context, *Suite) {
	t.Helper()

	game, err := gomoku.NewGame(rules)
	if err != nil {
		t.Fatalf("could not create game: %v", err)
	}

	return newSuite(t, game)
}

func newSuite(t *testing.T, game *gomoku.Game) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Manager: usecase.NewGameManager(logger, game),
	}
}

// Play applies moves in order and fails the test on the first rejection.
func (that *Suite) Play(ctx context.Context, moves ...entity.Move) entity.Snapshot {
	that.Helper()

	var snapshot entity.Snapshot
	for _, move := range moves {
		var err error
		if _, snapshot, err = that.Manager.MakeMove(ctx, move.Row, move.Col); err != nil {
			that.Fatalf("move (%d, %d) rejected: %v", move.Row, move.Col, err)
		}
	}

	return snapshot
}
