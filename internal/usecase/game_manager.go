package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// GameManager owns the game of the running process and serializes access to it.
// Subscribers are called synchronously while the manager is locked, so they must
// not call back into the manager.
type GameManager struct {
	logger *slog.Logger

	mu   sync.Mutex
	game *gomoku.Game

	nextSubscriberID int
	subscribers      map[int]func(gomoku.Event)
}

func NewGameManager(logger *slog.Logger, game *gomoku.Game) *GameManager {
	manager := &GameManager{
		logger: logger.With("component", "game_manager"),
		game:   game,

		subscribers: make(map[int]func(gomoku.Event)),
	}

	game.OnChange(manager.dispatch)

	return manager
}

func (that *GameManager) MakeMove(ctx context.Context, row, col int) (entity.MoveResult, entity.Snapshot, error) {
	log := that.logger.With("method", "MakeMove", "row", row, "col", col)

	if err := ctx.Err(); err != nil {
		return entity.MoveResult{}, entity.Snapshot{}, fmt.Errorf("failed make move: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	result, err := that.game.ApplyMove(row, col)
	snapshot := that.game.Snapshot()

	if err != nil {
		log.Debug("move rejected", "error", err)
		return result, snapshot, fmt.Errorf("failed make move: %w", err)
	}

	log.Info("move applied", "player", result.Player.String(), "moves", snapshot.MoveCount)

	if result.Status.IsTerminal() {
		log.Info("game finished", "status", result.Status.String())
	}

	return result, snapshot, nil
}

func (that *GameManager) Reset(ctx context.Context) (entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed reset game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()

	that.logger.Info("game reset")

	return that.game.Snapshot(), nil
}

func (that *GameManager) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Snapshot()
}

// Subscribe registers fn for every state change and returns a function that removes it.
func (that *GameManager) Subscribe(fn func(gomoku.Event)) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextSubscriberID
	that.nextSubscriberID++
	that.subscribers[id] = fn

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.subscribers, id)
	}
}

// dispatch runs under that.mu, it is only reachable from calls into the game.
func (that *GameManager) dispatch(event gomoku.Event) {
	for _, fn := range that.subscribers {
		fn(event)
	}
}
