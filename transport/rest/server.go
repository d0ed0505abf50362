package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/matryer/way"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	MakeMove(ctx context.Context, row, col int) (entity.MoveResult, entity.Snapshot, error)
	Reset(ctx context.Context) (entity.Snapshot, error)
	Snapshot() entity.Snapshot
}

type Server struct {
	logger *slog.Logger
	game   gameManager

	router *way.Router
}

func New(logger *slog.Logger, game gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		game:   game,
		router: way.NewRouter(),
	}

	server.router.NotFound = http.HandlerFunc(handlers.NotFoundHandler)
	server.router.HandleFunc(http.MethodGet, "/ping", handlers.PingHandler)
	server.router.HandleFunc(http.MethodGet, "/api/game", server.handleGetGame)
	server.router.HandleFunc(http.MethodPost, "/api/game/move", server.handleMove)
	server.router.HandleFunc(http.MethodPost, "/api/game/reset", server.handleReset)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server, it returns once ctx is done and the server is shut down.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}
