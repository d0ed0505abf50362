package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
	"github.com/rocketscienceinc/gomoku-backend/transport/terminal"
	"github.com/rocketscienceinc/gomoku-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	game, err := gomoku.NewGame(conf.Rules.GameRules())
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, game)

	if conf.Mode == config.ModeTerminal {
		return runTerminal(ctx, logger, conf, gameManager)
	}

	return runWeb(ctx, logger, conf, gameManager)
}

func runWeb(ctx context.Context, logger *slog.Logger, conf *config.Config, gameManager *usecase.GameManager) error {
	log := logger.With("component", "app")

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager)
		httpErrCh <- restServer.Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		wsErrCh <- wsServer.Start(ctx, conf.SocketPort)
	}()

	var err error
	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		if err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return errors.Join(<-httpErrCh, <-wsErrCh)
	}

	return nil
}

func runTerminal(ctx context.Context, logger *slog.Logger, conf *config.Config, gameManager *usecase.GameManager) error {
	var opts []termenv.OutputOption
	if conf.Terminal.Profile == config.ProfileASCII {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	driver := terminal.New(logger, gameManager, os.Stdin, os.Stdout, opts...)
	if err := driver.Run(ctx); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}
