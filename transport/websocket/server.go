package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	shutdownTimeout = 5 * time.Second
	writeWait       = 5 * time.Second
	maxMessageSize  = 4096
)

type gameManager interface {
	MakeMove(ctx context.Context, row, col int) (entity.MoveResult, entity.Snapshot, error)
	Reset(ctx context.Context) (entity.Snapshot, error)
	Snapshot() entity.Snapshot
	Subscribe(fn func(gomoku.Event)) func()
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger *slog.Logger
	game   gameManager

	upgrader    websocket.Upgrader
	unsubscribe func()

	mu          sync.Mutex
	connections map[*connection]struct{}

	handlers map[string]handlerFunc
}

// New creates a server that pushes every game change to all connected views.
// Close must be called to detach it from the game.
func New(logger *slog.Logger, game gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		connections: make(map[*connection]struct{}),
		handlers:    make(map[string]handlerFunc),
	}

	server.handlers[ActionConnect] = server.handleConnect
	server.handlers[ActionTurn] = server.handleTurn
	server.handlers[ActionReset] = server.handleReset

	server.unsubscribe = game.Subscribe(server.broadcast)

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server, it returns once ctx is done and every connection is closed.
func (that *Server) Start(ctx context.Context, port string) error {
	defer that.Close()

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// Close detaches the server from the game and closes all connections.
func (that *Server) Close() {
	that.unsubscribe()

	that.mu.Lock()
	defer that.mu.Unlock()

	for conn := range that.connections {
		if err := conn.close(); err != nil {
			that.logger.Debug("failed to close connection", "error", err)
		}

		delete(that.connections, conn)
	}
}

// serveWS - upgrades the connection to WebSocket and runs its read loop.
// The write side runs in its own goroutine so a slow peer never holds up the game.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws)
	that.register(conn)
	defer that.drop(conn)

	go func() {
		if pumpErr := conn.writePump(); pumpErr != nil {
			log.Debug("write pump stopped", "error", pumpErr)
		}

		that.drop(conn)
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.ws.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)

			if err = conn.sendError(ActionError, "invalid message", nil); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)

			if err = conn.sendError(message.Action, "unknown action", nil); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

// broadcast runs inside the game manager, it must not call back into it.
func (that *Server) broadcast(event gomoku.Event) {
	payload := Payload{Game: &event.Snapshot}
	if event.Kind == gomoku.EventMove {
		result := event.Result
		payload.Result = &result
	}

	for _, conn := range that.activeConnections() {
		if err := conn.send(ActionUpdate, payload); err != nil {
			that.logger.Warn("dropping connection", "error", err)
			that.drop(conn)
		}
	}
}

func (that *Server) register(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn] = struct{}{}
}

// drop unregisters conn and closes it, it is safe to call more than once.
func (that *Server) drop(conn *connection) {
	that.mu.Lock()
	delete(that.connections, conn)
	that.mu.Unlock()

	if err := conn.close(); err != nil {
		that.logger.Debug("failed to close connection", "error", err)
	}
}

func (that *Server) activeConnections() []*connection {
	that.mu.Lock()
	defer that.mu.Unlock()

	conns := make([]*connection, 0, len(that.connections))
	for conn := range that.connections {
		conns = append(conns, conn)
	}

	return conns
}
