package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	ActionConnect = "connect"
	ActionTurn    = "game:turn"
	ActionReset   = "game:reset"
	ActionUpdate  = "game:update"
	ActionError   = "error"

	outboundQueueSize = 32
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSlowConsumer     = errors.New("outbound queue is full")
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Move   *entity.Move       `json:"move,omitempty"`
	Game   *entity.Snapshot   `json:"game,omitempty"`
	Result *entity.MoveResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// connection owns a WebSocket and its outbound queue. Only writePump writes
// to the socket; everyone else enqueues.
type connection struct {
	ws *websocket.Conn

	outbound  chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(ws *websocket.Conn) *connection {
	return &connection{
		ws:       ws,
		outbound: make(chan []byte, outboundQueueSize),
		done:     make(chan struct{}),
	}
}

// send queues a message without blocking. It fails when the connection is
// closed or the peer has fallen outboundQueueSize messages behind.
func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	select {
	case <-that.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case that.outbound <- data:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (that *connection) sendError(action, reason string, game *entity.Snapshot) error {
	return that.send(action, Payload{Error: reason, Game: game})
}

// writePump drains the queue until the connection closes or a write fails.
func (that *connection) writePump() error {
	for {
		select {
		case <-that.done:
			return nil
		case data := <-that.outbound:
			if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to set write deadline: %w", err)
			}

			if err := that.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		}
	}
}

func (that *connection) close() error {
	var err error

	that.closeOnce.Do(func() {
		close(that.done)
		err = that.ws.Close()
	})

	return err
}
