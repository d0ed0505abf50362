package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

func (that *Server) handleConnect(_ context.Context, conn *connection, msg *Message) error {
	snapshot := that.game.Snapshot()

	return conn.send(msg.Action, Payload{Game: &snapshot})
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleTurn")

	var req Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return conn.sendError(msg.Action, "invalid payload", nil)
		}
	}

	if req.Move == nil {
		return conn.sendError(msg.Action, "move is required", nil)
	}

	result, snapshot, err := that.game.MakeMove(ctx, req.Move.Row, req.Move.Col)
	if errors.Is(err, apperror.ErrInvalidMove) {
		return conn.send(msg.Action, Payload{Error: err.Error(), Result: &result, Game: &snapshot})
	}

	if err != nil {
		log.Error("failed to make move", "error", err)
		return conn.sendError(msg.Action, "failed to make move", nil)
	}

	// the update itself reaches every view, this one included, through broadcast
	return nil
}

func (that *Server) handleReset(ctx context.Context, conn *connection, msg *Message) error {
	if _, err := that.game.Reset(ctx); err != nil {
		that.logger.Error("failed to reset game", "error", err)

		if sendErr := conn.sendError(msg.Action, "failed to reset game", nil); sendErr != nil {
			return fmt.Errorf("failed to reply: %w", sendErr)
		}
	}

	return nil
}
