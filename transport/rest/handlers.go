package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type moveResponse struct {
	Result entity.MoveResult `json:"result"`
	Game   entity.Snapshot   `json:"game"`
	Error  string            `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.Snapshot())
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	result, snapshot, err := that.game.MakeMove(r.Context(), *req.Row, *req.Col)
	if errors.Is(err, apperror.ErrInvalidMove) {
		that.writeJSON(w, http.StatusUnprocessableEntity, moveResponse{Result: result, Game: snapshot, Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to make move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to make move"})
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Result: result, Game: snapshot})
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleReset")

	snapshot, err := that.game.Reset(r.Context())
	if err != nil {
		log.Error("failed to reset game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset game"})
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
