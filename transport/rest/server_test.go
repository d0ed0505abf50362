package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

func newTestServer(t *testing.T) (context.Context, *suite.Suite, *httptest.Server) {
	t.Helper()

	ctx, st := suite.New(t)
	server := httptest.NewServer(New(st.Logger, st.Manager).Handler())
	t.Cleanup(server.Close)

	return ctx, st, server
}

func postMove(t *testing.T, url, body string) (*http.Response, moveResponse) {
	t.Helper()

	resp, err := http.Post(url+"/api/game/move", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded moveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func TestServer_Ping(t *testing.T) {
	_, _, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_GetGame(t *testing.T) {
	// Given: a game where black played the center
	ctx, st, server := newTestServer(t)
	st.Play(ctx, entity.Move{Row: 7, Col: 7})

	// When: the game is requested
	resp, err := http.Get(server.URL + "/api/game")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snapshot entity.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))

	// Then: the snapshot reflects the move
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.Black, snapshot.Board.At(7, 7))
	assert.Equal(t, entity.White, snapshot.CurrentPlayer)
	assert.Equal(t, entity.InProgress(), snapshot.Status)
	assert.Equal(t, &entity.Move{Row: 7, Col: 7}, snapshot.LastMove)
}

func TestServer_Move(t *testing.T) {
	t.Run("Valid move", func(t *testing.T) {
		_, _, server := newTestServer(t)

		// When: black plays (3, 4)
		resp, decoded := postMove(t, server.URL, `{"row":3,"col":4}`)

		// Then: the move is applied
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decoded.Result.Applied)
		assert.Equal(t, entity.Black, decoded.Result.Player)
		assert.Equal(t, entity.Black, decoded.Game.Board.At(3, 4))
		assert.Empty(t, decoded.Error)
	})

	t.Run("Out of bounds move", func(t *testing.T) {
		_, _, server := newTestServer(t)

		// When: a move off the board is posted
		resp, decoded := postMove(t, server.URL, `{"row":-1,"col":3}`)

		// Then: 422 with the unchanged game
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, decoded.Result.Applied)
		assert.Contains(t, decoded.Error, "out of bounds")
		assert.Equal(t, 0, decoded.Game.MoveCount)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		ctx, st, server := newTestServer(t)
		st.Play(ctx, entity.Move{Row: 7, Col: 7})

		resp, decoded := postMove(t, server.URL, `{"row":7,"col":7}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, decoded.Error, "occupied")
		assert.Equal(t, entity.White, decoded.Game.CurrentPlayer)
	})

	t.Run("Winning move and move after the win", func(t *testing.T) {
		// Given: black has four in a column
		ctx, st, server := newTestServer(t)
		st.Play(ctx,
			entity.Move{Row: 3, Col: 3}, entity.Move{Row: 0, Col: 0},
			entity.Move{Row: 4, Col: 3}, entity.Move{Row: 0, Col: 2},
			entity.Move{Row: 5, Col: 3}, entity.Move{Row: 0, Col: 4},
			entity.Move{Row: 6, Col: 3}, entity.Move{Row: 0, Col: 6},
		)

		// When: black completes five
		resp, decoded := postMove(t, server.URL, `{"row":7,"col":3}`)

		// Then: black wins
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decoded.Result.Win)
		assert.Equal(t, entity.Won(entity.Black), decoded.Game.Status)

		// When: white tries to move afterwards
		resp, decoded = postMove(t, server.URL, `{"row":10,"col":10}`)

		// Then: the game is finished
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, decoded.Error, "finished")
	})

	t.Run("Malformed body", func(t *testing.T) {
		_, _, server := newTestServer(t)

		resp, err := http.Post(server.URL+"/api/game/move", "application/json", strings.NewReader(`{"row":`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing coordinate", func(t *testing.T) {
		_, _, server := newTestServer(t)

		resp, err := http.Post(server.URL+"/api/game/move", "application/json", strings.NewReader(`{"row":1}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Reset(t *testing.T) {
	// Given: a game with moves
	ctx, st, server := newTestServer(t)
	st.Play(ctx, entity.Move{Row: 7, Col: 7}, entity.Move{Row: 8, Col: 8})

	// When: the game is reset
	resp, err := http.Post(server.URL+"/api/game/reset", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var snapshot entity.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))

	// Then: the board is empty and black moves first
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, snapshot.MoveCount)
	assert.Equal(t, entity.BoardSize*entity.BoardSize, snapshot.Board.CountEmpty())
	assert.Equal(t, entity.Black, snapshot.CurrentPlayer)
	assert.Equal(t, 0, st.Manager.Snapshot().MoveCount)
}

func TestServer_UnknownRoute(t *testing.T) {
	_, _, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
