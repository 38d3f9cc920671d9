package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGameService keeps games in memory and fails turns with a preset error.
type stubGameService struct {
	games   map[string]*entity.Game
	turnErr error
}

func (that *stubGameService) CreateGame(_ context.Context, humanMark entity.Mark) (*entity.Game, error) {
	game, err := entity.NewGame("g1", humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.games[game.ID] = game

	return game, nil
}

func (that *stubGameService) GetGame(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", repository.ErrGameNotFound)
	}

	return game, nil
}

func (that *stubGameService) DeleteGame(_ context.Context, id string) error {
	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func (that *stubGameService) MakeTurn(_ context.Context, id string, action *entity.Action) (*entity.Game, error) {
	if that.turnErr != nil {
		return nil, that.turnErr
	}

	if action == nil {
		return nil, apperror.ErrMissingAction
	}

	game := that.games[id]
	game.Board = game.Board.Place(*action, game.HumanMark)

	return game, nil
}

func newTestServer(t *testing.T, svc *stubGameService) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := httptest.NewServer(NewRouter(NewHandlers(logger, svc, minimax.New(1))))
	t.Cleanup(server.Close)

	return server
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body)) //nolint: noctx // test helper
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestPing(t *testing.T) {
	server := newTestServer(t, &stubGameService{})

	resp, err := http.Get(server.URL + "/ping") //nolint: noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestGameHandlers(t *testing.T) {
	t.Run("Create and fetch a game", func(t *testing.T) {
		svc := &stubGameService{games: map[string]*entity.Game{}}
		server := newTestServer(t, svc)

		// When: creating a game as X
		resp := post(t, server.URL+"/api/v1/games", `{"mark":"X"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created entity.Game
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, entity.PlayerX, created.HumanMark)

		// Then: the game can be fetched by id
		getResp, err := http.Get(server.URL + "/api/v1/games/" + created.ID) //nolint: noctx // test request
		require.NoError(t, err)
		defer getResp.Body.Close()

		assert.Equal(t, http.StatusOK, getResp.StatusCode)
	})

	t.Run("Unknown mark is a bad request", func(t *testing.T) {
		server := newTestServer(t, &stubGameService{games: map[string]*entity.Game{}})

		resp := post(t, server.URL+"/api/v1/games", `{"mark":"Z"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown game", func(t *testing.T) {
		server := newTestServer(t, &stubGameService{games: map[string]*entity.Game{}})

		resp, err := http.Get(server.URL + "/api/v1/games/missing") //nolint: noctx // test request
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Delete a game", func(t *testing.T) {
		svc := &stubGameService{games: map[string]*entity.Game{}}
		server := newTestServer(t, svc)
		post(t, server.URL+"/api/v1/games", `{"mark":"X"}`)

		req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/games/g1", nil) //nolint: noctx // test request
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, svc.games)
	})

	t.Run("Turn", func(t *testing.T) {
		svc := &stubGameService{games: map[string]*entity.Game{}}
		server := newTestServer(t, svc)
		post(t, server.URL+"/api/v1/games", `{"mark":"X"}`)

		resp := post(t, server.URL+"/api/v1/games/g1/turn", `{"action":{"row":1,"col":1}}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.PlayerX, svc.games["g1"].Board[1][1])
	})

	t.Run("Turn without action", func(t *testing.T) {
		svc := &stubGameService{games: map[string]*entity.Game{}}
		server := newTestServer(t, svc)

		resp := post(t, server.URL+"/api/v1/games/g1/turn", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Turn errors map to statuses", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
		}{
			{err: apperror.ErrInvalidAction, status: http.StatusBadRequest},
			{err: apperror.ErrGameFinished, status: http.StatusConflict},
			{err: apperror.ErrNotYourTurn, status: http.StatusConflict},
			{err: fmt.Errorf("failed to make turn: %w", repository.ErrGameConflict), status: http.StatusConflict},
			{err: fmt.Errorf("failed to retrieve game: %w", repository.ErrGameNotFound), status: http.StatusNotFound},
			{err: assert.AnError, status: http.StatusInternalServerError},
		}

		for _, tt := range tests {
			svc := &stubGameService{games: map[string]*entity.Game{}, turnErr: tt.err}
			server := newTestServer(t, svc)

			resp := post(t, server.URL+"/api/v1/games/g1/turn", `{"action":{"row":0,"col":0}}`)

			assert.Equal(t, tt.status, resp.StatusCode, tt.err.Error())
		}
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("Finds the winning move", func(t *testing.T) {
		server := newTestServer(t, &stubGameService{})

		// Given: X to move with two in the top row
		body := `{"board":[["X","X",""],["O","O",""],["","",""]]}`

		// When: analyzing the board
		resp := post(t, server.URL+"/api/v1/analyze", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result analyzeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

		// Then: the engine completes the row
		assert.Equal(t, entity.PlayerX, result.Player)
		assert.False(t, result.Terminal)
		assert.Equal(t, &entity.Action{Row: 0, Col: 2}, result.Move)
		assert.Len(t, result.Actions, 5)
	})

	t.Run("Terminal board", func(t *testing.T) {
		server := newTestServer(t, &stubGameService{})

		resp := post(t, server.URL+"/api/v1/analyze", `{"board":[["X","",""],["","X",""],["O","O","X"]]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result analyzeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

		assert.True(t, result.Terminal)
		assert.Equal(t, entity.PlayerX, result.Winner)
		assert.Equal(t, 1, result.Utility)
		assert.Nil(t, result.Move)
		assert.Empty(t, result.Actions)
	})

	t.Run("Malformed board", func(t *testing.T) {
		server := newTestServer(t, &stubGameService{})

		resp := post(t, server.URL+"/api/v1/analyze", `{"board":[["X","",""],["",""]]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
