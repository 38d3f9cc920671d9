package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

func TestGameService_PlayAgainstBot(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := repository.NewGameRepository(st.Storage, time.Minute)
	svc := NewGameService(st.Logger, gameRepo, NewBotService(minimax.New(3)))

	// Given: a stored game where the human plays X
	game, err := svc.CreateGame(ctx, entity.PlayerX)
	require.NoError(t, err)

	// When: the human keeps taking the first free cell until the game ends
	for game.IsOngoing() {
		actions := tictactoe.Actions(game.Board)
		require.NotEmpty(t, actions)

		game, err = svc.MakeTurn(ctx, game.ID, &actions[0])
		require.NoError(t, err)
	}

	// Then: the engine never loses and the stored copy matches
	assert.NotEqual(t, entity.PlayerX, game.Winner)

	stored, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game, stored)

	require.NoError(t, svc.DeleteGame(ctx, game.ID))
}
