package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, action *entity.Action) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error

	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
}

type gameService struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService BotService
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, botService BotService) GameService {
	return &gameService{
		logger:     logger.With("component", "game-service"),
		gameRepo:   gameRepo,
		botService: botService,
	}
}

// CreateGame - starts a game against the bot. The bot opens when the human plays O.
func (that *gameService) CreateGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.BotMark == entity.PlayerX {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID, "humanMark", game.HumanMark)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// MakeTurn - plays the human's action and, unless the game ended, the bot's reply.
// The game is changed inside a repository transaction, so concurrent turns on one game cannot overwrite each other.
func (that *gameService) MakeTurn(ctx context.Context, id string, action *entity.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		if err := game.ConfirmOngoingState(); err != nil {
			return err
		}

		if tictactoe.CurrentPlayer(game.Board) != game.HumanMark {
			return apperror.ErrNotYourTurn
		}

		if err := applyTurn(game, action); err != nil {
			return err
		}

		if game.IsFinished() {
			return nil
		}

		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}
