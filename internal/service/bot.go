package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type searcher interface {
	BestMove(board entity.Board) (*entity.Action, error)
}

type botService struct {
	searcher searcher
}

func NewBotService(searcher searcher) BotService {
	return &botService{
		searcher: searcher,
	}
}

// MakeTurn - plays the engine's best move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	if tictactoe.CurrentPlayer(game.Board) != game.BotMark {
		return apperror.ErrNotYourTurn
	}

	action, err := that.searcher.BestMove(game.Board)
	if err != nil {
		return fmt.Errorf("bot failed to find a move: %w", err)
	}

	if action == nil {
		return apperror.ErrNoAvailableMoves
	}

	if err = applyTurn(game, action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// applyTurn - plays the action for whoever is to move and closes the game once it is over.
func applyTurn(game *entity.Game, action *entity.Action) error {
	board, err := tictactoe.Result(game.Board, action)
	if err != nil {
		return err //nolint: wrapcheck // callers wrap with context
	}

	game.Board = board
	game.LastMove = action

	if tictactoe.IsTerminal(board) {
		game.Finish(tictactoe.Winner(board))
	}

	return nil
}
