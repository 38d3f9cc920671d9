package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie is stored as the winner of a drawn game.
	PlayerTie Mark = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a session between a human and the engine.
type Game struct {
	ID        string  `json:"id"`
	Board     Board   `json:"board"`
	HumanMark Mark    `json:"human_mark"`
	BotMark   Mark    `json:"bot_mark"`
	Winner    Mark    `json:"winner"`
	Status    string  `json:"status"`
	LastMove  *Action `json:"last_move,omitempty"`
}

func NewGame(id string, humanMark Mark) (*Game, error) {
	if humanMark != PlayerX && humanMark != PlayerO {
		return nil, fmt.Errorf("%w: player mark %q", apperror.ErrInvalidAction, humanMark)
	}

	return &Game{
		ID:        id,
		Board:     NewBoard(),
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		Status:    StatusOngoing,
	}, nil
}

// Finish closes the game. An empty winner means a draw.
func (that *Game) Finish(winner Mark) {
	if winner == EmptyCell {
		winner = PlayerTie
	}

	that.Winner = winner
	that.Status = StatusFinished
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
