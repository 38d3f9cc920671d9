package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	UtilityXWins = 1
	UtilityOWins = -1
	UtilityDraw  = 0
)

// WinLines lists rows, then columns, then both diagonals. Winner reports the first complete line in this order.
var WinLines = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// CurrentPlayer - returns the mark that moves next. X always opens.
func CurrentPlayer(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) > board.Count(entity.PlayerO) {
		return entity.PlayerO
	}

	return entity.PlayerX
}

// Actions - returns every empty cell in row-major order, or nothing once the game is over.
func Actions(board entity.Board) []entity.Action {
	if IsTerminal(board) {
		return nil
	}

	actions := make([]entity.Action, 0, entity.BoardSize*entity.BoardSize)
	for i, row := range board {
		for j, cell := range row {
			if cell == entity.EmptyCell {
				actions = append(actions, entity.Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// Result - returns the board produced by the current player taking the action.
// The given board is never modified.
func Result(board entity.Board, action *entity.Action) (entity.Board, error) {
	if action == nil {
		return board, apperror.ErrMissingAction
	}

	if err := Validate(board); err != nil {
		return board, err
	}

	if !action.InBounds() {
		return board, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, action)
	}

	if board.Cell(*action) != entity.EmptyCell {
		return board, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	return board.Place(*action, CurrentPlayer(board)), nil
}

// Winner - returns the mark owning a complete line, or EmptyCell.
func Winner(board entity.Board) entity.Mark {
	for _, line := range WinLines {
		a, b, c := board.Cell(line[0]), board.Cell(line[1]), board.Cell(line[2])
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

func IsTerminal(board entity.Board) bool {
	if Winner(board) != entity.EmptyCell {
		return true
	}

	return board.Count(entity.EmptyCell) == 0
}

// Utility - scores the board from X's point of view. Only meaningful on terminal boards.
func Utility(board entity.Board) int {
	switch Winner(board) {
	case entity.PlayerX:
		return UtilityXWins
	case entity.PlayerO:
		return UtilityOWins
	default:
		return UtilityDraw
	}
}

// Validate - checks that every cell holds a known mark.
func Validate(board entity.Board) error {
	for i, row := range board {
		for j, cell := range row {
			if !cell.IsValid() {
				return fmt.Errorf("%w: unknown mark %q at (%d, %d)", apperror.ErrMalformedBoard, cell, i, j)
			}
		}
	}

	return nil
}
