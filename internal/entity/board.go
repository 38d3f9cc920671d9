package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Mark is the symbol a player puts into a cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const BoardSize = 3

// IsValid reports whether the mark is one a board cell may hold.
func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO || that == EmptyCell
}

// Opponent returns the other player's mark. The empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Action identifies a cell by row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a 3x3 grid. It is a value type: copies never share cells.
type Board [BoardSize][BoardSize]Mark

// NewBoard returns the starting position with every cell empty.
func NewBoard() Board {
	return Board{}
}

func (that Board) Equal(other Board) bool {
	return that == other
}

func (that Board) IsEmpty() bool {
	return that.Equal(NewBoard())
}

func (that Board) Cell(action Action) Mark {
	return that[action.Row][action.Col]
}

// Place returns a copy of the board with the mark written at the action's cell.
func (that Board) Place(action Action, mark Mark) Board {
	next := that
	next[action.Row][action.Col] = mark

	return next
}

// Count returns how many cells hold the mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

// Rows returns the board as nested slices, the shape used on the wire.
func (that Board) Rows() [][]Mark {
	rows := make([][]Mark, BoardSize)
	for i := range that {
		rows[i] = append([]Mark(nil), that[i][:]...)
	}

	return rows
}

// String renders the board in the format accepted by ParseBoard, e.g. "XO./.X./..O".
func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}

// FromRows builds a board from nested slices and checks shape and marks.
func FromRows(rows [][]Mark) (Board, error) {
	var board Board

	if len(rows) != BoardSize {
		return board, fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrMalformedBoard, BoardSize, len(rows))
	}

	for i, row := range rows {
		if len(row) != BoardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", apperror.ErrMalformedBoard, i, len(row))
		}

		for j, cell := range row {
			if !cell.IsValid() {
				return board, fmt.Errorf("%w: unknown mark %q at (%d, %d)", apperror.ErrMalformedBoard, cell, i, j)
			}
			board[i][j] = cell
		}
	}

	return board, nil
}

// ParseBoard reads nine cells written as X, O or one of ".", "_", "-" for empty.
// Slashes and spaces between cells are ignored.
func ParseBoard(s string) (Board, error) {
	var board Board

	cells := make([]Mark, 0, BoardSize*BoardSize)
	for _, r := range strings.ToUpper(s) {
		switch r {
		case '/', ' ':
			continue
		case 'X':
			cells = append(cells, PlayerX)
		case 'O':
			cells = append(cells, PlayerO)
		case '.', '_', '-':
			cells = append(cells, EmptyCell)
		default:
			return board, fmt.Errorf("%w: unexpected character %q", apperror.ErrMalformedBoard, r)
		}
	}

	if len(cells) != BoardSize*BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrMalformedBoard, BoardSize*BoardSize, len(cells))
	}

	for i, cell := range cells {
		board[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}
