// Package minimax picks optimal tic-tac-toe moves by searching the whole remaining game tree.
//
// X maximizes the utility of the final board and O minimizes it. The search has no pruning
// and no cache: a 3x3 board is small enough to enumerate on every call.
package minimax

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// ScoredAction is a legal action with the value the game reaches after it under optimal play.
type ScoredAction struct {
	Action entity.Action `json:"action"`
	Value  int           `json:"value"`
}

type Searcher struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New - creates a searcher. A zero seed picks one from the clock.
func New(seed int64) *Searcher {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Searcher{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // the opening move does not need crypto randomness
	}
}

// BestMove - returns the optimal action for the player to move, or nil when the game is over.
func (that *Searcher) BestMove(board entity.Board) (*entity.Action, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("can't search board: %w", err)
	}

	if tictactoe.IsTerminal(board) {
		return nil, nil
	}

	actions := tictactoe.Actions(board)

	// every opening draws under optimal play, so pick one at random instead of searching 9 plies
	if board.IsEmpty() {
		action := actions[that.intn(len(actions))]
		return &action, nil
	}

	maximize := tictactoe.CurrentPlayer(board) == entity.PlayerX
	target := tictactoe.UtilityOWins
	if maximize {
		target = tictactoe.UtilityXWins
	}

	var (
		best      entity.Action
		bestValue int
	)

	for i, action := range actions {
		next := board.Place(action, tictactoe.CurrentPlayer(board))

		v := value(next, !maximize)
		if v == target {
			return &action, nil
		}

		if i == 0 || better(v, bestValue, maximize) {
			best, bestValue = action, v
		}
	}

	return &best, nil
}

// Evaluate - scores every legal action of the board.
func (that *Searcher) Evaluate(board entity.Board) ([]ScoredAction, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("can't evaluate board: %w", err)
	}

	mark := tictactoe.CurrentPlayer(board)
	maximize := mark == entity.PlayerX

	actions := tictactoe.Actions(board)
	scored := make([]ScoredAction, 0, len(actions))
	for _, action := range actions {
		scored = append(scored, ScoredAction{
			Action: action,
			Value:  value(board.Place(action, mark), !maximize),
		})
	}

	return scored, nil
}

func (that *Searcher) intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

// MaxValue - the utility X can force when X is to move.
func MaxValue(board entity.Board) int {
	return value(board, true)
}

// MinValue - the utility O can force when O is to move.
func MinValue(board entity.Board) int {
	return value(board, false)
}

func value(board entity.Board, maximize bool) int {
	if tictactoe.IsTerminal(board) {
		return tictactoe.Utility(board)
	}

	mark := tictactoe.CurrentPlayer(board)

	var best int
	for i, action := range tictactoe.Actions(board) {
		v := value(board.Place(action, mark), !maximize)
		if i == 0 || better(v, best, maximize) {
			best = v
		}
	}

	return best
}

func better(v, best int, maximize bool) bool {
	if maximize {
		return v > best
	}

	return v < best
}
