package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func Move() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move board",
		Short: "Print the best move for a board such as XX./O../...",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := entity.ParseBoard(args[0])
			if err != nil {
				return err
			}

			seed, err := cmd.Flags().GetInt64("seed")
			if err != nil {
				return err
			}

			scores, err := cmd.Flags().GetBool("scores")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			searcher := minimax.New(seed)

			if tictactoe.IsTerminal(board) {
				winner := tictactoe.Winner(board)
				if winner == entity.EmptyCell {
					fmt.Fprintln(out, "game over: draw")
				} else {
					fmt.Fprintf(out, "game over: %s wins\n", winner)
				}
				return nil
			}

			action, err := searcher.BestMove(board)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s plays %s\n", tictactoe.CurrentPlayer(board), action)

			if !scores {
				return nil
			}

			scored, err := searcher.Evaluate(board)
			if err != nil {
				return err
			}

			for _, s := range scored {
				fmt.Fprintf(out, "  %s %+d\n", s.Action, s.Value)
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed of the opening randomizer, 0 picks one from the clock")
	cmd.Flags().Bool("scores", false, "Also print the minimax value of every legal move")

	return cmd
}
