package commands

import (
	"fmt"

	"github.com/dyluth/fuse/internal/board"
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/spf13/cobra"
)

var boardOutputFormat string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show what remains of every card type",
	Long: `Show the board: for every color and rank, how many copies are still in
game out of the total, whether a copy was played (P) and whether the type
is exhausted (X). Played and discarded cards are listed below.

Output Formats:
  default - Colored table
  json    - Every derived view as pretty-printed JSON`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

var handCmd = &cobra.Command{
	Use:   "hand [POSITION...]",
	Short: "Show the card types each hand position can still hold",
	Long: `Show, for each hand position, the card types it can still hold: types
that are not exhausted and that no hint has ruled out for that position.

Without arguments every position is shown.`,
	RunE: runHand,
}

func init() {
	boardCmd.Flags().StringVarP(&boardOutputFormat, "output", "o", "default", "Output format (default or json)")
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(handCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	format := board.OutputFormat(boardOutputFormat)
	if format != board.OutputFormatDefault && format != board.OutputFormatJSON {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", boardOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	view := g.tracker.View()
	if format == board.OutputFormatJSON {
		return board.FormatJSON(cmd.OutOrStdout(), view)
	}
	board.FormatBoard(cmd.OutOrStdout(), view)
	return nil
}

func runHand(cmd *cobra.Command, args []string) error {
	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	positions := make([]deck.Position, 0, len(args))
	for _, arg := range args {
		p, err := deck.ParsePosition(arg, g.cfg.HandSize)
		if err != nil {
			return printer.Error("invalid position", err.Error(), nil)
		}
		positions = append(positions, p)
	}

	return board.FormatHand(cmd.OutOrStdout(), g.tracker.View(), positions...)
}
