package commands

import (
	"strings"

	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:   "hint CLUE POSITION...",
	Short: "Record a hint",
	Long: `Record a hint given to this hand.

CLUE is a color (RED, GREEN, BLUE, YELLOW, WHITE) or a rank (1-5).
POSITION lists every hand position the hint touched; all other positions
are known not to match the clue.

Examples:
  fuse hint red 0 3
  fuse hint 5 4`,
	Args: cobra.MinimumNArgs(2),
	RunE: runHint,
}

func init() {
	rootCmd.AddCommand(hintCmd)
}

func runHint(cmd *cobra.Command, args []string) error {
	clue, err := deck.ParseClue(strings.ToUpper(args[0]))
	if err != nil {
		return printer.Error(
			"invalid clue",
			err.Error(),
			[]string{"A clue is a color (RED, GREEN, BLUE, YELLOW, WHITE) or a rank (1-5)"},
		)
	}

	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	positions := make([]deck.Position, 0, len(args)-1)
	for _, arg := range args[1:] {
		p, err := deck.ParsePosition(arg, g.cfg.HandSize)
		if err != nil {
			return printer.Error("invalid position", err.Error(), nil)
		}
		positions = append(positions, p)
	}

	res, err := g.tracker.Hint(commandContext(cmd), clue, positions)
	if err != nil {
		return commandError(err)
	}

	reportResult(res, "Recorded hint %s\n", describeResult(res))
	return nil
}
