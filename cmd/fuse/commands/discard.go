package commands

import (
	"context"

	"github.com/dyluth/fuse/internal/session"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/spf13/cobra"
)

var (
	discardPosition int
	playPosition    int
)

var discardCmd = &cobra.Command{
	Use:   "discard CARD",
	Short: "Record a discarded card",
	Long: `Record a card that was discarded.

CARD is either a card type (RED-3), which uses the lowest copy still in
game, or a specific copy (RED-3-1).

Use --position to say which hand position the card left; the hints known
about that position are cleared because a new card takes its place.

Examples:
  fuse discard red-1
  fuse discard BLUE-4 --position 2
  fuse discard YELLOW-1-2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoval(cmd, args[0], discardPosition, func(ctx context.Context, t *session.Tracker, ref deck.CardRef, pos *deck.Position) (*session.Result, error) {
			return t.Discard(ctx, ref, pos)
		})
	},
}

var playCmd = &cobra.Command{
	Use:   "play CARD",
	Short: "Record a played card",
	Long: `Record a card that was played.

CARD has the same form as for discard. A card type can be played only
once; playing it again is refused.

Examples:
  fuse play GREEN-1 --position 0
  fuse play white-2-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemoval(cmd, args[0], playPosition, func(ctx context.Context, t *session.Tracker, ref deck.CardRef, pos *deck.Position) (*session.Result, error) {
			return t.Play(ctx, ref, pos)
		})
	},
}

func init() {
	discardCmd.Flags().IntVarP(&discardPosition, "position", "p", -1, "Hand position the card left")
	playCmd.Flags().IntVarP(&playPosition, "position", "p", -1, "Hand position the card left")
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(playCmd)
}

type removalFunc func(ctx context.Context, t *session.Tracker, ref deck.CardRef, pos *deck.Position) (*session.Result, error)

func runRemoval(cmd *cobra.Command, arg string, position int, remove removalFunc) error {
	ref, err := parseCard(arg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	g, err := openGame(ctx)
	if err != nil {
		return err
	}
	defer g.Close()

	var pos *deck.Position
	if position >= 0 {
		pos = gamelog.At(deck.Position(position))
	}

	res, err := remove(ctx, g.tracker, ref, pos)
	if err != nil {
		return commandError(err)
	}

	reportResult(res, "Recorded %s %s\n", res.Entry.Kind(), describeResult(res))
	return nil
}
