package commands

import (
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/internal/scaffold"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore CARD",
	Short: "Return a discarded or played card to the game",
	Long: `Correct the log by returning one card to the game.

With a card type (RED-3) the copy of that type removed most recently is
restored. With a specific copy (RED-3-1) that copy is restored.

Unlike undo, restore keeps every later entry in the log.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recent log entry",
	Args:  cobra.NoArgs,
	RunE:  runUndo,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the log and start a new game",
	Long: `Clear the log and give the game a new id in fuse.yml.

Configuration other than game_id is kept.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(resetCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ref, err := parseCard(args[0])
	if err != nil {
		return err
	}

	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	res, err := g.tracker.Restore(commandContext(cmd), ref)
	if err != nil {
		return commandError(err)
	}

	reportResult(res, "Restored %s\n", describeResult(res))
	return nil
}

func runUndo(cmd *cobra.Command, args []string) error {
	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	res, err := g.tracker.Undo(commandContext(cmd))
	if err != nil {
		return commandError(err)
	}

	reportResult(res, "Removed %s %s\n", res.Entry.Kind(), describeResult(res))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	previous := g.tracker.Len()
	res, err := g.tracker.Reset(commandContext(cmd))
	if err != nil {
		return commandError(err)
	}

	id, err := scaffold.RotateGameID(configPath)
	if err != nil {
		return printer.Error("failed to assign a new game id", err.Error(), nil)
	}

	reportResult(res, "Cleared %d entries, new game %s\n", previous, id)
	return nil
}
