package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dyluth/fuse/internal/board"
	"github.com/dyluth/fuse/internal/filter"
	"github.com/dyluth/fuse/internal/printer"
	"github.com/dyluth/fuse/internal/timespec"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/spf13/cobra"
)

var (
	logOutputFormat string
	logSince        string
	logUntil        string
	logKinds        []string
	logCard         string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List recorded actions with filtering",
	Long: `List the entries of the action log, oldest first.

Output Formats:
  default - Table with sequence number, kind, age and detail
  jsonl   - Line-delimited JSON, one entry per line

Filters:
  --since  - Entries recorded after this time (duration or RFC3339)
  --until  - Entries recorded before this time
  --kind   - Only these kinds (discard, play, hint, restore); repeatable
  --card   - Card type glob, e.g. "RED-*" or "*-5"

Examples:
  fuse log --since=10m
  fuse log --kind=discard --kind=play --card="*-5"
  fuse log --output=jsonl | jq 'select(.kind=="hint")'`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	logCmd.Flags().StringVar(&logSince, "since", "", "Show entries after time (duration or RFC3339)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "Show entries before time (duration or RFC3339)")
	logCmd.Flags().StringSliceVar(&logKinds, "kind", nil, "Filter by action kind")
	logCmd.Flags().StringVar(&logCard, "card", "", "Filter by card type (glob pattern)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	format := board.OutputFormat(logOutputFormat)
	if format != board.OutputFormatDefault && format != board.OutputFormatJSONL {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", logOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	sinceMs, untilMs, err := timespec.ParseRange(logSince, logUntil, time.Now())
	if err != nil {
		return printer.Error("invalid time filter", err.Error(), []string{"Use a duration like 10m or an RFC3339 time"})
	}

	criteria := &filter.Criteria{
		SinceTimestampMs: sinceMs,
		UntilTimestampMs: untilMs,
		CardGlob:         strings.ToUpper(logCard),
	}
	for _, k := range logKinds {
		kind := gamelog.Kind(strings.ToLower(k))
		if err := kind.Validate(); err != nil {
			return printer.Error("invalid --kind", err.Error(), []string{"Valid kinds: discard, play, hint, restore"})
		}
		criteria.Kinds = append(criteria.Kinds, kind)
	}

	g, err := openGame(commandContext(cmd))
	if err != nil {
		return err
	}
	defer g.Close()

	lines := board.SelectEntries(g.tracker.Entries(), criteria)
	return board.WriteLog(cmd.OutOrStdout(), lines, format)
}
