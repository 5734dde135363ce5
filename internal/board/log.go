package board

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/fuse/internal/filter"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// LogLine is one log entry with its position in the full log.
type LogLine struct {
	Seq   int
	Entry gamelog.Entry
}

// SelectEntries numbers entries and keeps those matching criteria.
// A nil criteria keeps every entry.
func SelectEntries(entries []gamelog.Entry, criteria *filter.Criteria) []LogLine {
	lines := make([]LogLine, 0, len(entries))
	for i, e := range entries {
		if criteria != nil && !criteria.Matches(e) {
			continue
		}
		lines = append(lines, LogLine{Seq: i, Entry: e})
	}
	return lines
}

// WriteLog writes log lines in the requested format.
func WriteLog(w io.Writer, lines []LogLine, format OutputFormat) error {
	switch format {
	case OutputFormatDefault:
		FormatLogTable(w, lines)
		return nil
	case OutputFormatJSONL:
		if err := FormatLogJSONL(w, lines); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// FormatLogTable writes log lines as a table with columns SEQ, KIND, AGE and
// DETAIL. Returns the number of lines formatted.
func FormatLogTable(w io.Writer, lines []LogLine) int {
	if len(lines) == 0 {
		fmt.Fprintln(w, "No log entries found")
		return 0
	}

	fmt.Fprintf(w, "%-5s %-8s %-8s %s\n", "SEQ", "KIND", "AGE", "DETAIL")
	fmt.Fprintf(w, "%-5s %-8s %-8s %s\n", "-----", "--------", "--------", "------------------------------")

	for _, l := range lines {
		fmt.Fprintf(w, "%-5d %-8s %-8s %s\n",
			l.Seq,
			l.Entry.Kind(),
			formatTimestamp(l.Entry.RecordedAtMs),
			Describe(l.Entry),
		)
	}

	fmt.Fprintf(w, "\n%d %s\n", len(lines), plural(len(lines), "entry", "entries"))
	return len(lines)
}

// jsonlLine is the JSONL form of a log line: its sequence number followed by
// the stored record fields.
type jsonlLine struct {
	Seq int `json:"seq"`
	gamelog.Record
}

// FormatLogJSONL writes each line as a single JSON object.
func FormatLogJSONL(w io.Writer, lines []LogLine) error {
	for _, l := range lines {
		r, err := gamelog.EntryToRecord(l.Entry)
		if err != nil {
			return err
		}

		data, err := json.Marshal(jsonlLine{Seq: l.Seq, Record: r})
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// Describe renders an entry's action in one line, e.g. "RED-1-0 from 2" or
// "GREEN to 0,3".
func Describe(e gamelog.Entry) string {
	switch a := e.Action.(type) {
	case gamelog.Discard:
		return describeRemoval(a.Card.String(), a.Position)
	case gamelog.Play:
		return describeRemoval(a.Card.String(), a.Position)
	case gamelog.Hint:
		positions := make([]string, len(a.Positions))
		for i, p := range a.Positions {
			positions[i] = fmt.Sprint(int(p))
		}
		return fmt.Sprintf("%s to %s", a.Clue, strings.Join(positions, ","))
	case gamelog.Restore:
		return a.Card.String()
	default:
		return "-"
	}
}

func describeRemoval(card string, pos *deck.Position) string {
	if pos == nil {
		return card
	}
	return fmt.Sprintf("%s from %d", card, int(*pos))
}
