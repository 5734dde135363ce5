// Package board renders derived views and the action log for the terminal.
package board

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/fuse/internal/derive"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/fatih/color"
)

// OutputFormat specifies how a view or the log is written.
type OutputFormat string

const (
	// OutputFormatDefault uses aligned, colored tables
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes the whole view as pretty-printed JSON
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatJSONL writes one log entry per line
	OutputFormatJSONL OutputFormat = "jsonl"
)

var (
	colorStyles = map[deck.Color]*color.Color{
		deck.Red:    color.New(color.FgRed, color.Bold),
		deck.Green:  color.New(color.FgGreen, color.Bold),
		deck.Blue:   color.New(color.FgBlue, color.Bold),
		deck.Yellow: color.New(color.FgYellow, color.Bold),
		deck.White:  color.New(color.FgWhite, color.Bold),
	}
	dim = color.New(color.Faint)
)

// paint pads s to width and colors it in the card color c.
// Padding happens before coloring so escape codes do not break alignment.
func paint(c deck.Color, s string, width int) string {
	padded := fmt.Sprintf("%-*s", width, s)
	if style, ok := colorStyles[c]; ok {
		return style.Sprint(padded)
	}
	return padded
}

// FormatBoard writes the per-type board: one row per color, one column per
// rank. Each cell shows remaining/copies, with P when a copy was played and
// X when the type is exhausted. Out-of-play cards are listed below.
func FormatBoard(w io.Writer, v *derive.View) {
	fmt.Fprintf(w, "Board after %d %s:\n\n", v.LogLength, plural(v.LogLength, "entry", "entries"))

	fmt.Fprintf(w, "%-8s", "COLOR")
	for _, r := range deck.Ranks() {
		fmt.Fprintf(w, " %-7s", r.String())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s", "--------")
	for range deck.Ranks() {
		fmt.Fprintf(w, " %-7s", "-------")
	}
	fmt.Fprintln(w)

	summaries := make(map[deck.TypeID]derive.TypeSummary, len(v.Summary))
	for _, s := range v.Summary {
		summaries[s.Type] = s
	}

	for _, c := range deck.Colors() {
		fmt.Fprint(w, paint(c, string(c), 8))
		for _, r := range deck.Ranks() {
			fmt.Fprintf(w, " %s", formatCell(summaries[deck.NewTypeID(c, r)]))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Played:    %s\n", formatCards(v.Statuses, derive.StatusPlayed))
	fmt.Fprintf(w, "Discarded: %s\n", formatCards(v.Statuses, derive.StatusDiscarded))
}

// formatCell renders one board cell, padded to seven columns.
func formatCell(s derive.TypeSummary) string {
	cell := fmt.Sprintf("%d/%d", s.Remaining, s.Copies)
	switch {
	case s.Exhausted:
		cell += " X"
	case s.Played > 0:
		cell += " P"
	}
	padded := fmt.Sprintf("%-7s", cell)
	if s.Exhausted {
		return dim.Sprint(padded)
	}
	return padded
}

// formatCards lists the cards with status want in deck order, or "-".
func formatCards(statuses map[deck.InstanceID]derive.Status, want derive.Status) string {
	var names []string
	for _, inst := range deck.AllInstances() {
		if statuses[inst] == want {
			names = append(names, inst.String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

// FormatHand writes the candidate types for each requested position, or for
// every position when none are given.
func FormatHand(w io.Writer, v *derive.View, positions ...deck.Position) error {
	if len(positions) == 0 {
		positions = deck.Positions(v.HandSize)
	}

	for _, p := range positions {
		if err := p.Validate(v.HandSize); err != nil {
			return err
		}
		candidates := v.Candidates[p]

		fmt.Fprintf(w, "Position %d: %d %s\n", p, len(candidates), plural(len(candidates), "candidate", "candidates"))
		if len(candidates) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}

		byColor := make(map[deck.Color][]string)
		for _, t := range candidates {
			byColor[t.Color] = append(byColor[t.Color], t.Rank.String())
		}
		for _, c := range deck.Colors() {
			ranks, ok := byColor[c]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", paint(c, string(c), 7), strings.Join(ranks, " "))
		}
	}

	return nil
}

// FormatJSON writes the view as pretty-printed JSON.
func FormatJSON(w io.Writer, v *derive.View) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatTimestamp formats Unix timestamp in milliseconds as a relative age
// such as "2m ago". Zero timestamps return "-".
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := time.Since(time.UnixMilli(timestampMs))

	if diff < time.Minute {
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
}
