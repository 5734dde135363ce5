// Package watch streams board updates while other terminals record actions.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/fuse/internal/board"
	"github.com/dyluth/fuse/internal/derive"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// OutputFormat specifies how updates are written.
type OutputFormat string

const (
	// OutputFormatDefault re-renders the board after every change
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes one JSON object per change
	OutputFormatJSON OutputFormat = "json"
)

// Source is a log store that announces saves.
// *gamelog.Client implements it.
type Source interface {
	Load(ctx context.Context) ([]gamelog.Entry, error)
	SubscribeLogEvents(ctx context.Context) (*gamelog.Subscription, error)
}

// Formatter writes one update. event is nil for the initial render.
type Formatter interface {
	FormatUpdate(event *gamelog.LogEvent, view *derive.View) error
}

// NewFormatter returns the formatter for format.
func NewFormatter(format OutputFormat, w io.Writer) (Formatter, error) {
	switch format {
	case OutputFormatDefault:
		return &defaultFormatter{writer: w}, nil
	case OutputFormatJSON:
		return &jsonFormatter{writer: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// StreamLogEvents renders the current board, then reloads and renders it
// again after every save until ctx is cancelled. Malformed events are
// reported on w and skipped.
func StreamLogEvents(ctx context.Context, src Source, handSize int, format OutputFormat, w io.Writer) error {
	formatter, err := NewFormatter(format, w)
	if err != nil {
		return err
	}

	sub, err := src.SubscribeLogEvents(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	if err := render(ctx, src, handSize, nil, formatter); err != nil {
		return err
	}

	events := sub.Events()
	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := render(ctx, src, handSize, event, formatter); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)
		}
	}
}

func render(ctx context.Context, src Source, handSize int, event *gamelog.LogEvent, f Formatter) error {
	entries, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload log: %w", err)
	}
	return f.FormatUpdate(event, derive.Build(entries, handSize))
}

type defaultFormatter struct {
	writer io.Writer
}

func (f *defaultFormatter) FormatUpdate(event *gamelog.LogEvent, view *derive.View) error {
	if event != nil {
		ts := time.UnixMilli(event.SavedAtMs).Format("15:04:05")
		last := string(event.LastKind)
		if last == "" {
			last = "reset"
		}
		fmt.Fprintf(f.writer, "[%s] 🔄 Log changed: length=%d last=%s\n\n", ts, event.Length, last)
	}
	board.FormatBoard(f.writer, view)
	fmt.Fprintln(f.writer)
	return nil
}

type jsonFormatter struct {
	writer io.Writer
}

type jsonUpdate struct {
	Event *gamelog.LogEvent `json:"event,omitempty"`
	View  *derive.View      `json:"view"`
}

func (f *jsonFormatter) FormatUpdate(event *gamelog.LogEvent, view *derive.View) error {
	data, err := json.Marshal(jsonUpdate{Event: event, View: view})
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	_, err = fmt.Fprintf(f.writer, "%s\n", data)
	return err
}
