// Package session owns the live action log of one game.
//
// A Tracker is the only writer of the log. Every dispatch validates the new
// entry, binds type-only card references to a concrete copy, appends it, and
// then persists the whole log through a Store. Persistence is best effort:
// a failed save is logged and reported on the Result but the in-memory log
// keeps the entry.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dyluth/fuse/internal/derive"
	"github.com/dyluth/fuse/internal/logging"
	"github.com/dyluth/fuse/internal/resolver"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"go.uber.org/zap"
)

// ErrAlreadyPlayed is returned when playing a card type that already has a
// played copy.
var ErrAlreadyPlayed = errors.New("card type already has a played copy")

// Store persists the whole log.
type Store interface {
	Load(ctx context.Context) ([]gamelog.Entry, error)
	Save(ctx context.Context, entries []gamelog.Entry) error
}

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	HandSize int
	Logger   *zap.Logger
	Now      func() time.Time
}

// Result describes a completed dispatch.
type Result struct {
	Entry   gamelog.Entry // appended entry, or the dropped one for Undo
	View    *derive.View  // views after the dispatch
	SaveErr error         // non-nil if the log could not be persisted
}

// Tracker serialises all mutations of one game's log.
type Tracker struct {
	mu       sync.Mutex
	log      *gamelog.Log
	store    Store
	handSize int
	logger   *zap.Logger
	now      func() time.Time
}

// New loads the stored log and returns a tracker over it.
func New(ctx context.Context, store Store, opts Options) (*Tracker, error) {
	if opts.HandSize == 0 {
		opts.HandSize = deck.DefaultHandSize
	}
	if opts.HandSize < 1 {
		return nil, fmt.Errorf("invalid hand size: %d", opts.HandSize)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load log: %w", err)
	}
	for i, e := range entries {
		if err := e.Validate(opts.HandSize); err != nil {
			return nil, fmt.Errorf("stored entry %d is invalid: %w", i, err)
		}
	}

	return &Tracker{
		log:      gamelog.NewLog(entries...),
		store:    store,
		handSize: opts.HandSize,
		logger:   opts.Logger,
		now:      opts.Now,
	}, nil
}

// HandSize returns the number of hand positions tracked.
func (t *Tracker) HandSize() int {
	return t.handSize
}

// Discard records a discarded card. A type-only reference is bound to the
// lowest copy still in game.
func (t *Tracker) Discard(ctx context.Context, ref deck.CardRef, pos *deck.Position) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	inst, err := resolver.Bind(t.log.Entries(), ref)
	if err != nil {
		return nil, err
	}
	return t.append(ctx, gamelog.Discard{Card: deck.InstanceRef(inst), Position: pos})
}

// Play records a played card. Playing is refused once the type has a played
// copy, since each type can be played at most once.
func (t *Tracker) Play(ctx context.Context, ref deck.CardRef, pos *deck.Position) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.log.Entries()
	for card, s := range derive.CardStatuses(entries) {
		if card.Type() == ref.Type && s == derive.StatusPlayed {
			return nil, fmt.Errorf("%s: %w", ref.Type, ErrAlreadyPlayed)
		}
	}

	inst, err := resolver.Bind(entries, ref)
	if err != nil {
		return nil, err
	}
	return t.append(ctx, gamelog.Play{Card: deck.InstanceRef(inst), Position: pos})
}

// Hint records a clue touching positions.
func (t *Tracker) Hint(ctx context.Context, clue deck.Clue, positions []deck.Position) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.append(ctx, gamelog.Hint{
		Positions: append([]deck.Position(nil), positions...),
		Clue:      clue,
	})
}

// Restore returns a card to play. A type-only reference restores the copy
// of that type removed most recently.
func (t *Tracker) Restore(ctx context.Context, ref deck.CardRef) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.log.Entries()
	inst, specific := ref.Instance()
	if specific {
		if err := resolver.CheckOutOfPlay(entries, inst); err != nil {
			return nil, err
		}
	} else {
		var err error
		inst, err = resolver.ResolveRestoreTarget(entries, ref.Type)
		if err != nil {
			return nil, err
		}
	}
	return t.append(ctx, gamelog.Restore{Card: inst})
}

// Undo drops the newest entry. Returns *gamelog.EmptyLogError when there is
// nothing to undo.
func (t *Tracker) Undo(ctx context.Context) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dropped, err := t.log.DropLast()
	if err != nil {
		return nil, err
	}

	t.logger.Info("entry dropped",
		zap.String("event", logging.EventEntryDropped),
		zap.String("kind", string(dropped.Kind())),
		zap.Int("log_length", t.log.Len()))

	return t.persist(ctx, dropped), nil
}

// Reset clears the log.
func (t *Tracker) Reset(ctx context.Context) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.log.Len()
	t.log = gamelog.NewLog()

	t.logger.Info("log reset",
		zap.String("event", logging.EventLogReset),
		zap.Int("dropped_entries", previous))

	return t.persist(ctx, gamelog.Entry{}), nil
}

// View derives every view from the current log.
func (t *Tracker) View() *derive.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return derive.Build(t.log.Entries(), t.handSize)
}

// Entries returns a snapshot of the log.
func (t *Tracker) Entries() []gamelog.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Entries()
}

// Len returns the number of entries in the log.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Len()
}

// append validates, appends and persists one action. Callers hold t.mu.
func (t *Tracker) append(ctx context.Context, action gamelog.Action) (*Result, error) {
	entry := gamelog.Entry{Action: action, RecordedAtMs: t.now().UnixMilli()}
	if err := entry.Validate(t.handSize); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", action.Kind(), err)
	}

	t.log.Append(entry)

	t.logger.Info("entry appended",
		zap.String("event", logging.EventEntryAppended),
		zap.String("kind", string(entry.Kind())),
		zap.Int("log_length", t.log.Len()))

	return t.persist(ctx, entry), nil
}

// persist saves the current log and builds the result. Callers hold t.mu.
func (t *Tracker) persist(ctx context.Context, entry gamelog.Entry) *Result {
	entries := t.log.Entries()
	res := &Result{
		Entry: entry,
		View:  derive.Build(entries, t.handSize),
	}

	err := t.store.Save(ctx, entries)
	switch {
	case err == nil:
	case gamelog.IsPublishError(err):
		t.logger.Warn("log saved but watchers were not notified",
			zap.String("event", logging.EventPublishFailed),
			zap.Int("log_length", len(entries)),
			zap.Error(err))
		res.SaveErr = err
	default:
		t.logger.Warn("failed to save log",
			zap.String("event", logging.EventSaveFailed),
			zap.Int("log_length", len(entries)),
			zap.Error(err))
		res.SaveErr = err
	}

	return res
}
