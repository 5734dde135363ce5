package gamelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LogEvent is published after every successful save.
type LogEvent struct {
	GameID    string `json:"game_id"`
	Length    int    `json:"length"`              // number of entries after the save
	LastKind  Kind   `json:"last_kind,omitempty"` // kind of the newest entry, empty for an empty log
	SavedAtMs int64  `json:"saved_at_ms"`
}

// Client stores one game's log in Redis.
// All keys and channels are namespaced with the game id.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb    *redis.Client
	gameID string
}

// NewClient creates a Redis-backed log store for the specified game.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - gameID: game identifier (must not be empty)
//
// Returns an error if gameID is empty.
func NewClient(redisOpts *redis.Options, gameID string) (*Client, error) {
	if gameID == "" {
		return nil, fmt.Errorf("game id cannot be empty")
	}

	return &Client{
		rdb:    redis.NewClient(redisOpts),
		gameID: gameID,
	}, nil
}

// GameID returns the game this client is scoped to.
func (c *Client) GameID() string {
	return c.gameID
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Load reads the whole log, oldest entry first.
// A game that was never saved has an empty log.
func (c *Client) Load(ctx context.Context) ([]Entry, error) {
	raw, err := c.rdb.LRange(ctx, LogKey(c.gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read log from Redis: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		var r Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log record %d: %w", i, err)
		}
		records = append(records, r)
	}

	entries, err := RecordsToEntries(records)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize log: %w", err)
	}
	return entries, nil
}

// Save replaces the stored log with entries and publishes a LogEvent.
// The replacement runs in a MULTI/EXEC transaction so readers never observe
// a partially written log.
func (c *Client) Save(ctx context.Context, entries []Entry) error {
	records, err := EntriesToRecords(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize log: %w", err)
	}

	items := make([]interface{}, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal log record: %w", err)
		}
		items = append(items, string(data))
	}

	key := LogKey(c.gameID)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) > 0 {
			pipe.RPush(ctx, key, items...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write log to Redis: %w", err)
	}

	event := LogEvent{
		GameID:    c.gameID,
		Length:    len(entries),
		SavedAtMs: time.Now().UnixMilli(),
	}
	if len(entries) > 0 {
		event.LastKind = entries[len(entries)-1].Kind()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal log event: %w", err)
	}
	if err := c.rdb.Publish(ctx, LogEventsChannel(c.gameID), eventJSON).Err(); err != nil {
		return &PublishError{Err: err}
	}

	return nil
}

// PublishError is returned by Save when the log was written but the
// LogEvent could not be published. Watchers miss the update; the stored
// log is complete.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("log saved but event not published: %v", e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// IsPublishError returns true if err is or wraps a *PublishError.
func IsPublishError(err error) bool {
	var target *PublishError
	return errors.As(err, &target)
}

// Subscription represents an active Pub/Sub subscription to log events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *LogEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of log events.
// The channel will be closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *LogEvent {
	return s.events
}

// Errors returns the channel of subscription errors.
// The subscription continues after errors - malformed messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times. Implements io.Closer.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeLogEvents subscribes to save notifications for this game.
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once, so a slow subscriber may miss events; every event carries
// the full log length so a consumer can always reload and catch up.
func (c *Client) SubscribeLogEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, LogEventsChannel(c.gameID))

	// Wait for the subscription to be confirmed so events published right
	// after this call returns are not lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to log events: %w", err)
	}

	eventsChan := make(chan *LogEvent, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event LogEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal log event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
