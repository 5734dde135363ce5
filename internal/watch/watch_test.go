package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/fuse/internal/derive"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the streaming goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setupClient(t *testing.T) *gamelog.Client {
	mr := miniredis.RunT(t)
	client, err := gamelog.NewClient(&redis.Options{Addr: mr.Addr()}, "watch-game")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func discard(c deck.Color, r deck.Rank) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Discard{Card: deck.TypeRef(deck.NewTypeID(c, r))}}
}

func TestStreamLogEvents(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	client := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- StreamLogEvents(ctx, client, deck.DefaultHandSize, OutputFormatDefault, out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Board after 0 entries")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Save(ctx, []gamelog.Entry{discard(deck.Blue, deck.Five)}))

	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "Log changed: length=1 last=discard") &&
			strings.Contains(s, "Discarded: BLUE-5-0")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after cancel")
	}
}

func TestStreamLogEvents_UnknownFormat(t *testing.T) {
	client := setupClient(t)
	err := StreamLogEvents(context.Background(), client, deck.DefaultHandSize, OutputFormat("xml"), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestFormatters(t *testing.T) {
	view := derive.Build([]gamelog.Entry{discard(deck.Red, deck.One)}, deck.DefaultHandSize)
	event := &gamelog.LogEvent{GameID: "g", Length: 1, LastKind: gamelog.KindDiscard, SavedAtMs: time.Now().UnixMilli()}

	t.Run("default formatter prints header and board", func(t *testing.T) {
		var buf bytes.Buffer
		f, err := NewFormatter(OutputFormatDefault, &buf)
		require.NoError(t, err)

		require.NoError(t, f.FormatUpdate(event, view))
		assert.Contains(t, buf.String(), "Log changed: length=1 last=discard")
		assert.Contains(t, buf.String(), "Board after 1 entry")
	})

	t.Run("default formatter names a reset", func(t *testing.T) {
		var buf bytes.Buffer
		f, _ := NewFormatter(OutputFormatDefault, &buf)
		require.NoError(t, f.FormatUpdate(&gamelog.LogEvent{GameID: "g"}, derive.Build(nil, 5)))
		assert.Contains(t, buf.String(), "last=reset")
	})

	t.Run("json formatter writes one line", func(t *testing.T) {
		var buf bytes.Buffer
		f, err := NewFormatter(OutputFormatJSON, &buf)
		require.NoError(t, err)

		require.NoError(t, f.FormatUpdate(event, view))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
		assert.Equal(t, "g", decoded["event"].(map[string]any)["game_id"])
		assert.Equal(t, float64(1), decoded["view"].(map[string]any)["log_length"])
	})

	t.Run("json formatter omits the initial event", func(t *testing.T) {
		var buf bytes.Buffer
		f, _ := NewFormatter(OutputFormatJSON, &buf)
		require.NoError(t, f.FormatUpdate(nil, view))
		assert.NotContains(t, buf.String(), `"event"`)
	})
}
