package derive

import (
	"testing"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardStatuses_Initial(t *testing.T) {
	statuses := CardStatuses(nil)
	assert.Len(t, statuses, deck.DeckSize())
	for _, s := range statuses {
		assert.Equal(t, StatusInGame, s)
	}
}

func TestDiscardedAndPlayed_LastWriteWins(t *testing.T) {
	entries := []gamelog.Entry{
		discard(t, "RED-1-0"),
		play(t, "RED-1-0"),
	}

	assert.Empty(t, DiscardedCards(entries))
	assert.Equal(t, map[deck.InstanceID]bool{inst(t, "RED-1-0"): true}, PlayedCards(entries))

	entries = append(entries, discard(t, "RED-1-0"))
	assert.Empty(t, PlayedCards(entries))
	assert.Equal(t, map[deck.InstanceID]bool{inst(t, "RED-1-0"): true}, DiscardedCards(entries))
}

func TestDiscardedAndPlayed_RestoreRemovesFromBoth(t *testing.T) {
	entries := []gamelog.Entry{
		discard(t, "BLUE-2-0"),
		play(t, "BLUE-3-1"),
		restore(t, "BLUE-2-0"),
		restore(t, "BLUE-3-1"),
	}

	assert.Empty(t, DiscardedCards(entries))
	assert.Empty(t, PlayedCards(entries))
}

func TestTypeReferenceBindsLowestFreeIndex(t *testing.T) {
	entries := []gamelog.Entry{
		discard(t, "WHITE-1-0"),
		play(t, "WHITE-1"),
	}
	assert.Equal(t, map[deck.InstanceID]bool{inst(t, "WHITE-1-1"): true}, PlayedCards(entries))

	// once index 0 is back in game the next type reference takes it again
	entries = append(entries, restore(t, "WHITE-1-0"), discard(t, "WHITE-1"))
	assert.Equal(t, map[deck.InstanceID]bool{inst(t, "WHITE-1-0"): true}, DiscardedCards(entries))
}

func TestTypeReferenceWithNoFreeCopyIsIgnored(t *testing.T) {
	entries := []gamelog.Entry{
		play(t, "GREEN-5"),
		discard(t, "GREEN-5"),
	}

	assert.Equal(t, map[deck.InstanceID]bool{inst(t, "GREEN-5-0"): true}, PlayedCards(entries))
	assert.Empty(t, DiscardedCards(entries))
}

func TestHistory(t *testing.T) {
	entries := []gamelog.Entry{
		discard(t, "RED-2"),
		hint(deck.ColorClue(deck.Red), 0),
		play(t, "RED-2"),
		restore(t, "RED-2-0"),
	}

	history := History(entries)
	require.Len(t, history, 3)
	assert.Equal(t, Transition{EntryIndex: 0, Card: inst(t, "RED-2-0"), To: StatusDiscarded}, history[0])
	assert.Equal(t, Transition{EntryIndex: 2, Card: inst(t, "RED-2-1"), To: StatusPlayed}, history[1])
	assert.Equal(t, Transition{EntryIndex: 3, Card: inst(t, "RED-2-0"), To: StatusInGame}, history[2])
}

func TestLowestInGame(t *testing.T) {
	statuses := CardStatuses([]gamelog.Entry{discard(t, "YELLOW-1-0"), discard(t, "YELLOW-1-2")})

	got, ok := LowestInGame(statuses, typeID(t, "YELLOW-1"))
	require.True(t, ok)
	assert.Equal(t, inst(t, "YELLOW-1-1"), got)

	statuses[inst(t, "YELLOW-1-1")] = StatusPlayed
	_, ok = LowestInGame(statuses, typeID(t, "YELLOW-1"))
	assert.False(t, ok)
}
