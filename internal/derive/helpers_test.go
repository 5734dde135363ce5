package derive

import (
	"math/rand"
	"testing"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/stretchr/testify/require"
)

func ref(t *testing.T, s string) deck.CardRef {
	t.Helper()
	r, err := deck.ParseCardRef(s)
	require.NoError(t, err)
	return r
}

func inst(t *testing.T, s string) deck.InstanceID {
	t.Helper()
	i, err := deck.ParseInstanceID(s)
	require.NoError(t, err)
	return i
}

func typeID(t *testing.T, s string) deck.TypeID {
	t.Helper()
	id, err := deck.ParseTypeID(s)
	require.NoError(t, err)
	return id
}

func discard(t *testing.T, card string) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Discard{Card: ref(t, card)}}
}

func discardAt(t *testing.T, card string, p deck.Position) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Discard{Card: ref(t, card), Position: gamelog.At(p)}}
}

func play(t *testing.T, card string) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Play{Card: ref(t, card)}}
}

func playAt(t *testing.T, card string, p deck.Position) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Play{Card: ref(t, card), Position: gamelog.At(p)}}
}

func restore(t *testing.T, card string) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Restore{Card: inst(t, card)}}
}

func hint(clue deck.Clue, positions ...deck.Position) gamelog.Entry {
	return gamelog.Entry{Action: gamelog.Hint{Positions: positions, Clue: clue}}
}

// randomLog produces a well-formed log: removals never exceed multiplicity
// and restores only name cards that are out of play.
func randomLog(seed int64, length int) []gamelog.Entry {
	rng := rand.New(rand.NewSource(seed))
	types := deck.AllTypes()
	var entries []gamelog.Entry

	for len(entries) < length {
		switch rng.Intn(4) {
		case 0, 1:
			t := types[rng.Intn(len(types))]
			if ExhaustedTypes(entries)[t] {
				continue
			}
			var pos *deck.Position
			if rng.Intn(2) == 0 {
				pos = gamelog.At(deck.Position(rng.Intn(deck.DefaultHandSize)))
			}
			if rng.Intn(2) == 0 {
				entries = append(entries, gamelog.Entry{Action: gamelog.Discard{Card: deck.TypeRef(t), Position: pos}})
			} else {
				entries = append(entries, gamelog.Entry{Action: gamelog.Play{Card: deck.TypeRef(t), Position: pos}})
			}
		case 2:
			var positions []deck.Position
			for _, p := range deck.Positions(deck.DefaultHandSize) {
				if rng.Intn(2) == 0 {
					positions = append(positions, p)
				}
			}
			if len(positions) == 0 {
				continue
			}
			var clue deck.Clue
			if rng.Intn(2) == 0 {
				colors := deck.Colors()
				clue = deck.ColorClue(colors[rng.Intn(len(colors))])
			} else {
				ranks := deck.Ranks()
				clue = deck.RankClue(ranks[rng.Intn(len(ranks))])
			}
			entries = append(entries, gamelog.Entry{Action: gamelog.Hint{Positions: positions, Clue: clue}})
		case 3:
			var out []deck.InstanceID
			for _, id := range deck.AllInstances() {
				if CardStatuses(entries)[id] != StatusInGame {
					out = append(out, id)
				}
			}
			if len(out) == 0 {
				continue
			}
			entries = append(entries, gamelog.Entry{Action: gamelog.Restore{Card: out[rng.Intn(len(out))]}})
		}
	}

	return entries
}
