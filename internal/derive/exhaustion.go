package derive

import (
	"fmt"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// OutOfPlayCounts returns, for every card type, how many copies the log has
// taken out of play: +1 per Discard or Play naming the type (an instance
// counts for its type), -1 per Restore of a copy that is out of play at that
// point, never below zero. A Restore naming a copy still in game changes
// nothing, matching CardStatuses.
func OutOfPlayCounts(entries []gamelog.Entry) map[deck.TypeID]int {
	counts := make(map[deck.TypeID]int)
	for _, t := range deck.AllTypes() {
		counts[t] = 0
	}
	statuses := initialStatuses()

	for _, e := range entries {
		var t deck.TypeID
		delta := 0

		switch a := e.Action.(type) {
		case gamelog.Discard:
			t, delta = a.Card.Type, 1
			if card, ok := bind(statuses, a.Card); ok {
				statuses[card] = StatusDiscarded
			}
		case gamelog.Play:
			t, delta = a.Card.Type, 1
			if card, ok := bind(statuses, a.Card); ok {
				statuses[card] = StatusPlayed
			}
		case gamelog.Restore:
			if s, known := statuses[a.Card]; !known || s == StatusInGame {
				continue
			}
			statuses[a.Card] = StatusInGame
			t, delta = a.Card.Type(), -1
		case gamelog.Hint:
			continue
		default:
			panic(fmt.Sprintf("derive: unhandled action %T", e.Action))
		}

		n, known := counts[t]
		if !known {
			continue
		}
		if n+delta >= 0 {
			counts[t] = n + delta
		}
	}

	return counts
}

// ExhaustedTypes reports for every card type whether all of its copies are
// out of play.
func ExhaustedTypes(entries []gamelog.Entry) map[deck.TypeID]bool {
	counts := OutOfPlayCounts(entries)
	out := make(map[deck.TypeID]bool, len(counts))
	for t, n := range counts {
		out[t] = n >= deck.Multiplicity(t.Rank)
	}
	return out
}
