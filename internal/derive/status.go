// Package derive folds a game's action log into the views a player needs:
// which card types are exhausted, which physical cards were discarded or
// played, and which card types each hand position provably does not hold.
//
// Every function is a pure left fold over a log snapshot, oldest entry
// first. Results are freshly allocated on each call and nothing is cached,
// so the functions are safe to call concurrently over the same snapshot and
// always agree with the log they were given.
package derive

import (
	"fmt"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// Status is where a physical card currently is.
type Status string

const (
	// StatusInGame means the card is in the deck or in someone's hand
	StatusInGame Status = "IN_GAME"

	// StatusDiscarded means the card is in the discard pile
	StatusDiscarded Status = "DISCARDED"

	// StatusPlayed means the card is on the fireworks
	StatusPlayed Status = "PLAYED"
)

// Transition records one change of a physical card's status caused by the
// entry at EntryIndex.
type Transition struct {
	EntryIndex int
	Card       deck.InstanceID
	To         Status
}

// History replays the log and returns every card status change in log order.
//
// Discard and Play entries that name a type rather than an instance are bound
// to the lowest-index copy of that type still in game at that point of the
// replay. A reference that cannot be bound (every copy already out, or an
// unknown card) produces no transition. Restore entries return their instance
// to the game. Hints change no card status.
func History(entries []gamelog.Entry) []Transition {
	statuses := initialStatuses()
	var out []Transition

	for i, e := range entries {
		var card deck.InstanceID
		var to Status
		var ok bool

		switch a := e.Action.(type) {
		case gamelog.Discard:
			card, ok = bind(statuses, a.Card)
			to = StatusDiscarded
		case gamelog.Play:
			card, ok = bind(statuses, a.Card)
			to = StatusPlayed
		case gamelog.Restore:
			_, ok = statuses[a.Card]
			card, to = a.Card, StatusInGame
		case gamelog.Hint:
			continue
		default:
			panic(fmt.Sprintf("derive: unhandled action %T", e.Action))
		}

		if !ok {
			continue
		}
		statuses[card] = to
		out = append(out, Transition{EntryIndex: i, Card: card, To: to})
	}

	return out
}

// CardStatuses returns the status of every physical card after replaying the
// log. The most recent entry touching a card decides its status.
func CardStatuses(entries []gamelog.Entry) map[deck.InstanceID]Status {
	statuses := initialStatuses()
	for _, tr := range History(entries) {
		statuses[tr.Card] = tr.To
	}
	return statuses
}

// DiscardedCards returns the physical cards whose latest status is discarded.
func DiscardedCards(entries []gamelog.Entry) map[deck.InstanceID]bool {
	return withStatus(entries, StatusDiscarded)
}

// PlayedCards returns the physical cards whose latest status is played.
func PlayedCards(entries []gamelog.Entry) map[deck.InstanceID]bool {
	return withStatus(entries, StatusPlayed)
}

func withStatus(entries []gamelog.Entry, want Status) map[deck.InstanceID]bool {
	out := make(map[deck.InstanceID]bool)
	for card, s := range CardStatuses(entries) {
		if s == want {
			out[card] = true
		}
	}
	return out
}

func initialStatuses() map[deck.InstanceID]Status {
	statuses := make(map[deck.InstanceID]Status, deck.DeckSize())
	for _, id := range deck.AllInstances() {
		statuses[id] = StatusInGame
	}
	return statuses
}

// bind maps a card reference to a physical card given the statuses so far.
func bind(statuses map[deck.InstanceID]Status, ref deck.CardRef) (deck.InstanceID, bool) {
	if inst, specific := ref.Instance(); specific {
		_, known := statuses[inst]
		return inst, known
	}
	return LowestInGame(statuses, ref.Type)
}

// LowestInGame returns the lowest-index copy of t that statuses report as in
// game, or false if every copy is out of play.
func LowestInGame(statuses map[deck.InstanceID]Status, t deck.TypeID) (deck.InstanceID, bool) {
	for _, inst := range t.Instances() {
		if statuses[inst] == StatusInGame {
			return inst, true
		}
	}
	return deck.InstanceID{}, false
}
