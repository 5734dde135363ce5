package derive

import (
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// TypeSummary describes one card type across all of its physical copies.
type TypeSummary struct {
	Type       deck.TypeID `json:"type"`
	Copies     int         `json:"copies"`
	Played     int         `json:"played"`
	Discarded  int         `json:"discarded"`
	OutOfPlay  int         `json:"out_of_play"`
	Remaining  int         `json:"remaining"`
	Exhausted  bool        `json:"exhausted"`
	CanDiscard bool        `json:"can_discard"` // a copy is still in game
	CanPlay    bool        `json:"can_play"`    // a copy is in game and none was played yet
}

// Summarize returns a summary per card type in deck order.
func Summarize(entries []gamelog.Entry) []TypeSummary {
	return summarize(CardStatuses(entries), OutOfPlayCounts(entries))
}

func summarize(statuses map[deck.InstanceID]Status, counts map[deck.TypeID]int) []TypeSummary {
	types := deck.AllTypes()
	out := make([]TypeSummary, 0, len(types))

	for _, t := range types {
		s := TypeSummary{
			Type:      t,
			Copies:    deck.Multiplicity(t.Rank),
			OutOfPlay: counts[t],
		}
		for _, inst := range t.Instances() {
			switch statuses[inst] {
			case StatusPlayed:
				s.Played++
			case StatusDiscarded:
				s.Discarded++
			}
		}
		s.Remaining = s.Copies - s.OutOfPlay
		if s.Remaining < 0 {
			s.Remaining = 0
		}
		s.Exhausted = s.OutOfPlay >= s.Copies
		s.CanDiscard = !s.Exhausted
		s.CanPlay = !s.Exhausted && s.Played == 0
		out = append(out, s)
	}

	return out
}

// Candidates returns, per hand position, the card types that position could
// still hold: not exhausted and not eliminated by hints. Types are listed in
// deck order.
func Candidates(entries []gamelog.Entry, handSize int) map[deck.Position][]deck.TypeID {
	return candidates(ExhaustedTypes(entries), EliminatedByHints(entries, handSize))
}

func candidates(exhausted map[deck.TypeID]bool, m Matrix) map[deck.Position][]deck.TypeID {
	out := make(map[deck.Position][]deck.TypeID, len(m))
	for p, row := range m {
		list := []deck.TypeID{}
		for _, t := range deck.AllTypes() {
			if !exhausted[t] && !row[t] {
				list = append(list, t)
			}
		}
		out[p] = list
	}
	return out
}

// View bundles every derived view of one log snapshot for presentation.
type View struct {
	LogLength  int                             `json:"log_length"`
	HandSize   int                             `json:"hand_size"`
	Exhausted  map[deck.TypeID]bool            `json:"exhausted"`
	Discarded  map[deck.InstanceID]bool        `json:"discarded"`
	Played     map[deck.InstanceID]bool        `json:"played"`
	Eliminated Matrix                          `json:"eliminated"`
	Candidates map[deck.Position][]deck.TypeID `json:"candidates"`
	Statuses   map[deck.InstanceID]Status      `json:"statuses"`
	Summary    []TypeSummary                   `json:"summary"`
}

// Build computes every view of entries for a hand of handSize positions.
func Build(entries []gamelog.Entry, handSize int) *View {
	statuses := CardStatuses(entries)
	counts := OutOfPlayCounts(entries)
	exhausted := ExhaustedTypes(entries)
	eliminated := EliminatedByHints(entries, handSize)

	v := &View{
		LogLength:  len(entries),
		HandSize:   handSize,
		Exhausted:  exhausted,
		Discarded:  make(map[deck.InstanceID]bool),
		Played:     make(map[deck.InstanceID]bool),
		Eliminated: eliminated,
		Candidates: candidates(exhausted, eliminated),
		Statuses:   statuses,
		Summary:    summarize(statuses, counts),
	}
	for card, s := range statuses {
		switch s {
		case StatusDiscarded:
			v.Discarded[card] = true
		case StatusPlayed:
			v.Played[card] = true
		}
	}
	return v
}
