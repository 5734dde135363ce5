package gamelog

import (
	"encoding/json"
	"fmt"

	"github.com/dyluth/fuse/pkg/deck"
)

// Serialization helpers for converting between entries and their flat wire
// form.
//
// Every storage backend persists Records: Redis as JSON list items, the file
// store as YAML, Postgres as one row per record. Identifiers are written in
// their canonical string form (RED-1-0, GREEN, 3) so stored logs stay
// readable.

// Record is the flat, tagged representation of an Entry.
type Record struct {
	Kind         Kind   `json:"kind" yaml:"kind"`
	Card         string `json:"card,omitempty" yaml:"card,omitempty"`           // discard, play, restore
	Position     *int   `json:"position,omitempty" yaml:"position,omitempty"`   // discard, play
	Positions    []int  `json:"positions,omitempty" yaml:"positions,omitempty"` // hint
	Clue         string `json:"clue,omitempty" yaml:"clue,omitempty"`           // hint
	RecordedAtMs int64  `json:"recorded_at_ms,omitempty" yaml:"recorded_at_ms,omitempty"`
}

// EntryToRecord converts an entry to its wire form.
func EntryToRecord(e Entry) (Record, error) {
	r := Record{RecordedAtMs: e.RecordedAtMs}

	switch a := e.Action.(type) {
	case Discard:
		r.Kind = KindDiscard
		r.Card = a.Card.String()
		r.Position = positionToInt(a.Position)
	case Play:
		r.Kind = KindPlay
		r.Card = a.Card.String()
		r.Position = positionToInt(a.Position)
	case Hint:
		r.Kind = KindHint
		r.Clue = a.Clue.String()
		r.Positions = make([]int, len(a.Positions))
		for i, p := range a.Positions {
			r.Positions[i] = int(p)
		}
	case Restore:
		r.Kind = KindRestore
		r.Card = a.Card.String()
	default:
		return Record{}, fmt.Errorf("unknown action type %T", e.Action)
	}

	return r, nil
}

// RecordToEntry converts a wire record back to an entry. Identifiers are
// parsed strictly; a malformed card id surfaces as *deck.MalformedIDError.
func RecordToEntry(r Record) (Entry, error) {
	e := Entry{RecordedAtMs: r.RecordedAtMs}

	switch r.Kind {
	case KindDiscard, KindPlay:
		card, err := deck.ParseCardRef(r.Card)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid %s card: %w", r.Kind, err)
		}
		pos := intToPosition(r.Position)
		if r.Kind == KindDiscard {
			e.Action = Discard{Card: card, Position: pos}
		} else {
			e.Action = Play{Card: card, Position: pos}
		}
	case KindHint:
		clue, err := deck.ParseClue(r.Clue)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid hint: %w", err)
		}
		positions := make([]deck.Position, len(r.Positions))
		for i, p := range r.Positions {
			positions[i] = deck.Position(p)
		}
		e.Action = Hint{Positions: positions, Clue: clue}
	case KindRestore:
		card, err := deck.ParseInstanceID(r.Card)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid restore card: %w", err)
		}
		e.Action = Restore{Card: card}
	default:
		return Entry{}, fmt.Errorf("unknown action kind: %q", string(r.Kind))
	}

	return e, nil
}

// EntriesToRecords converts a whole log.
func EntriesToRecords(entries []Entry) ([]Record, error) {
	records := make([]Record, 0, len(entries))
	for i, e := range entries {
		r, err := EntryToRecord(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// RecordsToEntries converts a whole stored log.
func RecordsToEntries(records []Record) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		e, err := RecordToEntry(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarshalJSON encodes the entry as its Record.
func (e Entry) MarshalJSON() ([]byte, error) {
	r, err := EntryToRecord(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes an entry from its Record.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := RecordToEntry(r)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func positionToInt(p *deck.Position) *int {
	if p == nil {
		return nil
	}
	v := int(*p)
	return &v
}

func intToPosition(v *int) *deck.Position {
	if v == nil {
		return nil
	}
	return At(deck.Position(*v))
}
