package gamelog

import (
	"fmt"

	"github.com/dyluth/fuse/pkg/deck"
)

// Kind names an action variant. It is the discriminator of the wire format.
type Kind string

const (
	// KindDiscard records a card sent to the discard pile
	KindDiscard Kind = "discard"

	// KindPlay records a card added to the fireworks
	KindPlay Kind = "play"

	// KindHint records a color or rank clue given about hand positions
	KindHint Kind = "hint"

	// KindRestore records a correction that returns a card to play
	KindRestore Kind = "restore"
)

// Kinds returns every action kind.
func Kinds() []Kind {
	return []Kind{KindDiscard, KindPlay, KindHint, KindRestore}
}

// Validate checks if the Kind is a valid enum value.
func (k Kind) Validate() error {
	switch k {
	case KindDiscard, KindPlay, KindHint, KindRestore:
		return nil
	default:
		return fmt.Errorf("unknown action kind: %q", string(k))
	}
}

// Action is one recorded player action. The set of implementations is closed.
type Action interface {
	Kind() Kind
	sealed()
}

// Discard records that a card left the game through the discard pile.
type Discard struct {
	Card     deck.CardRef
	Position *deck.Position // hand position the card left, if known
}

// Play records that a card was played onto the fireworks.
type Play struct {
	Card     deck.CardRef
	Position *deck.Position // hand position the card left, if known
}

// Hint records a clue: every position in Positions holds a card matching
// Clue, and every other position does not.
type Hint struct {
	Positions []deck.Position
	Clue      deck.Clue
}

// Restore returns a physical card that an earlier Discard or Play took out.
type Restore struct {
	Card deck.InstanceID
}

func (Discard) Kind() Kind { return KindDiscard }
func (Play) Kind() Kind    { return KindPlay }
func (Hint) Kind() Kind    { return KindHint }
func (Restore) Kind() Kind { return KindRestore }

func (Discard) sealed() {}
func (Play) sealed()    {}
func (Hint) sealed()    {}
func (Restore) sealed() {}

// Includes reports whether the hint names position p.
func (h Hint) Includes(p deck.Position) bool {
	for _, hp := range h.Positions {
		if hp == p {
			return true
		}
	}
	return false
}

// At returns a pointer to p, for the optional position of Discard and Play.
func At(p deck.Position) *deck.Position {
	return &p
}

// Entry is one element of the log: an action plus when it was recorded.
// RecordedAtMs is informational only; no derived view depends on it.
type Entry struct {
	Action       Action
	RecordedAtMs int64 // Unix timestamp in milliseconds, 0 if unknown
}

// Kind returns the kind of the wrapped action.
func (e Entry) Kind() Kind {
	return e.Action.Kind()
}

// Clone returns a copy of e that shares no hint positions or hand position
// pointers with it.
func (e Entry) Clone() Entry {
	switch a := e.Action.(type) {
	case Discard:
		a.Position = clonePosition(a.Position)
		e.Action = a
	case Play:
		a.Position = clonePosition(a.Position)
		e.Action = a
	case Hint:
		if a.Positions != nil {
			a.Positions = append([]deck.Position(nil), a.Positions...)
		}
		e.Action = a
	}
	return e
}

func clonePosition(p *deck.Position) *deck.Position {
	if p == nil {
		return nil
	}
	return At(*p)
}

// Validate checks an entry's payload against a hand of handSize positions.
// The Log itself never validates; producers call this before appending.
func (e Entry) Validate(handSize int) error {
	switch a := e.Action.(type) {
	case Discard:
		return validateRemoval(a.Card, a.Position, handSize)
	case Play:
		return validateRemoval(a.Card, a.Position, handSize)
	case Hint:
		return validateHint(a, handSize)
	case Restore:
		if err := a.Card.Validate(); err != nil {
			return fmt.Errorf("invalid restore card: %w", err)
		}
		return nil
	case nil:
		return fmt.Errorf("entry has no action")
	default:
		return fmt.Errorf("unknown action type %T", a)
	}
}

func validateRemoval(card deck.CardRef, pos *deck.Position, handSize int) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}
	if pos != nil {
		if err := pos.Validate(handSize); err != nil {
			return fmt.Errorf("invalid position: %w", err)
		}
	}
	return nil
}

func validateHint(h Hint, handSize int) error {
	if len(h.Positions) == 0 {
		return fmt.Errorf("hint must name at least one position")
	}

	seen := make(map[deck.Position]bool, len(h.Positions))
	for _, p := range h.Positions {
		if err := p.Validate(handSize); err != nil {
			return fmt.Errorf("invalid hint position: %w", err)
		}
		if seen[p] {
			return fmt.Errorf("hint names position %d twice", int(p))
		}
		seen[p] = true
	}

	if err := h.Clue.Validate(); err != nil {
		return fmt.Errorf("invalid clue: %w", err)
	}
	return nil
}
