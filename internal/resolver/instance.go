// Package resolver turns card references into concrete physical cards using
// only the action log.
package resolver

import (
	"errors"
	"fmt"

	"github.com/dyluth/fuse/internal/derive"
	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// ResolveNextInstance returns the lowest-index copy of (color, rank) that is
// still in game after replaying entries. Copies returned to play by a
// Restore count as available again.
//
// Returns *ExhaustionError when every copy is out of play: the caller is
// trying to remove a card that no longer exists.
func ResolveNextInstance(entries []gamelog.Entry, c deck.Color, r deck.Rank) (deck.InstanceID, error) {
	t := deck.NewTypeID(c, r)
	if err := t.Validate(); err != nil {
		return deck.InstanceID{}, &deck.MalformedIDError{Input: t.String(), Reason: err.Error()}
	}

	inst, ok := derive.LowestInGame(derive.CardStatuses(entries), t)
	if !ok {
		return deck.InstanceID{}, &ExhaustionError{Type: t}
	}
	return inst, nil
}

// Bind resolves a card reference to a physical card. Instance references are
// checked to still be in game; type references go through
// ResolveNextInstance.
func Bind(entries []gamelog.Entry, ref deck.CardRef) (deck.InstanceID, error) {
	inst, specific := ref.Instance()
	if !specific {
		return ResolveNextInstance(entries, ref.Type.Color, ref.Type.Rank)
	}

	if err := inst.Validate(); err != nil {
		return deck.InstanceID{}, &deck.MalformedIDError{Input: inst.String(), Reason: err.Error()}
	}
	if s := derive.CardStatuses(entries)[inst]; s != derive.StatusInGame {
		return deck.InstanceID{}, &AlreadyOutError{Card: inst, Status: s}
	}
	return inst, nil
}

// ResolveRestoreTarget picks the copy of t a type-level restore refers to:
// the copy most recently taken out of play that is still out.
//
// Returns *NotOutOfPlayError if no copy of t is out of play.
func ResolveRestoreTarget(entries []gamelog.Entry, t deck.TypeID) (deck.InstanceID, error) {
	statuses := derive.CardStatuses(entries)
	history := derive.History(entries)

	for i := len(history) - 1; i >= 0; i-- {
		tr := history[i]
		if tr.Card.Type() != t || tr.To == derive.StatusInGame {
			continue
		}
		if statuses[tr.Card] != derive.StatusInGame {
			return tr.Card, nil
		}
	}
	return deck.InstanceID{}, &NotOutOfPlayError{Card: t.String()}
}

// CheckOutOfPlay verifies that inst is currently discarded or played.
func CheckOutOfPlay(entries []gamelog.Entry, inst deck.InstanceID) error {
	if derive.CardStatuses(entries)[inst] == derive.StatusInGame {
		return &NotOutOfPlayError{Card: inst.String()}
	}
	return nil
}

// ExhaustionError indicates every copy of a card type is already out of play.
type ExhaustionError struct {
	Type deck.TypeID
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("all %d copies of %s are already out of play", deck.Multiplicity(e.Type.Rank), e.Type)
}

// AlreadyOutError indicates a specific card was already discarded or played.
type AlreadyOutError struct {
	Card   deck.InstanceID
	Status derive.Status
}

func (e *AlreadyOutError) Error() string {
	return fmt.Sprintf("card %s is already out of play (%s)", e.Card, e.Status)
}

// NotOutOfPlayError indicates a restore named a card that is still in game.
type NotOutOfPlayError struct {
	Card string
}

func (e *NotOutOfPlayError) Error() string {
	return fmt.Sprintf("no copy of %s is out of play", e.Card)
}

// IsExhaustionError checks if an error is an ExhaustionError.
func IsExhaustionError(err error) bool {
	var target *ExhaustionError
	return errors.As(err, &target)
}

// IsAlreadyOutError checks if an error is an AlreadyOutError.
func IsAlreadyOutError(err error) bool {
	var target *AlreadyOutError
	return errors.As(err, &target)
}

// IsNotOutOfPlayError checks if an error is a NotOutOfPlayError.
func IsNotOutOfPlayError(err error) bool {
	var target *NotOutOfPlayError
	return errors.As(err, &target)
}
