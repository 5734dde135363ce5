package derive

import (
	"fmt"

	"github.com/dyluth/fuse/pkg/deck"
	"github.com/dyluth/fuse/pkg/gamelog"
)

// Matrix holds, per hand position, whether each card type has been ruled out.
type Matrix map[deck.Position]map[deck.TypeID]bool

// EliminatedByHints replays the log into the hint-elimination matrix of a
// hand with handSize positions.
//
// A hint about a color or rank rules out, at each hinted position, every type
// whose clued attribute differs from the clue, and at each position not
// hinted, every type whose clued attribute equals it. Only the clued
// attribute is compared. Hints only ever add eliminations.
//
// A Discard or Play carrying a position clears that position's row: the card
// left the hand and its replacement has no history. Entries without a
// position, and Restore entries, leave the matrix unchanged.
func EliminatedByHints(entries []gamelog.Entry, handSize int) Matrix {
	m := make(Matrix, handSize)
	for _, p := range deck.Positions(handSize) {
		m[p] = emptyRow()
	}

	for _, e := range entries {
		switch a := e.Action.(type) {
		case gamelog.Hint:
			applyHint(m, a)
		case gamelog.Discard:
			resetRow(m, a.Position)
		case gamelog.Play:
			resetRow(m, a.Position)
		case gamelog.Restore:
		default:
			panic(fmt.Sprintf("derive: unhandled action %T", e.Action))
		}
	}

	return m
}

func applyHint(m Matrix, h gamelog.Hint) {
	for p, row := range m {
		hinted := h.Includes(p)
		for t := range row {
			if hinted != h.Clue.Matches(t) {
				row[t] = true
			}
		}
	}
}

func resetRow(m Matrix, p *deck.Position) {
	if p == nil {
		return
	}
	if _, ok := m[*p]; ok {
		m[*p] = emptyRow()
	}
}

func emptyRow() map[deck.TypeID]bool {
	row := make(map[deck.TypeID]bool, len(deck.AllTypes()))
	for _, t := range deck.AllTypes() {
		row[t] = false
	}
	return row
}

// Eliminated lists the types ruled out at p in deck order.
func (m Matrix) Eliminated(p deck.Position) []deck.TypeID {
	var out []deck.TypeID
	for _, t := range deck.AllTypes() {
		if m[p][t] {
			out = append(out, t)
		}
	}
	return out
}
