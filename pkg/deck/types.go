package deck

import (
	"fmt"
	"strconv"
)

// Color is one of the five firework colors.
type Color string

const (
	Red    Color = "RED"
	Green  Color = "GREEN"
	Blue   Color = "BLUE"
	Yellow Color = "YELLOW"
	White  Color = "WHITE"
)

// Rank is the printed number on a card, 1 through 5.
type Rank int

const (
	One   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
)

// DefaultHandSize is the number of hand positions tracked unless configured otherwise.
const DefaultHandSize = 5

var colors = []Color{Red, Green, Blue, Yellow, White}

var ranks = []Rank{One, Two, Three, Four, Five}

// multiplicities maps each rank to its number of physical copies per color.
var multiplicities = map[Rank]int{
	One:   3,
	Two:   2,
	Three: 2,
	Four:  2,
	Five:  1,
}

// Colors returns the colors in display order.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// Ranks returns the ranks in ascending order.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// Multiplicity returns the number of physical copies of a card of the given
// rank in one color. Unknown ranks have no copies.
func Multiplicity(r Rank) int {
	return multiplicities[r]
}

// DeckSize returns the total number of physical cards.
func DeckSize() int {
	total := 0
	for _, r := range ranks {
		total += multiplicities[r]
	}
	return total * len(colors)
}

// Validate checks if the Color is a valid enum value.
func (c Color) Validate() error {
	switch c {
	case Red, Green, Blue, Yellow, White:
		return nil
	default:
		return fmt.Errorf("unknown color: %q", string(c))
	}
}

// Validate checks if the Rank is a valid enum value.
func (r Rank) Validate() error {
	if r < One || r > Five {
		return fmt.Errorf("unknown rank: %d", int(r))
	}
	return nil
}

func (r Rank) String() string {
	return strconv.Itoa(int(r))
}

// ParseColor parses an upper-case color name such as "GREEN".
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// ParseRank parses a rank written as a single digit.
func ParseRank(s string) (Rank, error) {
	n, ok := parseCanonicalInt(s)
	if !ok {
		return 0, fmt.Errorf("unknown rank: %q", s)
	}
	r := Rank(n)
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r, nil
}

// parseCanonicalInt accepts only the form strconv.Itoa produces, so "01"
// and "+1" are rejected and parsed ids encode back to their input.
func parseCanonicalInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

// Position is a slot in the tracked hand, counted from zero.
type Position int

// Positions returns every position of a hand of the given size in order.
func Positions(handSize int) []Position {
	out := make([]Position, handSize)
	for i := range out {
		out[i] = Position(i)
	}
	return out
}

// Validate checks that the position lies within a hand of handSize cards.
func (p Position) Validate(handSize int) error {
	if p < 0 || int(p) >= handSize {
		return fmt.Errorf("position %d out of range [0, %d)", int(p), handSize)
	}
	return nil
}

// ParsePosition parses a decimal hand position and validates it against handSize.
func ParsePosition(s string, handSize int) (Position, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: not a number", s)
	}
	p := Position(n)
	if err := p.Validate(handSize); err != nil {
		return 0, err
	}
	return p, nil
}
