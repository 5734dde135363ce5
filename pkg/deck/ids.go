package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// separator joins the components of every encoded identifier.
const separator = "-"

// MalformedIDError reports an identifier that does not parse into a known
// color, rank and (for instances) copy index.
type MalformedIDError struct {
	Input  string
	Reason string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed card id %q: %s", e.Input, e.Reason)
}

// IsMalformedID returns true if err is or wraps a *MalformedIDError.
func IsMalformedID(err error) bool {
	var target *MalformedIDError
	return errors.As(err, &target)
}

// TypeID identifies a card type: one color and one rank, regardless of copy.
type TypeID struct {
	Color Color
	Rank  Rank
}

// NewTypeID builds the identifier of the (color, rank) card type.
func NewTypeID(c Color, r Rank) TypeID {
	return TypeID{Color: c, Rank: r}
}

// String encodes the type as COLOR-RANK.
func (t TypeID) String() string {
	return string(t.Color) + separator + t.Rank.String()
}

// Validate checks that both components are known.
func (t TypeID) Validate() error {
	if err := t.Color.Validate(); err != nil {
		return err
	}
	return t.Rank.Validate()
}

// Instances returns the identifiers of every physical copy of the type.
func (t TypeID) Instances() []InstanceID {
	out := make([]InstanceID, Multiplicity(t.Rank))
	for i := range out {
		out[i] = InstanceID{Color: t.Color, Rank: t.Rank, Index: i}
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (t TypeID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TypeID) UnmarshalText(text []byte) error {
	parsed, err := ParseTypeID(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTypeID decodes a COLOR-RANK identifier.
func ParseTypeID(s string) (TypeID, error) {
	parts := strings.Split(s, separator)
	if len(parts) != 2 {
		return TypeID{}, &MalformedIDError{Input: s, Reason: "expected COLOR-RANK"}
	}
	return parseTypeParts(s, parts[0], parts[1])
}

func parseTypeParts(input, color, rank string) (TypeID, error) {
	c, err := ParseColor(color)
	if err != nil {
		return TypeID{}, &MalformedIDError{Input: input, Reason: err.Error()}
	}
	r, err := ParseRank(rank)
	if err != nil {
		return TypeID{}, &MalformedIDError{Input: input, Reason: err.Error()}
	}
	return TypeID{Color: c, Rank: r}, nil
}

// InstanceID identifies one physical card: a card type plus the index of the
// copy, in [0, Multiplicity(rank)).
type InstanceID struct {
	Color Color
	Rank  Rank
	Index int
}

// NewInstanceID builds an instance identifier, rejecting copy indices the
// rank does not have.
func NewInstanceID(c Color, r Rank, index int) (InstanceID, error) {
	id := InstanceID{Color: c, Rank: r, Index: index}
	if err := id.Validate(); err != nil {
		return InstanceID{}, &MalformedIDError{Input: id.String(), Reason: err.Error()}
	}
	return id, nil
}

// String encodes the instance as COLOR-RANK-INDEX.
func (i InstanceID) String() string {
	return i.Type().String() + separator + strconv.Itoa(i.Index)
}

// Type reduces the instance to its card type.
func (i InstanceID) Type() TypeID {
	return TypeID{Color: i.Color, Rank: i.Rank}
}

// Validate checks color, rank and the copy index range.
func (i InstanceID) Validate() error {
	if err := i.Type().Validate(); err != nil {
		return err
	}
	if m := Multiplicity(i.Rank); i.Index < 0 || i.Index >= m {
		return fmt.Errorf("index %d out of range [0, %d) for rank %s", i.Index, m, i.Rank)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (i InstanceID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *InstanceID) UnmarshalText(text []byte) error {
	parsed, err := ParseInstanceID(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseInstanceID decodes a COLOR-RANK-INDEX identifier.
func ParseInstanceID(s string) (InstanceID, error) {
	parts := strings.Split(s, separator)
	if len(parts) != 3 {
		return InstanceID{}, &MalformedIDError{Input: s, Reason: "expected COLOR-RANK-INDEX"}
	}
	t, err := parseTypeParts(s, parts[0], parts[1])
	if err != nil {
		return InstanceID{}, err
	}
	index, ok := parseCanonicalInt(parts[2])
	if !ok {
		return InstanceID{}, &MalformedIDError{Input: s, Reason: "index is not a number"}
	}
	id := InstanceID{Color: t.Color, Rank: t.Rank, Index: index}
	if err := id.Validate(); err != nil {
		return InstanceID{}, &MalformedIDError{Input: s, Reason: err.Error()}
	}
	return id, nil
}

// AllTypes returns every card type, colors outer and ranks inner.
func AllTypes() []TypeID {
	out := make([]TypeID, 0, len(colors)*len(ranks))
	for _, c := range colors {
		for _, r := range ranks {
			out = append(out, TypeID{Color: c, Rank: r})
		}
	}
	return out
}

// AllInstances returns every physical card of the deck in display order.
func AllInstances() []InstanceID {
	out := make([]InstanceID, 0, DeckSize())
	for _, t := range AllTypes() {
		out = append(out, t.Instances()...)
	}
	return out
}

// CardRef is the card payload of a discard or play: either a whole card type,
// when the actor did not say which copy left the hand, or one specific
// physical instance.
type CardRef struct {
	Type     TypeID
	Index    int  // copy index, meaningful only when Specific is set
	Specific bool // true when the reference names an instance
}

// TypeRef references a card type without choosing a copy.
func TypeRef(t TypeID) CardRef {
	return CardRef{Type: t}
}

// InstanceRef references one physical card.
func InstanceRef(i InstanceID) CardRef {
	return CardRef{Type: i.Type(), Index: i.Index, Specific: true}
}

// Instance returns the referenced instance, or false for a type reference.
func (r CardRef) Instance() (InstanceID, bool) {
	if !r.Specific {
		return InstanceID{}, false
	}
	return InstanceID{Color: r.Type.Color, Rank: r.Type.Rank, Index: r.Index}, true
}

func (r CardRef) String() string {
	if inst, ok := r.Instance(); ok {
		return inst.String()
	}
	return r.Type.String()
}

// Validate checks the referenced type and, for instances, the copy index.
func (r CardRef) Validate() error {
	if inst, ok := r.Instance(); ok {
		return inst.Validate()
	}
	return r.Type.Validate()
}

// MarshalText implements encoding.TextMarshaler.
func (r CardRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *CardRef) UnmarshalText(text []byte) error {
	parsed, err := ParseCardRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseCardRef accepts either COLOR-RANK or COLOR-RANK-INDEX.
func ParseCardRef(s string) (CardRef, error) {
	switch strings.Count(s, separator) {
	case 1:
		t, err := ParseTypeID(s)
		if err != nil {
			return CardRef{}, err
		}
		return TypeRef(t), nil
	case 2:
		i, err := ParseInstanceID(s)
		if err != nil {
			return CardRef{}, err
		}
		return InstanceRef(i), nil
	default:
		return CardRef{}, &MalformedIDError{Input: s, Reason: "expected COLOR-RANK or COLOR-RANK-INDEX"}
	}
}

// Clue is the information carried by a hint: exactly one color or one rank.
type Clue struct {
	Color Color // set for color clues
	Rank  Rank  // set for rank clues
}

// ColorClue builds a clue naming a color.
func ColorClue(c Color) Clue {
	return Clue{Color: c}
}

// RankClue builds a clue naming a rank.
func RankClue(r Rank) Clue {
	return Clue{Rank: r}
}

// IsColor reports whether the clue names a color rather than a rank.
func (c Clue) IsColor() bool {
	return c.Color != ""
}

// Matches reports whether the clued attribute of t equals the clue.
// Only the clued dimension is compared.
func (c Clue) Matches(t TypeID) bool {
	if c.IsColor() {
		return t.Color == c.Color
	}
	return t.Rank == c.Rank
}

// Validate checks that exactly one known attribute is set.
func (c Clue) Validate() error {
	switch {
	case c.Color != "" && c.Rank != 0:
		return fmt.Errorf("clue names both color %s and rank %s", c.Color, c.Rank)
	case c.Color != "":
		return c.Color.Validate()
	case c.Rank != 0:
		return c.Rank.Validate()
	default:
		return fmt.Errorf("clue is empty")
	}
}

func (c Clue) String() string {
	if c.IsColor() {
		return string(c.Color)
	}
	return c.Rank.String()
}

// MarshalText implements encoding.TextMarshaler.
func (c Clue) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clue) UnmarshalText(text []byte) error {
	parsed, err := ParseClue(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClue accepts a color name or a rank digit.
func ParseClue(s string) (Clue, error) {
	if r, err := ParseRank(s); err == nil {
		return RankClue(r), nil
	}
	c, err := ParseColor(strings.ToUpper(s))
	if err != nil {
		return Clue{}, fmt.Errorf("invalid clue %q: must be a color or a rank", s)
	}
	return ColorClue(c), nil
}
