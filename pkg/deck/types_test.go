package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplicity(t *testing.T) {
	assert.Equal(t, 3, Multiplicity(One))
	assert.Equal(t, 2, Multiplicity(Two))
	assert.Equal(t, 2, Multiplicity(Three))
	assert.Equal(t, 2, Multiplicity(Four))
	assert.Equal(t, 1, Multiplicity(Five))
	assert.Equal(t, 0, Multiplicity(Rank(6)))
}

func TestDeckSize(t *testing.T) {
	assert.Equal(t, 50, DeckSize())
	assert.Len(t, AllInstances(), 50)
	assert.Len(t, AllTypes(), 25)
}

func TestColorsAndRanksAreCopies(t *testing.T) {
	c := Colors()
	c[0] = "PURPLE"
	assert.Equal(t, Red, Colors()[0])

	r := Ranks()
	r[0] = 9
	assert.Equal(t, One, Ranks()[0])
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("GREEN")
	require.NoError(t, err)
	assert.Equal(t, Green, c)

	_, err = ParseColor("green")
	assert.Error(t, err)
	_, err = ParseColor("PURPLE")
	assert.Error(t, err)
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank("4")
	require.NoError(t, err)
	assert.Equal(t, Four, r)

	for _, bad := range []string{"0", "6", "x", "", "04", "+4", " 4"} {
		_, err := ParseRank(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("4", DefaultHandSize)
	require.NoError(t, err)
	assert.Equal(t, Position(4), p)

	_, err = ParsePosition("5", DefaultHandSize)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = ParsePosition("-1", DefaultHandSize)
	assert.Error(t, err)

	_, err = ParsePosition("two", DefaultHandSize)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestPositions(t *testing.T) {
	assert.Equal(t, []Position{0, 1, 2, 3}, Positions(4))
	assert.Empty(t, Positions(0))
}
