package filter

import (
	"path/filepath"

	"github.com/dyluth/fuse/pkg/gamelog"
)

// Criteria defines filtering criteria for log entries.
// All filters are ANDed together - an entry must match ALL criteria to pass.
type Criteria struct {
	SinceTimestampMs int64          // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64          // Unix timestamp in milliseconds, 0 = no filter
	Kinds            []gamelog.Kind // Allowed action kinds, empty = no filter
	CardGlob         string         // Glob over the card type, e.g. "RED-*", empty = no filter
}

// Matches returns true if the entry matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
// Hints carry no card, so they never match a CardGlob.
func (c *Criteria) Matches(e gamelog.Entry) bool {
	if c.SinceTimestampMs > 0 && e.RecordedAtMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && e.RecordedAtMs > c.UntilTimestampMs {
		return false
	}

	if len(c.Kinds) > 0 {
		found := false
		for _, k := range c.Kinds {
			if e.Kind() == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.CardGlob != "" {
		card, ok := cardType(e)
		if !ok {
			return false
		}
		matched, err := filepath.Match(c.CardGlob, card)
		if err != nil || !matched {
			return false
		}
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 ||
		c.UntilTimestampMs > 0 ||
		len(c.Kinds) > 0 ||
		c.CardGlob != ""
}

// cardType returns the COLOR-RANK form of the card an entry names.
func cardType(e gamelog.Entry) (string, bool) {
	switch a := e.Action.(type) {
	case gamelog.Discard:
		return a.Card.Type.String(), true
	case gamelog.Play:
		return a.Card.Type.String(), true
	case gamelog.Restore:
		return a.Card.Type().String(), true
	default:
		return "", false
	}
}
