// Package filter derives the visible card list from the catalog, the
// ownership store and the current filter selections. All functions are pure
// apart from reading the store.
package filter

import (
	"sort"
	"strings"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
)

// Color filter values beyond the single-letter color codes.
const (
	ColorMulti     = "M"
	ColorColorless = "C"
	ColorLand      = "L"
)

// Status filter values.
const (
	StatusAll       = ""
	StatusCollected = "collected"
	StatusMissing   = "missing"
)

// Price sort directions.
const (
	SortNone = ""
	SortAsc  = "low"
	SortDesc = "high"
)

// Filters is the full set of filter and sort selections.
type Filters struct {
	Search string // case-insensitive substring match on name
	Color  string // "", single color code, "M", "C" or "L"
	Rarity string // exact match, "" = all
	Status string // StatusAll, StatusCollected or StatusMissing
	Sort   string // SortNone, SortAsc or SortDesc
}

// MatchesColor applies the color filter to one card. The special cases are
// order-sensitive: multicolor is checked before colorless, colorless before
// land, and only then does the value fall through to a single-color exact
// match. A multicolor land matches "L" but no single-color filter.
func MatchesColor(card *catalog.Card, color string) bool {
	switch {
	case color == "":
		return true
	case color == ColorMulti:
		return len(card.Colors) > 1
	case color == ColorColorless:
		return len(card.Colors) == 0 && !card.IsLand()
	case color == ColorLand:
		return card.IsLand()
	default:
		return len(card.Colors) == 1 && card.Colors[0] == color
	}
}

// Apply returns a fresh slice of the cards matching the filters, in catalog
// order unless a price sort is requested. The input slice is never mutated.
func Apply(cards []catalog.Card, owned *collection.Store, f Filters) []catalog.Card {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]catalog.Card, 0, len(cards))
	for i := range cards {
		card := &cards[i]
		if search != "" && !strings.Contains(strings.ToLower(card.Name), search) {
			continue
		}
		if !MatchesColor(card, f.Color) {
			continue
		}
		if f.Rarity != "" && card.Rarity != f.Rarity {
			continue
		}
		if f.Status == StatusCollected && !owned.Collected(card.ID) {
			continue
		}
		if f.Status == StatusMissing && owned.Collected(card.ID) {
			continue
		}
		out = append(out, *card)
	}

	switch f.Sort {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	}

	return out
}
