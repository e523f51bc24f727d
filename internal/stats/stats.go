// Package stats computes aggregate collection statistics over the full
// catalog.
package stats

import (
	"fmt"
	"strconv"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
)

// Summary is the result of one aggregation pass.
type Summary struct {
	TotalCards     int     // cards in the catalog
	CollectedCards int     // cards marked collected
	OwnedValue     float64 // sum of price x quantity over collected cards
	SetValue       float64 // sum of price over all cards, missing price = 0
}

// Compute runs a single pass over the full catalog, not the filtered view.
func Compute(cards []catalog.Card, owned *collection.Store) Summary {
	var s Summary
	s.TotalCards = len(cards)

	for i := range cards {
		price := cards[i].EffectivePrice()
		s.SetValue += price

		r, ok := owned.Get(cards[i].ID)
		if !ok || !r.Collected {
			continue
		}
		s.CollectedCards++
		s.OwnedValue += price * float64(r.Quantity)
	}

	return s
}

// CompletionPercent returns collected/total as a percentage, 0 for an empty
// catalog.
func (s Summary) CompletionPercent() float64 {
	if s.TotalCards == 0 {
		return 0
	}
	return float64(s.CollectedCards) / float64(s.TotalCards) * 100
}

// AveragePrice returns the mean card price across the set, 0 for an empty
// catalog.
func (s Summary) AveragePrice() float64 {
	if s.TotalCards == 0 {
		return 0
	}
	return s.SetValue / float64(s.TotalCards)
}

// FormatAmount renders a monetary amount with a currency prefix and two
// decimal places.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatPrice renders a nullable price string, using a placeholder dash when
// the price is missing or does not parse as a number.
func FormatPrice(p *string) string {
	if p == nil || *p == "" {
		return "--"
	}
	v, err := strconv.ParseFloat(*p, 64)
	if err != nil {
		return "--"
	}
	return FormatAmount(v)
}
