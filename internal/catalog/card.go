// Package catalog provides the immutable card list for a single set and
// its on-disk JSON representation.
package catalog

import (
	"strconv"
	"strings"
)

// Card is one entry in the set catalog. Cards are loaded once from the
// catalog file and never mutated afterwards.
type Card struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CollectorNumber string   `json:"collector_number"`
	TypeLine        string   `json:"type_line"`
	ManaCost        string   `json:"mana_cost"`
	Rarity          string   `json:"rarity"`
	Colors          []string `json:"colors"`
	Artist          string   `json:"artist"`
	ImageNormal     string   `json:"image_normal"`
	ImageSmall      string   `json:"image_small"`
	PriceUSD        *string  `json:"price_usd"`
	PriceMarket     *string  `json:"price_market,omitempty"`
	PriceMedian     *string  `json:"price_median,omitempty"`
	TCGPlayerID     *int     `json:"tcgplayer_id"`
}

// MarketPrice returns the current market price string, falling back to the
// snapshot price when no market price has been fetched yet.
func (c *Card) MarketPrice() *string {
	if c.PriceMarket != nil && *c.PriceMarket != "" {
		return c.PriceMarket
	}
	if c.PriceUSD != nil && *c.PriceUSD != "" {
		return c.PriceUSD
	}
	return nil
}

// EffectivePrice returns the card's price as a float, using the market price
// if present, the fallback snapshot price otherwise, and 0 when neither
// parses.
func (c *Card) EffectivePrice() float64 {
	if p := c.MarketPrice(); p != nil {
		if v, err := strconv.ParseFloat(*p, 64); err == nil {
			return v
		}
	}
	return 0
}

// CollectorOrdinal returns the numeric portion of the collector number.
// Numbers with letter suffixes ("74b") sort by their leading digits;
// a number with no leading digits sorts as 0.
func (c *Card) CollectorOrdinal() int {
	s := c.CollectorNumber
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

// IsLand reports whether the card's type line marks it as a land.
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}
