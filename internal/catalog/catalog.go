package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Catalog holds the loaded card list together with an id index for
// constant-time lookups.
type Catalog struct {
	cards []Card
	byID  map[string]*Card
}

// New builds a Catalog from a card slice. The slice is not copied; callers
// must treat it as owned by the catalog afterwards.
func New(cards []Card) *Catalog {
	c := &Catalog{
		cards: cards,
		byID:  make(map[string]*Card, len(cards)),
	}
	for i := range cards {
		c.byID[cards[i].ID] = &cards[i]
	}
	return c
}

// Load reads the catalog file and builds a Catalog from it.
func Load(path string) (*Catalog, error) {
	cards, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(cards), nil
}

// Cards returns the full card list in file order.
func (c *Catalog) Cards() []Card {
	return c.cards
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// FindByID returns the card with the given identifier, or nil when the
// identifier is unknown.
func (c *Catalog) FindByID(id string) *Card {
	return c.byID[id]
}

// ReadFile reads a card list from a catalog JSON file.
func ReadFile(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return cards, nil
}

// WriteFile sorts the cards by numeric collector number and writes them to
// the catalog file, creating the parent directory if needed.
func WriteFile(path string, cards []Card) error {
	SortByCollectorNumber(cards)

	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}

// SortByCollectorNumber orders cards by ascending numeric collector number.
func SortByCollectorNumber(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].CollectorOrdinal() < cards[j].CollectorOrdinal()
	})
}
