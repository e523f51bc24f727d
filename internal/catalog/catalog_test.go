package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestCollectorOrdinal(t *testing.T) {
	tests := []struct {
		number string
		want   int
	}{
		{"1", 1},
		{"74", 74},
		{"74b", 74},
		{"302a", 302},
		{"", 0},
		{"b", 0},
	}

	for _, tt := range tests {
		c := Card{CollectorNumber: tt.number}
		if got := c.CollectorOrdinal(); got != tt.want {
			t.Errorf("CollectorOrdinal(%q) = %d, want %d", tt.number, got, tt.want)
		}
	}
}

func TestMarketPrice(t *testing.T) {
	tests := []struct {
		name   string
		card   Card
		want   string
		wantOK bool
	}{
		{"Market preferred", Card{PriceUSD: strPtr("1.00"), PriceMarket: strPtr("2.00")}, "2.00", true},
		{"Fallback to snapshot", Card{PriceUSD: strPtr("1.00")}, "1.00", true},
		{"Empty market falls through", Card{PriceUSD: strPtr("1.00"), PriceMarket: strPtr("")}, "1.00", true},
		{"No price at all", Card{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.card.MarketPrice()
			if tt.wantOK {
				if p == nil || *p != tt.want {
					t.Errorf("MarketPrice = %v, want %q", p, tt.want)
				}
			} else if p != nil {
				t.Errorf("MarketPrice = %q, want nil", *p)
			}
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	c := Card{PriceUSD: strPtr("2.50")}
	if got := c.EffectivePrice(); got != 2.5 {
		t.Errorf("EffectivePrice = %f, want 2.5", got)
	}
	c = Card{PriceUSD: strPtr("oops")}
	if got := c.EffectivePrice(); got != 0 {
		t.Errorf("EffectivePrice = %f, want 0 for unparseable", got)
	}
}

func TestIsLand(t *testing.T) {
	if !(&Card{TypeLine: "Basic Land - Island"}).IsLand() {
		t.Error("basic land not detected")
	}
	if (&Card{TypeLine: "Artifact"}).IsLand() {
		t.Error("artifact detected as land")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "cards.json")
	cards := []Card{
		{ID: "c", Name: "Third", CollectorNumber: "74b"},
		{ID: "a", Name: "First", CollectorNumber: "2"},
		{ID: "b", Name: "Second", CollectorNumber: "10"},
	}

	if err := WriteFile(path, cards); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d cards, want 3", len(got))
	}
	// Written sorted by numeric collector number, letter suffixes by digits.
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("card %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("malformed file should error")
	}
}

func TestFindByID(t *testing.T) {
	c := New([]Card{{ID: "a", Name: "First"}, {ID: "b", Name: "Second"}})

	if got := c.FindByID("b"); got == nil || got.Name != "Second" {
		t.Errorf("FindByID(b) = %v", got)
	}
	if got := c.FindByID("missing"); got != nil {
		t.Errorf("FindByID(missing) = %v, want nil", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
