package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
)

func TestRenderRowTruncatesByRunes(t *testing.T) {
	// Longer than the narrowest name column, all multibyte runes.
	name := strings.Repeat("é", 30)
	cat := catalog.New([]catalog.Card{
		{ID: "a", Name: name, CollectorNumber: "1", Rarity: "common"},
	})
	store := collection.NewStore(filepath.Join(t.TempDir(), "collection.json"))

	m := New(cat, store)
	m.width = 40 // narrow terminal, name column at its minimum

	row := m.renderRow(0)
	if !utf8.ValidString(row) {
		t.Fatal("truncated row contains invalid UTF-8")
	}
	if !strings.Contains(row, "…") {
		t.Error("long name should be truncated with an ellipsis")
	}
	if strings.Contains(row, "�") {
		t.Error("truncation split a rune")
	}
}

func TestRenderRowShortNameUntouched(t *testing.T) {
	cat := catalog.New([]catalog.Card{
		{ID: "a", Name: "Taiga", CollectorNumber: "282", Rarity: "rare"},
	})
	store := collection.NewStore(filepath.Join(t.TempDir(), "collection.json"))

	m := New(cat, store)
	m.width = 40

	row := m.renderRow(0)
	if !strings.Contains(row, "Taiga") {
		t.Errorf("row %q is missing the card name", row)
	}
	if strings.Contains(row, "…") {
		t.Error("short name should not be truncated")
	}
}
