package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
)

func strPtr(s string) *string { return &s }

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")

	cards := []catalog.Card{
		{ID: "a", Name: "First", Rarity: "common", PriceUSD: strPtr("1.00")},
		{ID: "b", Name: "Second", Rarity: "rare", PriceUSD: strPtr("10.00")},
	}
	owned := collection.NewStore(filepath.Join(dir, "collection.json"))
	if err := owned.SetCollected("a", true); err != nil {
		t.Fatalf("SetCollected: %v", err)
	}

	if err := WriteReport(out, cards, owned); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<html") {
		t.Error("report is not an HTML document")
	}
	if !strings.Contains(html, "common") || !strings.Contains(html, "rare") {
		t.Error("report is missing the rarity buckets")
	}
}

func TestWriteReportEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")
	owned := collection.NewStore(filepath.Join(dir, "collection.json"))

	if err := WriteReport(out, nil, owned); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("report file not written: %v", err)
	}
}
