// Command fetch-cards populates the catalog file with every card of the
// configured set, fetched from the Scryfall search API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/config"
	"github.com/averyquinn/set-tracker/internal/scryfall"
)

var (
	setCode = flag.String("set", "", "Set code to fetch (default: from config)")
	outPath = flag.String("out", "", "Output catalog file (default: from config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	code := *setCode
	if code == "" {
		code = cfg.Set.Code
	}

	out := *outPath
	if out == "" {
		if out, err = cfg.CatalogFile(); err != nil {
			log.Fatalf("Failed to resolve catalog path: %v", err)
		}
	}

	fmt.Printf("Fetching %s cards from Scryfall...\n\n", code)

	client := scryfall.NewClientWith(cfg.Scryfall.BaseURL, cfg.ScryfallRateLimit())
	cards, err := client.SearchSet(context.Background(), code, func(page, got, total int) {
		fmt.Printf("  Page %d: got %d cards (total: %d)\n", page, got, total)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch cards: %v\n", err)
		os.Exit(1)
	}

	if err := catalog.WriteFile(out, cards); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDone! %d cards saved to %s\n", len(cards), out)
}
