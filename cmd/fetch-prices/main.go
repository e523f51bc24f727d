// Command fetch-prices updates the catalog file with per-card market prices
// from TCGplayer, recording every observation in the price history database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/config"
	"github.com/averyquinn/set-tracker/internal/pricing"
	"github.com/averyquinn/set-tracker/internal/storage"
)

var (
	forceAll    = flag.Bool("force", false, "Re-fetch all prices, not only missing ones")
	catalogFile = flag.String("file", "", "Catalog file to update (default: from config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := *catalogFile
	if path == "" {
		if path, err = cfg.CatalogFile(); err != nil {
			log.Fatalf("Failed to resolve catalog path: %v", err)
		}
	}

	cards, err := catalog.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		os.Exit(1)
	}

	// Price history is best-effort: a broken database disables recording
	// but never blocks the price update itself.
	var history pricing.HistoryRecorder
	if dbPath, err := cfg.DatabasePath(); err == nil {
		dbConfig := storage.DefaultConfig(dbPath)
		dbConfig.AutoMigrate = true
		if db, err := storage.Open(dbConfig); err != nil {
			log.Printf("price history disabled: %v", err)
		} else {
			defer func() { _ = db.Close() }()
			history = storage.NewPriceHistoryRepository(db.Conn())
		}
	}

	updater := &pricing.Updater{
		Client:  pricing.NewClientWith(cfg.Pricing.BaseURL, cfg.PricingRateLimit()),
		History: history,
		Force:   *forceAll,
		Progress: func(fetched, total int) {
			if fetched%10 == 0 {
				fmt.Printf("  %d/%d fetched...\r", fetched, total)
			}
		},
	}

	candidates := updater.Candidates(cards)
	fmt.Printf("TCGplayer price fetch: %d cards to update (%d total)\n", len(candidates), len(cards))
	if !*forceAll {
		fmt.Println("  (use -force to re-fetch all prices)")
	}
	fmt.Println()

	result, err := updater.Run(context.Background(), cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		os.Exit(1)
	}

	if result.RateLimited {
		fmt.Printf("\n  Rate limited after %d requests. Saving progress...\n", result.Fetched)
	}
	fmt.Printf("\n  Fetched: %d, Failed: %d\n", result.Fetched, result.Failed)

	if err := catalog.WriteFile(path, cards); err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done! Prices saved to %s\n", path)

	if result.RateLimited {
		fmt.Println("\nTip: Wait a few minutes and re-run to fetch remaining prices.")
	}
}
