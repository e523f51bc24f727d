// Command set-tracker is the interactive collection tracker for a single
// Magic: The Gathering set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/charts"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/config"
	"github.com/averyquinn/set-tracker/internal/ui"
)

var (
	catalogPath    = flag.String("catalog", "", "Path to the catalog file (default: from config)")
	collectionPath = flag.String("collection", "", "Path to the collection file (default: from config)")
	reportPath     = flag.String("report", "", "Write an HTML statistics report to this path and exit")
	openReport     = flag.Bool("open", false, "Open the report in the default browser (with -report)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	catalogFile := *catalogPath
	if catalogFile == "" {
		if catalogFile, err = cfg.CatalogFile(); err != nil {
			log.Fatalf("Failed to resolve catalog path: %v", err)
		}
	}

	collectionFile := *collectionPath
	if collectionFile == "" {
		if collectionFile, err = cfg.CollectionFile(); err != nil {
			log.Fatalf("Failed to resolve collection path: %v", err)
		}
	}

	store := collection.Open(collectionFile)

	if *reportPath != "" {
		runReport(catalogFile, *reportPath, store)
		return
	}

	var model ui.Model
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		model = ui.NewLoadFailed(store, err)
	} else {
		model = ui.New(cat, store)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Reload the grid when an ingestion run rewrites the catalog file.
	watcher, err := catalog.NewWatcher(catalogFile,
		func(cat *catalog.Catalog) {
			p.Send(ui.CatalogReloadedMsg{Catalog: cat})
		},
		func(err error) {
			log.Printf("catalog watcher: %v", err)
		},
	)
	if err != nil {
		log.Printf("catalog watching disabled: %v", err)
	} else {
		defer func() { _ = watcher.Close() }()
	}

	if _, err := p.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}

func runReport(catalogFile, outPath string, store *collection.Store) {
	cards, err := catalog.ReadFile(catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load card data: %v\nRun: fetch-cards\n", err)
		os.Exit(1)
	}

	if err := charts.WriteReport(outPath, cards, store); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", outPath)

	if *openReport {
		if err := charts.OpenInBrowser(outPath); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	}
}
