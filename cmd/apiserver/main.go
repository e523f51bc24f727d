// Command apiserver exposes the catalog, the collection and the statistics
// over a REST API, for browser frontends and scripting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/averyquinn/set-tracker/internal/api"
	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/config"
	"github.com/averyquinn/set-tracker/internal/storage"
)

var port = flag.Int("port", 0, "API server port (default: from config)")

func main() {
	flag.Parse()

	fmt.Println("Set Tracker - REST API Server")
	fmt.Println("=============================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	listenPort := *port
	if listenPort == 0 {
		listenPort = cfg.API.Port
	}

	catalogFile, err := cfg.CatalogFile()
	if err != nil {
		log.Fatalf("Failed to resolve catalog path: %v", err)
	}

	cat, err := catalog.Load(catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load card data: %v\nRun: fetch-cards\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catalog: %s (%d cards)\n", catalogFile, cat.Len())

	collectionFile, err := cfg.CollectionFile()
	if err != nil {
		log.Fatalf("Failed to resolve collection path: %v", err)
	}
	store := collection.Open(collectionFile)
	fmt.Printf("Collection: %s (%d records)\n", collectionFile, store.Len())

	var history storage.PriceHistoryRepository
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

	server := api.NewServer(&api.Config{Port: listenPort}, cat, store, history)
	server.Start()
	fmt.Printf("Listening on port %d\n", listenPort)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	fmt.Println("Server stopped")
}
