package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyquinn/set-tracker/internal/api/handlers"
	"github.com/averyquinn/set-tracker/internal/api/response"
	"github.com/averyquinn/set-tracker/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		cardHandler := handlers.NewCardHandler(s.catalog, s.store, s.history)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Get("/{cardID}", cardHandler.GetCard)
			r.Get("/{cardID}/prices", cardHandler.GetPriceHistory)
		})

		collectionHandler := handlers.NewCollectionHandler(s.catalog, s.store)
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.GetCollection)
			r.Get("/{cardID}", collectionHandler.GetRecord)
			r.Put("/{cardID}", collectionHandler.UpdateRecord)
			r.Post("/bulk-collect", collectionHandler.BulkCollect)
		})

		statsHandler := handlers.NewStatsHandler(s.catalog, s.store)
		r.Get("/stats", statsHandler.GetStats)
	})
}

// healthCheck reports server liveness and catalog size.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"cards":   s.catalog.Len(),
		"version": version.GetVersion(),
	})
}
