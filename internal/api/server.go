// Package api provides the REST API exposing the catalog, the collection
// and the aggregate statistics.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/storage"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int

	catalog *catalog.Catalog
	store   *collection.Store
	history storage.PriceHistoryRepository
}

// Config holds configuration for the API server.
type Config struct {
	Port int
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{Port: 8080}
}

// NewServer creates a new API server. The history repository may be nil when
// no price database is available; the price history endpoint then returns
// empty results.
func NewServer(cfg *Config, cat *catalog.Catalog, store *collection.Store, history storage.PriceHistoryRepository) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		router:  chi.NewRouter(),
		port:    cfg.Port,
		catalog: cat,
		store:   store,
		history: history,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json content-type for
// requests with bodies.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}
			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Router returns the configured router, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the API server in a goroutine.
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("API server starting on port %d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
		}
	}()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}
