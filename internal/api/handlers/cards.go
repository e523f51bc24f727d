// Package handlers implements the HTTP handlers for the REST API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/averyquinn/set-tracker/internal/api/response"
	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/filter"
	"github.com/averyquinn/set-tracker/internal/storage"
)

// CardHandler handles catalog-related API requests.
type CardHandler struct {
	catalog *catalog.Catalog
	store   *collection.Store
	history storage.PriceHistoryRepository
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cat *catalog.Catalog, store *collection.Store, history storage.PriceHistoryRepository) *CardHandler {
	return &CardHandler{catalog: cat, store: store, history: history}
}

// ListCards returns the catalog filtered by the query parameters, in the
// same way the interactive grid filters it.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := filter.Filters{
		Search: q.Get("search"),
		Color:  q.Get("color"),
		Rarity: q.Get("rarity"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}

	switch f.Status {
	case filter.StatusAll, filter.StatusCollected, filter.StatusMissing:
	default:
		response.BadRequest(w, errors.New("status must be empty, \"collected\" or \"missing\""))
		return
	}
	switch f.Sort {
	case filter.SortNone, filter.SortAsc, filter.SortDesc:
	default:
		response.BadRequest(w, errors.New("sort must be empty, \"low\" or \"high\""))
		return
	}

	cards := filter.Apply(h.catalog.Cards(), h.store, f)
	response.Success(w, cards)
}

// GetCard returns a single catalog entry.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	card := h.catalog.FindByID(cardID)
	if card == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	response.Success(w, card)
}

// GetPriceHistory returns recorded price observations for a card, newest
// first.
func (h *CardHandler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	if h.catalog.FindByID(cardID) == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	if h.history == nil {
		response.Success(w, []*storage.PriceObservation{})
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	history, err := h.history.GetHistory(r.Context(), cardID, limit)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if history == nil {
		history = []*storage.PriceObservation{}
	}

	response.Success(w, history)
}
