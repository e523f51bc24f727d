package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyquinn/set-tracker/internal/api/response"
	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
)

// CollectionHandler handles ownership-record API requests.
type CollectionHandler struct {
	catalog *catalog.Catalog
	store   *collection.Store
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(cat *catalog.Catalog, store *collection.Store) *CollectionHandler {
	return &CollectionHandler{catalog: cat, store: store}
}

// GetCollection returns the full id -> record mapping.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Records())
}

// GetRecord returns the ownership record for one card. A card that has never
// been touched yields the default record without persisting it.
func (h *CollectionHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	if h.catalog.FindByID(cardID) == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	rec, ok := h.store.Get(cardID)
	if !ok {
		rec = collection.Record{
			Condition: collection.DefaultCondition,
			Quantity:  1,
		}
	}

	response.Success(w, rec)
}

// UpdateRecord replaces the ownership record for one card.
func (h *CollectionHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	if h.catalog.FindByID(cardID) == nil {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	var rec collection.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid record: %w", err))
		return
	}

	if err := h.store.Update(cardID, rec); err != nil {
		response.BadRequest(w, err)
		return
	}

	response.Success(w, rec)
}

// bulkCollectRequest is the request body for BulkCollect.
type bulkCollectRequest struct {
	IDs []string `json:"ids"`
}

// bulkCollectResult reports how many records were updated.
type bulkCollectResult struct {
	Collected int `json:"collected"`
}

// BulkCollect marks every given card as collected. Unknown ids are rejected
// before anything is written.
func (h *CollectionHandler) BulkCollect(w http.ResponseWriter, r *http.Request) {
	var req bulkCollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request: %w", err))
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, errors.New("ids cannot be empty"))
		return
	}

	for _, id := range req.IDs {
		if h.catalog.FindByID(id) == nil {
			response.BadRequest(w, fmt.Errorf("unknown card id %q", id))
			return
		}
	}

	if err := h.store.BulkCollect(req.IDs); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, bulkCollectResult{Collected: len(req.IDs)})
}
