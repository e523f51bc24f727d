package handlers

import (
	"net/http"

	"github.com/averyquinn/set-tracker/internal/api/response"
	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/stats"
)

// StatsHandler serves aggregate collection statistics.
type StatsHandler struct {
	catalog *catalog.Catalog
	store   *collection.Store
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(cat *catalog.Catalog, store *collection.Store) *StatsHandler {
	return &StatsHandler{catalog: cat, store: store}
}

// statsPayload is the wire form of a statistics summary.
type statsPayload struct {
	TotalCards        int     `json:"total_cards"`
	CollectedCards    int     `json:"collected_cards"`
	CompletionPercent float64 `json:"completion_percent"`
	OwnedValue        string  `json:"owned_value"`
	SetValue          string  `json:"set_value"`
	AveragePrice      string  `json:"average_price"`
}

// GetStats computes and returns the current statistics over the full
// catalog.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	summary := stats.Compute(h.catalog.Cards(), h.store)

	response.Success(w, statsPayload{
		TotalCards:        summary.TotalCards,
		CollectedCards:    summary.CollectedCards,
		CompletionPercent: summary.CompletionPercent(),
		OwnedValue:        stats.FormatAmount(summary.OwnedValue),
		SetValue:          stats.FormatAmount(summary.SetValue),
		AveragePrice:      stats.FormatAmount(summary.AveragePrice()),
	})
}
