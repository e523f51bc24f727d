package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/averyquinn/set-tracker/internal/catalog"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

type memoryHistory struct {
	mu      sync.Mutex
	records []string
}

func (h *memoryHistory) Record(ctx context.Context, cardID string, market, median *string, observedAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, cardID)
	return nil
}

func TestCandidates(t *testing.T) {
	cards := []catalog.Card{
		{ID: "no-product"},
		{ID: "fresh", TCGPlayerID: intPtr(1)},
		{ID: "priced", TCGPlayerID: intPtr(2), PriceMedian: strPtr("1.00")},
	}

	u := &Updater{}
	got := u.Candidates(cards)
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("candidates = %v, want just the unpriced card", ids(got))
	}

	u.Force = true
	got = u.Candidates(cards)
	if len(got) != 2 || got[0].ID != "fresh" || got[1].ID != "priced" {
		t.Errorf("forced candidates = %v, want both carded products", ids(got))
	}
}

func ids(cards []*catalog.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestRunAppliesPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/product/1/pricepoints":
			fmt.Fprint(w, `[{"printingType":"Normal","marketPrice":2.5,"listedMedianPrice":3}]`)
		case "/v2/product/2/pricepoints":
			// Normal printing with no market price.
			fmt.Fprint(w, `[{"printingType":"Normal","listedMedianPrice":0.5}]`)
		case "/v2/product/3/pricepoints":
			// No Normal printing at all.
			fmt.Fprint(w, `[{"printingType":"Foil","marketPrice":10}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cards := []catalog.Card{
		{ID: "a", Name: "A", TCGPlayerID: intPtr(1), PriceUSD: strPtr("1.00")},
		{ID: "b", Name: "B", TCGPlayerID: intPtr(2), PriceUSD: strPtr("0.40")},
		{ID: "c", Name: "C", TCGPlayerID: intPtr(3), PriceUSD: strPtr("9.00")},
		{ID: "d", Name: "D", PriceUSD: strPtr("0.10")},
	}

	history := &memoryHistory{}
	u := &Updater{
		Client:  NewClientWith(server.URL, time.Millisecond),
		History: history,
	}

	res, err := u.Run(context.Background(), cards)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Candidates != 3 || res.Fetched != 3 || res.Failed != 0 || res.RateLimited {
		t.Errorf("result = %+v", res)
	}

	if cards[0].PriceMarket == nil || *cards[0].PriceMarket != "2.5" {
		t.Errorf("a market = %v, want 2.5", cards[0].PriceMarket)
	}
	if cards[0].PriceMedian == nil || *cards[0].PriceMedian != "3" {
		t.Errorf("a median = %v, want 3", cards[0].PriceMedian)
	}
	// Market missing, snapshot price fills in.
	if cards[1].PriceMarket == nil || *cards[1].PriceMarket != "0.40" {
		t.Errorf("b market = %v, want snapshot 0.40", cards[1].PriceMarket)
	}
	// No Normal printing leaves the median unset, snapshot still applied.
	if cards[2].PriceMedian != nil {
		t.Errorf("c median = %v, want nil", cards[2].PriceMedian)
	}
	if cards[2].PriceMarket == nil || *cards[2].PriceMarket != "9.00" {
		t.Errorf("c market = %v, want snapshot 9.00", cards[2].PriceMarket)
	}
	// Cards without a product id still get the fallback.
	if cards[3].PriceMarket == nil || *cards[3].PriceMarket != "0.10" {
		t.Errorf("d market = %v, want snapshot 0.10", cards[3].PriceMarket)
	}

	// History observed the two cards with a Normal printing.
	if len(history.records) != 2 || history.records[0] != "a" || history.records[1] != "b" {
		t.Errorf("history records = %v", history.records)
	}
}

func TestRunStopsOnRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `[{"printingType":"Normal","marketPrice":1}]`)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	cards := []catalog.Card{
		{ID: "a", Name: "A", TCGPlayerID: intPtr(1)},
		{ID: "b", Name: "B", TCGPlayerID: intPtr(2)},
		{ID: "c", Name: "C", TCGPlayerID: intPtr(3)},
	}

	u := &Updater{Client: NewClientWith(server.URL, time.Millisecond)}
	res, err := u.Run(context.Background(), cards)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if calls != 2 {
		t.Errorf("made %d requests, want 2 (no requests after the rate limit)", calls)
	}
	if !res.RateLimited {
		t.Error("RateLimited = false, want true")
	}
	if res.Fetched != 1 || res.Failed != 2 {
		t.Errorf("result = %+v, want 1 fetched and 2 failed", res)
	}
	// The successful fetch survives for the caller to persist.
	if cards[0].PriceMarket == nil || *cards[0].PriceMarket != "1" {
		t.Errorf("a market = %v, want 1", cards[0].PriceMarket)
	}
}

func TestRunContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	cards := []catalog.Card{{ID: "a", Name: "A", TCGPlayerID: intPtr(1)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := &Updater{Client: NewClientWith(server.URL, time.Millisecond)}
	if _, err := u.Run(ctx, cards); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRunProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"printingType":"Normal","marketPrice":1}]`)
	}))
	defer server.Close()

	cards := []catalog.Card{
		{ID: "a", Name: "A", TCGPlayerID: intPtr(1)},
		{ID: "b", Name: "B", TCGPlayerID: intPtr(2)},
	}

	var seen []int
	u := &Updater{
		Client:   NewClientWith(server.URL, time.Millisecond),
		Progress: func(fetched, total int) { seen = append(seen, fetched) },
	}
	if _, err := u.Run(context.Background(), cards); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("progress calls = %v, want [1 2]", seen)
	}
}
