// Package pricing fetches per-card market prices and applies them to the
// catalog file.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for TCGplayer price lookups.
	DefaultBaseURL = "https://mpapi.tcgplayer.com"

	// DefaultRateLimit is the delay between price requests. The provider
	// throttles aggressively, so this is far above the catalog fetch delay.
	DefaultRateLimit = 500 * time.Millisecond

	printingNormal = "Normal"
)

// ErrRateLimited signals that the provider rejected a request for rate
// limiting and no further requests should be issued this run.
var ErrRateLimited = errors.New("rate limited by price provider")

// PricePoint is one printing's price snapshot as returned by the provider.
type PricePoint struct {
	PrintingType      string   `json:"printingType"`
	MarketPrice       *float64 `json:"marketPrice"`
	ListedMedianPrice *float64 `json:"listedMedianPrice"`
}

// CardPrices holds the extracted "Normal" printing prices for one card.
// Either price may be nil when the provider has no data for it; HasNormal is
// false when the product has no "Normal" printing at all.
type CardPrices struct {
	HasNormal bool
	Market    *string
	Median    *string
}

// Client fetches price points from the TCGplayer marketplace API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a price client with the default base URL and delay.
func NewClient() *Client {
	return NewClientWith(DefaultBaseURL, DefaultRateLimit)
}

// NewClientWith creates a price client against a specific base URL with a
// fixed inter-request delay.
func NewClientWith(baseURL string, delay time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// FetchPrices fetches the price points for one product and extracts the
// "Normal" printing. A 403 response maps to ErrRateLimited; a product with
// no "Normal" printing yields an empty CardPrices, not an error.
func (c *Client) FetchPrices(ctx context.Context, productID int) (CardPrices, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return CardPrices{}, err
	}

	reqURL := fmt.Sprintf("%s/v2/product/%d/pricepoints", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return CardPrices{}, fmt.Errorf("create price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CardPrices{}, fmt.Errorf("fetch prices for product %d: %w", productID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return CardPrices{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return CardPrices{}, fmt.Errorf("price provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CardPrices{}, fmt.Errorf("read price response: %w", err)
	}

	var points []PricePoint
	if err := json.Unmarshal(body, &points); err != nil {
		return CardPrices{}, fmt.Errorf("parse price response: %w", err)
	}

	var prices CardPrices
	for i := range points {
		if points[i].PrintingType != printingNormal {
			continue
		}
		prices.HasNormal = true
		prices.Market = formatPrice(points[i].MarketPrice)
		prices.Median = formatPrice(points[i].ListedMedianPrice)
		break
	}

	return prices, nil
}

func formatPrice(v *float64) *string {
	if v == nil || *v == 0 {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}
