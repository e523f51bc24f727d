// Package scryfall provides the card-search client used to populate the set
// catalog.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/averyquinn/set-tracker/internal/catalog"
)

const (
	// DefaultBaseURL is the base URL for Scryfall API requests.
	DefaultBaseURL = "https://api.scryfall.com"

	// DefaultRateLimit is the delay kept between search requests. Scryfall
	// asks for 50-100ms; paginated ingestion stays comfortably above that.
	DefaultRateLimit = 150 * time.Millisecond

	userAgent = "set-tracker/1.0"
)

// Client talks to the Scryfall card-search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Scryfall client with the default base URL and rate
// limit.
func NewClient() *Client {
	return NewClientWith(DefaultBaseURL, DefaultRateLimit)
}

// NewClientWith creates a Scryfall client against a specific base URL with a
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

// searchResponse is one page of /cards/search results.
type searchResponse struct {
	Data    []apiCard `json:"data"`
	HasMore bool      `json:"has_more"`
}

// apiCard is the subset of Scryfall's card object the catalog needs.
type apiCard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CollectorNumber string   `json:"collector_number"`
	TypeLine        string   `json:"type_line"`
	ManaCost        string   `json:"mana_cost"`
	Rarity          string   `json:"rarity"`
	Colors          []string `json:"colors"`
	Artist          string   `json:"artist"`
	ImageURIs       *struct {
		Small  string `json:"small"`
		Normal string `json:"normal"`
	} `json:"image_uris"`
	Prices *struct {
		USD *string `json:"usd"`
	} `json:"prices"`
	TCGPlayerID *int `json:"tcgplayer_id"`
}

func (a *apiCard) toCard() catalog.Card {
	card := catalog.Card{
		ID:              a.ID,
		Name:            a.Name,
		CollectorNumber: a.CollectorNumber,
		TypeLine:        a.TypeLine,
		ManaCost:        a.ManaCost,
		Rarity:          a.Rarity,
		Colors:          a.Colors,
		Artist:          a.Artist,
		TCGPlayerID:     a.TCGPlayerID,
	}
	if card.Colors == nil {
		card.Colors = []string{}
	}
	if a.ImageURIs != nil {
		card.ImageNormal = a.ImageURIs.Normal
		card.ImageSmall = a.ImageURIs.Small
	}
	if a.Prices != nil {
		card.PriceUSD = a.Prices.USD
	}
	return card
}

// PageFunc is called after each fetched page with the page number, the cards
// on that page and the running total. Used for progress output.
type PageFunc func(page, got, total int)

// SearchSet fetches every card of the named set, following pagination until
// the API signals no more pages. Results come back in the API's order;
// callers sort as needed.
func (c *Client) SearchSet(ctx context.Context, setCode string, onPage PageFunc) ([]catalog.Card, error) {
	var all []catalog.Card
	page := 1

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.searchPage(ctx, setCode, page)
		if err != nil {
			return nil, err
		}

		for i := range resp.Data {
			all = append(all, resp.Data[i].toCard())
		}
		if onPage != nil {
			onPage(page, len(resp.Data), len(all))
		}

		if !resp.HasMore {
			return all, nil
		}
		page++
	}
}

func (c *Client) searchPage(ctx context.Context, setCode string, page int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("q", "set:"+setCode)
	q.Set("order", "name")
	q.Set("page", fmt.Sprintf("%d", page))
	reqURL := fmt.Sprintf("%s/cards/search?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall returned status %d: %s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	return &search, nil
}
