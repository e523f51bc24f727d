package pricing

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/averyquinn/set-tracker/internal/catalog"
)

// HistoryRecorder receives every successfully fetched price observation.
type HistoryRecorder interface {
	Record(ctx context.Context, cardID string, market, median *string, observedAt time.Time) error
}

// Result summarizes one price update pass.
type Result struct {
	Candidates  int  // cards selected for fetching
	Fetched     int  // cards whose prices were fetched
	Failed      int  // per-card failures, including those skipped after a rate limit
	RateLimited bool // the provider signalled a rate limit during the run
}

// Updater runs a price update pass over a catalog.
type Updater struct {
	Client  *Client
	History HistoryRecorder // optional
	Force   bool            // re-fetch cards that already have a median price

	// Progress, when set, is called after every successful fetch.
	Progress func(fetched, total int)
}

// Candidates returns the cards the pass will fetch: cards with a marketplace
// product id that lack a median price, or all of them under Force.
func (u *Updater) Candidates(cards []catalog.Card) []*catalog.Card {
	var out []*catalog.Card
	for i := range cards {
		c := &cards[i]
		if c.TCGPlayerID == nil {
			continue
		}
		if !u.Force && c.PriceMedian != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Run fetches prices for every candidate, writing results into the cards in
// place. A rate-limit signal stops further requests and counts all remaining
// candidates as failed, but is not an error: whatever was fetched stays in
// the slice for the caller to persist. After the pass, every card without a
// market price falls back to its snapshot price.
func (u *Updater) Run(ctx context.Context, cards []catalog.Card) (Result, error) {
	candidates := u.Candidates(cards)
	res := Result{Candidates: len(candidates)}

	for _, card := range candidates {
		if res.RateLimited {
			res.Failed++
			continue
		}

		prices, err := u.Client.FetchPrices(ctx, *card.TCGPlayerID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return res, err
			}
			if errors.Is(err, ErrRateLimited) {
				res.RateLimited = true
			} else {
				log.Printf("price fetch failed for %s: %v", card.Name, err)
			}
			res.Failed++
			continue
		}

		if prices.HasNormal {
			if prices.Market != nil {
				card.PriceMarket = prices.Market
			} else {
				card.PriceMarket = card.PriceUSD
			}
			card.PriceMedian = prices.Median

			if u.History != nil {
				if err := u.History.Record(ctx, card.ID, card.PriceMarket, card.PriceMedian, time.Now()); err != nil {
					log.Printf("record price history for %s: %v", card.Name, err)
				}
			}
		}

		res.Fetched++
		if u.Progress != nil {
			u.Progress(res.Fetched, len(candidates))
		}
	}

	// Every card ends the pass with some market price when one is known.
	for i := range cards {
		if cards[i].PriceMarket == nil {
			cards[i].PriceMarket = cards[i].PriceUSD
		}
	}

	return res, nil
}
