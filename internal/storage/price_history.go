package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PriceObservation is one recorded price snapshot for a card.
type PriceObservation struct {
	ID         int64
	CardID     string
	Market     *string
	Median     *string
	ObservedAt time.Time
}

// PriceHistoryRepository stores and queries per-card price observations.
type PriceHistoryRepository interface {
	// Record inserts one observation.
	Record(ctx context.Context, cardID string, market, median *string, observedAt time.Time) error

	// GetHistory returns up to limit observations for a card, newest first.
	GetHistory(ctx context.Context, cardID string, limit int) ([]*PriceObservation, error)

	// Latest returns the most recent observation for a card, or nil when
	// none has been recorded.
	Latest(ctx context.Context, cardID string) (*PriceObservation, error)
}

type priceHistoryRepository struct {
	db *sql.DB
}

// NewPriceHistoryRepository creates a price history repository.
func NewPriceHistoryRepository(db *sql.DB) PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

func (r *priceHistoryRepository) Record(ctx context.Context, cardID string, market, median *string, observedAt time.Time) error {
	query := `
		INSERT INTO price_history (card_id, price_market, price_median, observed_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, cardID, market, median, observedAt)
	if err != nil {
		return fmt.Errorf("insert price observation: %w", err)
	}

	return nil
}

func (r *priceHistoryRepository) GetHistory(ctx context.Context, cardID string, limit int) ([]*PriceObservation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, card_id, price_market, price_median, observed_at
		FROM price_history
		WHERE card_id = ?
		ORDER BY observed_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history []*PriceObservation
	for rows.Next() {
		obs := &PriceObservation{}
		if err := rows.Scan(&obs.ID, &obs.CardID, &obs.Market, &obs.Median, &obs.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan price observation: %w", err)
		}
		history = append(history, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price history: %w", err)
	}

	return history, nil
}

func (r *priceHistoryRepository) Latest(ctx context.Context, cardID string) (*PriceObservation, error) {
	query := `
		SELECT id, card_id, price_market, price_median, observed_at
		FROM price_history
		WHERE card_id = ?
		ORDER BY observed_at DESC
		LIMIT 1
	`

	obs := &PriceObservation{}
	err := r.db.QueryRowContext(ctx, query, cardID).
		Scan(&obs.ID, &obs.CardID, &obs.Market, &obs.Median, &obs.ObservedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest price: %w", err)
	}

	return obs, nil
}
