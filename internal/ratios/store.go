package ratios

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sectorlab/sectorpulse/internal/external/stooq"
)

// Close is one instrument's closing level for a session
type Close struct {
	Ticker string
	Date   time.Time
	Close  float64
}

// Store persists daily closes. All close-price reads and writes go
// through here.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new close-price store
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SaveBars upserts fetched daily bars as closes
func (s *Store) SaveBars(ctx context.Context, bars []stooq.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO market.daily_closes (ticker, trade_date, close_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker, trade_date) DO UPDATE SET
			close_price = EXCLUDED.close_price
	`

	for _, bar := range bars {
		if _, err := s.pool.Exec(ctx, query, bar.Ticker, bar.Date, bar.Close); err != nil {
			return err
		}
	}
	return nil
}

// GetLastN retrieves the most recent n sessions for a ticker at or
// before asOf, oldest first.
func (s *Store) GetLastN(ctx context.Context, ticker string, n int, asOf time.Time) ([]Close, error) {
	query := `
		SELECT ticker, trade_date, close_price
		FROM market.daily_closes
		WHERE ticker = $1 AND trade_date <= $2
		ORDER BY trade_date DESC
		LIMIT $3
	`

	rows, err := s.pool.Query(ctx, query, ticker, asOf, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []Close
	for rows.Next() {
		var c Close
		if err := rows.Scan(&c.Ticker, &c.Date, &c.Close); err != nil {
			return nil, err
		}
		closes = append(closes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	return closes, nil
}

// GetByDates retrieves a ticker's closes for an explicit session
// list, keyed by ISO date. String keys sidestep timezone drift when
// matching sessions across tickers.
func (s *Store) GetByDates(ctx context.Context, ticker string, dates []time.Time) (map[string]float64, error) {
	query := `
		SELECT trade_date, close_price
		FROM market.daily_closes
		WHERE ticker = $1 AND trade_date = ANY($2)
	`

	rows, err := s.pool.Query(ctx, query, ticker, dates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	closes := make(map[string]float64, len(dates))
	for rows.Next() {
		var (
			date  time.Time
			price float64
		)
		if err := rows.Scan(&date, &price); err != nil {
			return nil, err
		}
		closes[date.Format("2006-01-02")] = price
	}
	return closes, rows.Err()
}

// LatestSession returns the most recent stored session for a ticker,
// or the zero time when none exists.
func (s *Store) LatestSession(ctx context.Context, ticker string) (time.Time, error) {
	query := `
		SELECT COALESCE(MAX(trade_date), '0001-01-01'::date)
		FROM market.daily_closes
		WHERE ticker = $1
	`

	var latest time.Time
	if err := s.pool.QueryRow(ctx, query, ticker).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	return latest, nil
}
