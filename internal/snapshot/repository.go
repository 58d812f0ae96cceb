package snapshot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// Repository implements contracts.SnapshotRepository over Postgres.
// One row per instrument per week; the position column preserves the
// configured universe order across round trips.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new snapshot repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save upserts every row of a weekly summary. Re-running a week
// overwrites that week's rows in place.
func (r *Repository) Save(ctx context.Context, summary *contracts.WeeklySummary) error {
	query := `
		INSERT INTO structure.weekly_rows
			(week, generated_at, position, ticker, return_4w, return_5d, structure, rank, leadership)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (week, ticker) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			position = EXCLUDED.position,
			return_4w = EXCLUDED.return_4w,
			return_5d = EXCLUDED.return_5d,
			structure = EXCLUDED.structure,
			rank = EXCLUDED.rank,
			leadership = EXCLUDED.leadership
	`

	for i, row := range summary.Rows {
		_, err := r.pool.Exec(ctx, query,
			summary.Week, summary.GeneratedAt, i, row.Ticker,
			row.Return4W, row.Return5D, string(row.Structure), row.Rank, string(row.Leadership),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByWeek retrieves one week's summary. Returns (nil, nil) when the
// week has no snapshot.
func (r *Repository) GetByWeek(ctx context.Context, week string) (*contracts.WeeklySummary, error) {
	query := `
		SELECT week, generated_at, ticker, return_4w, return_5d, structure, rank, leadership
		FROM structure.weekly_rows
		WHERE week = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &contracts.WeeklySummary{}
	for rows.Next() {
		var (
			row                   contracts.SummaryRow
			structure, leadership string
		)
		if err := rows.Scan(
			&summary.Week, &summary.GeneratedAt, &row.Ticker,
			&row.Return4W, &row.Return5D, &structure, &row.Rank, &leadership,
		); err != nil {
			return nil, err
		}
		row.Structure = contracts.StructureLabel(structure)
		row.Leadership = contracts.LeadershipLabel(leadership)
		summary.Rows = append(summary.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(summary.Rows) == 0 {
		return nil, nil
	}
	return summary, nil
}

// GetLatestBefore retrieves the most recent snapshot strictly before
// the given week. Week ids are zero-padded ISO strings, so the
// ordering is plain lexicographic. Returns (nil, nil) when no prior
// week exists.
func (r *Repository) GetLatestBefore(ctx context.Context, week string) (*contracts.WeeklySummary, error) {
	query := `
		SELECT week
		FROM structure.weekly_rows
		WHERE week < $1
		ORDER BY week DESC
		LIMIT 1
	`

	var prior string
	err := r.pool.QueryRow(ctx, query, week).Scan(&prior)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.GetByWeek(ctx, prior)
}

// Weeks lists every stored week id, newest first
func (r *Repository) Weeks(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT week
		FROM structure.weekly_rows
		ORDER BY week DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, err
		}
		weeks = append(weeks, week)
	}
	return weeks, rows.Err()
}
