package snapshot

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/config"
	"github.com/sectorlab/sectorpulse/pkg/database"
)

// Test weeks sort below any real ISO week id so GetLatestBefore
// queries cannot pick up rows from outside the test.
const (
	testWeekA = "0001-W01"
	testWeekB = "0001-W02"
	testWeekC = "0001-W03"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()

	// Skip if DATABASE_URL is not set
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.New(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = db.Pool.Exec(ctx, `CREATE SCHEMA IF NOT EXISTS structure`)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS structure.weekly_rows (
			week         text             NOT NULL,
			generated_at timestamptz      NOT NULL,
			position     int              NOT NULL,
			ticker       text             NOT NULL,
			return_4w    double precision NOT NULL,
			return_5d    double precision NOT NULL,
			structure    text             NOT NULL,
			rank         int              NOT NULL,
			leadership   text             NOT NULL,
			PRIMARY KEY (week, ticker)
		)
	`)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(),
			`DELETE FROM structure.weekly_rows WHERE week IN ($1, $2, $3)`,
			testWeekA, testWeekB, testWeekC)
		db.Close()
	})

	return NewRepository(db.Pool)
}

func sampleSummary(week string) *contracts.WeeklySummary {
	return &contracts.WeeklySummary{
		Week:        week,
		GeneratedAt: time.Date(2026, 7, 31, 22, 30, 0, 0, time.UTC),
		Rows: []contracts.SummaryRow{
			// Deliberately not alphabetical: round trips must keep
			// position order, not ticker order.
			{Ticker: "XLK", Return4W: 0.041, Return5D: 0.012, Structure: contracts.StructureHHHL, Rank: 1, Leadership: contracts.LeadershipPersistent},
			{Ticker: "XLE", Return4W: -0.023, Return5D: -0.007, Structure: contracts.StructureLHLL, Rank: 3, Leadership: contracts.LeadershipWeak},
			{Ticker: "XLP", Return4W: 0.008, Return5D: 0.001, Structure: contracts.StructureRange, Rank: 2, Leadership: contracts.LeadershipNeutral},
		},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	saved := sampleSummary(testWeekA)
	require.NoError(t, repo.Save(ctx, saved))

	got, err := repo.GetByWeek(ctx, testWeekA)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, testWeekA, got.Week)
	assert.WithinDuration(t, saved.GeneratedAt, got.GeneratedAt, time.Second)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, []string{"XLK", "XLE", "XLP"}, got.Tickers(), "position order survives the round trip")
	assert.Equal(t, saved.Rows, got.Rows)
}

func TestRepositorySaveOverwritesWeek(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSummary(testWeekA)))

	rerun := sampleSummary(testWeekA)
	rerun.Rows[0].Rank = 2
	rerun.Rows[2].Rank = 1
	rerun.Rows[2].Structure = contracts.StructureHHHL
	require.NoError(t, repo.Save(ctx, rerun))

	got, err := repo.GetByWeek(ctx, testWeekA)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Rows, 3, "re-running a week must not duplicate rows")
	assert.Equal(t, rerun.Rows, got.Rows)
}

func TestRepositoryGetByWeekMissing(t *testing.T) {
	repo := setupRepository(t)

	got, err := repo.GetByWeek(context.Background(), testWeekC)
	require.NoError(t, err)
	assert.Nil(t, got, "absent week is (nil, nil), not an error")
}

func TestRepositoryGetLatestBefore(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSummary(testWeekA)))
	require.NoError(t, repo.Save(ctx, sampleSummary(testWeekB)))

	prior, err := repo.GetLatestBefore(ctx, testWeekC)
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, testWeekB, prior.Week, "most recent strictly-prior week wins")
	assert.Len(t, prior.Rows, 3)

	prior, err = repo.GetLatestBefore(ctx, testWeekB)
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, testWeekA, prior.Week)

	prior, err = repo.GetLatestBefore(ctx, testWeekA)
	require.NoError(t, err)
	assert.Nil(t, prior, "no prior week is (nil, nil), not an error")
}

func TestRepositoryWeeks(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSummary(testWeekA)))
	require.NoError(t, repo.Save(ctx, sampleSummary(testWeekB)))

	weeks, err := repo.Weeks(ctx)
	require.NoError(t, err)

	// Newest first; other weeks may exist in a shared database, so
	// only the relative order of the test weeks is asserted.
	idxA, idxB := -1, -1
	for i, w := range weeks {
		switch w {
		case testWeekA:
			idxA = i
		case testWeekB:
			idxB = i
		}
	}
	require.NotEqual(t, -1, idxA)
	require.NotEqual(t, -1, idxB)
	assert.Less(t, idxB, idxA, "later week listed before earlier week")
}
