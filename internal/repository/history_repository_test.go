package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/testutil"
)

func TestHistoryRepositoryAppend(t *testing.T) {
	t.Run("truncates the date to a day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewHistoryRepository(db)

		stamp := time.Date(2024, 6, 3, 16, 45, 12, 0, time.UTC)
		point, err := repo.Append(stamp, 1000)
		require.NoError(t, err)
		assert.NotEmpty(t, point.ID)
		assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), point.Date)

		series, err := repo.GetSeries()
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.True(t, point.Date.Equal(series[0].Date))
	})

	t.Run("same day appends a second row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewHistoryRepository(db)

		day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		first, err := repo.Append(day, 1000)
		require.NoError(t, err)
		second, err := repo.Append(day, 1010)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		series, err := repo.GetSeries()
		require.NoError(t, err)
		assert.Len(t, series, 2)
	})
}

func TestHistoryRepositoryGetSeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewHistoryRepository(db)

	t.Run("empty log", func(t *testing.T) {
		series, err := repo.GetSeries()
		require.NoError(t, err)
		assert.Empty(t, series)
		assert.NotNil(t, series)
	})

	t.Run("ordered by date regardless of insertion order", func(t *testing.T) {
		day := func(d int) time.Time {
			return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
		}

		testutil.CreateHistoryPoint(t, db, day(5), 1200)
		testutil.CreateHistoryPoint(t, db, day(1), 1000)
		testutil.CreateHistoryPoint(t, db, day(3), 1100)

		series, err := repo.GetSeries()
		require.NoError(t, err)
		require.Len(t, series, 3)
		assert.InDelta(t, 1000.0, series[0].TotalValue, 1e-9)
		assert.InDelta(t, 1100.0, series[1].TotalValue, 1e-9)
		assert.InDelta(t, 1200.0, series[2].TotalValue, 1e-9)
	})
}

func TestHistoryRepositoryDeleteAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewHistoryRepository(db)

	testutil.CreateHistoryPoint(t, db, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 1000)
	testutil.CreateHistoryPoint(t, db, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), 1100)

	require.NoError(t, repo.DeleteAll())
	assert.Zero(t, testutil.CountRows(t, db, "portfolio_history"))
}
