package universe

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openTestStore(t *testing.T) *SQLiteStore {
	store, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedPrice(t *testing.T, s *SQLiteStore, symbol string, dt time.Time, price float64) {
	_, err := s.db.Exec(
		`INSERT INTO daily_prices (symbol, date_unix, price_adj) VALUES (?, ?, ?)`,
		symbol, dt.Unix(), price,
	)
	require.NoError(t, err)
}

func seedMembership(t *testing.T, s *SQLiteStore, symbol string, start time.Time, end *time.Time) {
	var endUnix any
	if end != nil {
		endUnix = end.Unix()
	}
	_, err := s.db.Exec(
		`INSERT INTO membership_intervals (symbol, start_date_unix, end_date_unix) VALUES (?, ?, ?)`,
		symbol, start.Unix(), endUnix,
	)
	require.NoError(t, err)
}

func TestSQLiteStore_DistinctDatesOrdersAndDedupes(t *testing.T) {
	store := openTestStore(t)
	day1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	seedPrice(t, store, "A", day1, 100)
	seedPrice(t, store, "B", day1, 50)
	seedPrice(t, store, "A", day2, 101)

	dates, err := store.DistinctDates(context.Background(), day1, day2)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	require.True(t, dates[0].Before(dates[1]))
}

func TestSQLiteStore_MembershipsActiveAtHandlesOpenEndedInterval(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	seedMembership(t, store, "A", start, nil)

	syms, err := store.MembershipsActiveAt(context.Background(), start.AddDate(1, 0, 0))
	require.NoError(t, err)
	require.Contains(t, syms, "A")
}

func TestSQLiteStore_PricesFiltersBySymbolAndRange(t *testing.T) {
	store := openTestStore(t)
	day1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	seedPrice(t, store, "A", day1, 100)
	seedPrice(t, store, "B", day1, 50)

	recs, err := store.Prices(context.Background(), []string{"A"}, day1, day2)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "A", recs[0].Symbol)
}
