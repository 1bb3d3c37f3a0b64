// Package universe provides a sqlite-backed implementation of the backtest
// engine's DataSource contract: daily adjusted prices and index-membership
// intervals, adapted from the teacher's daily_prices-table schema.
package universe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/aristath/universe-backtest/internal/backtest"
)

// SQLiteStore implements backtest.DataSource against a local sqlite
// database holding a daily_prices table and a membership_intervals table.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (and, if necessary, creates) the sqlite database at dsn.
func Open(dsn string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStore{db: db, log: log.With().Str("component", "universe_store").Logger()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_prices (
			symbol    TEXT NOT NULL,
			date_unix INTEGER NOT NULL,
			price_adj REAL NOT NULL,
			PRIMARY KEY (symbol, date_unix)
		);
		CREATE INDEX IF NOT EXISTS idx_daily_prices_date ON daily_prices(date_unix);

		CREATE TABLE IF NOT EXISTS membership_intervals (
			symbol          TEXT NOT NULL,
			start_date_unix INTEGER NOT NULL,
			end_date_unix   INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_membership_symbol ON membership_intervals(symbol);
	`)
	if err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}

// DistinctDates returns the sorted distinct calendar days that have at
// least one priced symbol in [start, end].
func (s *SQLiteStore) DistinctDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT date_unix FROM daily_prices
		WHERE date_unix BETWEEN ? AND ?
		ORDER BY date_unix ASC
	`, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("query distinct dates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var u int64
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan distinct date: %w", err)
		}
		out = append(out, time.Unix(u, 0).UTC())
	}
	return out, rows.Err()
}

// MembershipsActiveAt returns the symbols whose membership interval covers
// day d (end_date_unix NULL meaning "still active").
func (s *SQLiteStore) MembershipsActiveAt(ctx context.Context, d time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol FROM membership_intervals
		WHERE start_date_unix <= ? AND (end_date_unix IS NULL OR end_date_unix >= ?)
	`, d.Unix(), d.Unix())
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// Prices returns every (symbol, date, price_adj) row for symbols in the
// given list with date in [start, end].
func (s *SQLiteStore) Prices(ctx context.Context, symbols []string, start, end time.Time) ([]backtest.PriceRecord, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	placeholders := make([]byte, 0, len(symbols)*2)
	args := make([]any, 0, len(symbols)+2)
	for i, sym := range symbols {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, sym)
	}
	args = append(args, start.Unix(), end.Unix())

	query := fmt.Sprintf(`
		SELECT symbol, date_unix, price_adj FROM daily_prices
		WHERE symbol IN (%s) AND date_unix BETWEEN ? AND ?
		ORDER BY symbol, date_unix
	`, string(placeholders))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var out []backtest.PriceRecord
	for rows.Next() {
		var sym string
		var u int64
		var price float64
		if err := rows.Scan(&sym, &u, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, backtest.PriceRecord{
			Symbol:   sym,
			Date:     time.Unix(u, 0).UTC(),
			PriceAdj: price,
		})
	}
	return out, rows.Err()
}
