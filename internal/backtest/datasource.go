package backtest

import (
	"context"
	"time"
)

// DataSource is the read-only contract the orchestrator drives. It is the
// external collaborator (spec §6): a concrete implementation lives outside
// this package (see internal/universe for a sqlite-backed one); the core
// never assumes how rows are stored.
type DataSource interface {
	// DistinctDates returns the sorted, deduplicated set of days that have
	// at least one price record in [start, end].
	DistinctDates(ctx context.Context, start, end time.Time) ([]time.Time, error)

	// MembershipsActiveAt returns the symbols eligible on day d.
	MembershipsActiveAt(ctx context.Context, d time.Time) ([]string, error)

	// Prices returns all price records for the given symbols within
	// [start, end], in any order.
	Prices(ctx context.Context, symbols []string, start, end time.Time) ([]PriceRecord, error)
}
