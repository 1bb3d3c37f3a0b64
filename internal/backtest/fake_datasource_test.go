package backtest

import (
	"context"
	"time"
)

// fakeDataSource is an in-memory DataSource used by orchestrator tests,
// built the way the teacher's handler tests stub out repository interfaces.
type fakeDataSource struct {
	dates       []time.Time
	memberships map[int64][]string // keyed by dayKey(d).unix
	prices      []PriceRecord
}

func (f *fakeDataSource) DistinctDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, dt := range f.dates {
		if !dt.Before(start) && !dt.After(end) {
			out = append(out, dt)
		}
	}
	return out, nil
}

func (f *fakeDataSource) MembershipsActiveAt(ctx context.Context, dt time.Time) ([]string, error) {
	return f.memberships[dayKey(dt).unix], nil
}

func (f *fakeDataSource) Prices(ctx context.Context, symbols []string, start, end time.Time) ([]PriceRecord, error) {
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	var out []PriceRecord
	for _, p := range f.prices {
		if want[p.Symbol] && !p.Date.Before(start) && !p.Date.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}
