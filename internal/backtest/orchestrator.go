package backtest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Run executes one full selection-and-backtest invocation over the window
// [start, end] (spec §4.3–§4.8): rebalance-date selection, membership
// eligibility, lookback panel assembly, Sharpe pre-screen, optimization,
// pruning, and forward simulation. It returns ErrNoResult for any
// data-scarcity guard (logged at the call site with the cause), a
// *NumericalError for a double covariance-inversion failure, or a
// *ConfigError if cfg is invalid — checked before any data-source I/O.
//
// Cancellation through ctx aborts cleanly between steps with no partial
// result, matching the single-threaded, sequential concurrency model.
func Run(ctx context.Context, ds DataSource, cfg EngineConfig, start, end time.Time, log zerolog.Logger) (*SelectionResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	allDays, err := ds.DistinctDates(ctx, start, end)
	if err != nil {
		return nil, err
	}
	allDays = sortedDistinctDates(allDays)
	if len(allDays) == 0 {
		log.Debug().Msg("no result: empty trading-day set in window")
		return nil, ErrNoResult
	}

	monthEnds := MonthEnds(allDays)

	var t0 time.Time
	found := false
	for _, d := range monthEnds {
		windowStart := d.AddDate(0, -cfg.LookbackMonths, 0)
		hasLookbackDay := false
		for _, day := range allDays {
			if !day.Before(windowStart) && day.Before(d) {
				hasLookbackDay = true
				break
			}
		}
		if hasLookbackDay {
			t0 = d
			found = true
			break
		}
	}
	if !found {
		log.Debug().Msg("no result: no month-end with sufficient lookback history")
		return nil, ErrNoResult
	}

	memberships, err := ds.MembershipsActiveAt(ctx, t0)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		log.Debug().Time("rebalance_date", t0).Msg("no result: no eligible symbols at rebalance date")
		return nil, ErrNoResult
	}
	sort.Strings(memberships)

	lookbackStart := t0.AddDate(0, -cfg.LookbackMonths, 0)
	lookbackPrices, err := ds.Prices(ctx, memberships, lookbackStart, t0)
	if err != nil {
		return nil, err
	}

	// The lookback month-end grid is independent of allDays: it must cover
	// the full [lookbackStart, t0] history regardless of how narrow the
	// [start, end] window used for rebalance-date discovery was.
	lookbackDays, err := ds.DistinctDates(ctx, lookbackStart, t0)
	if err != nil {
		return nil, err
	}
	grid := MonthEnds(append(sortedDistinctDates(lookbackDays), t0))
	gridKeys := make([]timeKey, 0, len(grid))
	for _, d := range grid {
		if !d.After(t0) && !d.Before(lookbackStart) {
			gridKeys = append(gridKeys, dayKey(d))
		}
	}

	priceAt := make(map[string]map[timeKey]float64, len(memberships))
	for _, pr := range lookbackPrices {
		m, ok := priceAt[pr.Symbol]
		if !ok {
			m = make(map[timeKey]float64)
			priceAt[pr.Symbol] = m
		}
		m[dayKey(pr.Date)] = pr.PriceAdj
	}

	series := make(map[string][]MonthlyPoint, len(memberships))
	for _, sym := range memberships {
		series[sym] = monthlySeries(gridKeys, priceAt[sym])
	}

	screened := RankBySharpe(series, memberships, cfg.RiskFreeRate, cfg.TopN)
	if len(screened) < cfg.KFinal {
		log.Debug().Int("screened", len(screened)).Int("k_final", cfg.KFinal).Msg("no result: TopN pre-screen yielded fewer than KFinal symbols")
		return nil, ErrNoResult
	}

	panel := AssemblePanel(series, screened)
	if panel.Rows() < minRowsNeeded || panel.Rows() < cfg.MinMonths-1 || panel.Cols() < cfg.KFinal {
		log.Debug().Int("rows", panel.Rows()).Int("cols", panel.Cols()).Msg("no result: panel below minimum rows/columns after coverage filtering")
		return nil, ErrNoResult
	}
	panel.RowDates = make([]time.Time, len(panel.KeptRows))
	for i, rowIdx := range panel.KeptRows {
		panel.RowDates[i] = gridKeys[rowIdx+1].time
	}

	mu := MeanVector(panel, cfg.UseRawMeanForOptimizer)
	sigma := RidgeCovariance(panel, cfg.Ridge)

	// Optimize only knows N; fill in the window and row count here.
	withContext := func(err error) error {
		var numErr *NumericalError
		if errors.As(err, &numErr) {
			numErr.Period = start.Format("2006-01-02") + ".." + end.Format("2006-01-02")
			numErr.T = panel.Rows()
		}
		return err
	}

	w, err := Optimize(mu, sigma, cfg.WMin, cfg.WMax)
	if err != nil {
		return nil, withContext(err)
	}

	finalSymbols, finalWeights, err := Prune(panel.ColSymbols, mu, sigma, w, cfg.KFinal, cfg.WMin, cfg.WMax)
	if err != nil {
		return nil, withContext(err)
	}

	weights := make(Weights, len(finalSymbols))
	for i, sym := range finalSymbols {
		weights[sym] = finalWeights[i]
	}

	fwdDays := make([]time.Time, 0, len(allDays))
	for _, d := range allDays {
		if d.After(t0) && !d.After(end) {
			fwdDays = append(fwdDays, d)
		}
	}
	if len(fwdDays) == 0 {
		log.Debug().Msg("no result: no forward trading days after rebalance date")
		return nil, ErrNoResult
	}
	tradingDays := append([]time.Time{t0}, fwdDays...)

	fwdPrices, err := ds.Prices(ctx, finalSymbols, t0, end)
	if err != nil {
		return nil, err
	}
	dailyPrices := make(map[string]map[timeKey]float64, len(finalSymbols))
	for _, pr := range fwdPrices {
		m, ok := dailyPrices[pr.Symbol]
		if !ok {
			m = make(map[timeKey]float64)
			dailyPrices[pr.Symbol] = m
		}
		m[dayKey(pr.Date)] = pr.PriceAdj
	}

	dailyReturns := Simulate(weights, dailyPrices, tradingDays)

	return &SelectionResult{
		RebalanceDate: t0,
		Symbols:       finalSymbols,
		Weights:       weights,
		DailyReturns:  dailyReturns,
	}, nil
}
