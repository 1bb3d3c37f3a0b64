// Package backtest implements portfolio selection and buy-and-hold backtest
// simulation over a time-varying index universe: membership filtering,
// lookback panel assembly with missing-data tolerance, Sharpe pre-screening,
// bounded mean-variance weight optimization, cardinality pruning, and daily
// forward-return simulation from a single rebalance date.
package backtest

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// PriceRecord is one adjusted-close observation, unique per (Symbol, Date).
type PriceRecord struct {
	Symbol   string
	Date     time.Time
	PriceAdj float64
}

// MembershipInterval is one open or closed eligibility window for a symbol.
// A symbol may have several; eligibility on a day is the union across all
// of a symbol's intervals. End is nil for an interval still open.
type MembershipInterval struct {
	Symbol string
	Start  time.Time
	End    *time.Time
}

// Active reports whether the interval covers day d (inclusive on both ends).
func (m MembershipInterval) Active(d time.Time) bool {
	if d.Before(m.Start) {
		return false
	}
	if m.End != nil && d.After(*m.End) {
		return false
	}
	return true
}

// MonthlyPoint is one month-end observation in a per-symbol return series.
// Return is nil when the month is missing, never a synthetic zero.
type MonthlyPoint struct {
	MonthEnd time.Time
	Return   *float64
}

// Panel is the dense, coverage-filtered, demeaned T×N return matrix produced
// by AssemblePanel, together with the index lists mapping its rows and
// columns back into the pre-filter universe.
type Panel struct {
	Returns *mat.Dense // T x N, demeaned, zero-imputed

	RawMeans []float64 // pre-demean column means, len N (for EngineConfig.UseRawMeanForOptimizer)

	KeptRows []int // indices into the per-symbol monthly return series (entry i ends at grid month-end i+1)
	KeptCols []int // indices into the original symbol list

	RowDates   []time.Time // len T, the retained month-ends
	ColSymbols []string    // len N, the retained symbols
}

// Rows and Cols return the panel's dimensions.
func (p *Panel) Rows() int { r, _ := p.Returns.Dims(); return r }
func (p *Panel) Cols() int { _, c := p.Returns.Dims(); return c }

// Weights maps symbol to a nonnegative portfolio weight.
type Weights map[string]float64

// Sum returns the total weight across all entries.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// DailyReturn is one day of the simulated portfolio return sequence.
type DailyReturn struct {
	Date   time.Time
	Return float64
}

// SelectionResult is the orchestrator's output for one (start, end) window.
type SelectionResult struct {
	RebalanceDate time.Time
	Symbols       []string
	Weights       Weights
	DailyReturns  []DailyReturn
}

// sharpeRank pairs a symbol with its pre-screen Sharpe ratio for sorting.
type sharpeRank struct {
	Symbol string
	Sharpe float64
}
