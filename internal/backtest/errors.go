package backtest

import "fmt"

// ErrNoResult is the single sentinel returned for every data-scarcity guard:
// empty date range, no lookback trading days, no eligible membership, too few
// monthly observations, a pre-screen pool smaller than KFinal, a panel with
// too few rows or columns, or no forward trading dates. Callers distinguish
// the cause from the log, never from the error value.
var ErrNoResult = fmt.Errorf("backtest: no result")

// NumericalError is returned when covariance inversion fails twice (once
// plain, once after an additional ridge retry). It is fatal: the caller
// should surface it rather than treat it as data scarcity.
type NumericalError struct {
	Period string // "start..end" window the failure occurred in
	N      int    // number of assets in the covariance matrix
	T      int    // number of observations (panel rows) used to build it
	Err    error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("backtest: covariance inversion failed for period %s (N=%d, T=%d): %v", e.Period, e.N, e.T, e.Err)
}

func (e *NumericalError) Unwrap() error { return e.Err }

// ConfigError reports an input violation caught before any I/O: an
// impossible cardinality, an inverted weight bound, a pre-screen pool
// smaller than the target cardinality, or a non-positive lookback.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("backtest: invalid configuration for %s: %s", e.Field, e.Reason)
}
