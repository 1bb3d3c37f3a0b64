package backtest

// EngineConfig holds the tunable parameters of the selection/backtest
// engine (spec §6). Constants that the spec keeps hard-coded (coverage
// thresholds, clip, apply_bounds iteration count, ppm) are not fields here;
// they are the package constants declared below. ppy=252 has no consumer in this
// package — annualizing the daily return sequence is the out-of-scope
// reporting concern named in spec §1 (see DESIGN.md).
type EngineConfig struct {
	LookbackMonths int     // length of historical window for monthly returns
	MinMonths      int     // the panel must keep at least MinMonths-1 rows; symbols are not filtered by their own observation count against it
	TopN           int     // pre-screen size by Sharpe
	KFinal         int     // target portfolio cardinality
	RiskFreeRate   float64 // annual risk-free rate used in Sharpe
	WMin           float64 // minimum per-asset weight
	WMax           float64 // maximum per-asset weight
	Ridge          float64 // minimum diagonal additive regularizer

	// UseRawMeanForOptimizer resolves the open question in spec §9: when
	// false (default), the optimizer uses the post-demean column means
	// (≈0, preserving the documented equal-weight-within-bounds behavior).
	// When true, it uses the pre-demean means instead.
	UseRawMeanForOptimizer bool
}

// DefaultEngineConfig returns the spec's documented defaults (§6).
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		LookbackMonths: 36,
		MinMonths:      24,
		TopN:           100,
		KFinal:         45,
		RiskFreeRate:   0.04,
		WMin:           0.005,
		WMax:           0.03,
		Ridge:          0.1,
	}
}

// Validate checks the input-violation class of errors (spec §7.3): these
// are fatal configuration errors surfaced before any I/O.
func (c EngineConfig) Validate() error {
	if c.KFinal <= 0 {
		return &ConfigError{Field: "KFinal", Reason: "must be positive"}
	}
	if c.LookbackMonths <= 0 {
		return &ConfigError{Field: "LookbackMonths", Reason: "must be positive"}
	}
	if c.WMin > c.WMax {
		return &ConfigError{Field: "WMin/WMax", Reason: "WMin must not exceed WMax"}
	}
	if c.TopN < c.KFinal {
		return &ConfigError{Field: "TopN", Reason: "must be >= KFinal"}
	}
	return nil
}

// Hard-coded constants from spec §6/§4, not configurable.
const (
	colCoverageThreshold  = 0.85 // C_col
	rowCoverageThreshold  = 0.80 // C_row
	minRowsNeeded         = 24   // MinRowsNeeded
	dailyClip             = 0.35 // per-asset per-day return cap
	applyBoundsIters      = 10
	periodsPerMonth       = 12
	minSharpeObservations = 12
)
