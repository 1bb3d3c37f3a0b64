package backtest

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sharpe computes the monthly-annualized Sharpe ratio of a ragged monthly
// return series (spec §4.5 / GLOSSARY). Only present values count; at
// least minSharpeObservations are required. riskFreeAnnual is converted to
// a monthly rate via (1+rf)^(1/12)-1. Returns false when the series is too
// short or has non-positive sample variance.
func Sharpe(points []MonthlyPoint, riskFreeAnnual float64) (float64, bool) {
	var present []float64
	for _, p := range points {
		if p.Return != nil {
			present = append(present, *p.Return)
		}
	}
	if len(present) < minSharpeObservations {
		return 0, false
	}

	rfMonthly := math.Pow(1+riskFreeAnnual, 1.0/periodsPerMonth) - 1

	excess := make([]float64, len(present))
	for i, r := range present {
		excess[i] = r - rfMonthly
	}

	mean := stat.Mean(excess, nil)
	sd := stat.StdDev(excess, nil) // gonum uses the N-1 divisor already
	if sd <= 0 {
		return 0, false
	}

	return (mean / sd) * math.Sqrt(periodsPerMonth), true
}

// RankBySharpe ranks symbols by descending monthly Sharpe ratio, keeping at
// most topN; symbols with no valid Sharpe are dropped entirely (spec §4.5).
func RankBySharpe(series map[string][]MonthlyPoint, symbols []string, riskFreeAnnual float64, topN int) []string {
	ranked := make([]sharpeRank, 0, len(symbols))
	for _, sym := range symbols {
		if s, ok := Sharpe(series[sym], riskFreeAnnual); ok {
			ranked = append(ranked, sharpeRank{Symbol: sym, Sharpe: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sharpe > ranked[j].Sharpe })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Symbol
	}
	return out
}

// MeanVector returns the column means of a panel. When useRaw is true it
// returns the pre-demean means (panel.RawMeans); otherwise it returns the
// post-demean means, which are ≈0 by construction (spec §9 open question).
func MeanVector(p *Panel, useRaw bool) []float64 {
	if useRaw {
		out := make([]float64, len(p.RawMeans))
		copy(out, p.RawMeans)
		return out
	}

	n := p.Cols()
	means := make([]float64, n)
	t := p.Rows()
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < t; i++ {
			sum += p.Returns.At(i, j)
		}
		if t > 0 {
			means[j] = sum / float64(t)
		}
	}
	return means
}

// RidgeCovariance computes Σ = (RᵀR) / max(1, T-1) and adds a ridge
// regularizer λ = max(ridgeFloor, 0.05*|median diagonal|) to every diagonal
// entry (spec §4.5).
func RidgeCovariance(p *Panel, ridgeFloor float64) *mat.SymDense {
	t, n := p.Rows(), p.Cols()

	var raw mat.Dense
	raw.Mul(p.Returns.T(), p.Returns)

	denom := float64(t - 1)
	if denom < 1 {
		denom = 1
	}

	diag := make([]float64, n)
	for j := 0; j < n; j++ {
		diag[j] = raw.At(j, j) / denom
	}
	sortedDiag := append([]float64(nil), diag...)
	sort.Float64s(sortedDiag)
	med := 0.0
	if n > 0 {
		med = sortedDiag[n/2]
	}
	lambda := math.Max(ridgeFloor, 0.05*math.Abs(med))

	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := raw.At(i, j) / denom
			if i == j {
				v += lambda
			}
			sigma.SetSym(i, j, v)
		}
	}
	return sigma
}
