package backtest

// ToReturns converts a sequence of optional prices into a sequence of
// optional simple returns of length max(0, n-1). Position i holds
// prices[i+1]/prices[i] - 1 when both are present and prices[i] != 0;
// otherwise nil. No smoothing, no forward fill (spec §4.2).
func ToReturns(prices []*float64) []*float64 {
	if len(prices) < 2 {
		return nil
	}

	out := make([]*float64, len(prices)-1)
	for i := 0; i < len(prices)-1; i++ {
		p0, p1 := prices[i], prices[i+1]
		if p0 == nil || p1 == nil || *p0 == 0 {
			continue
		}
		r := *p1/ *p0 - 1
		out[i] = &r
	}
	return out
}

// monthlySeries builds, for a single symbol, the monthly price-at-month-end
// sequence aligned to grid (one entry per month end, nil when the symbol
// has no observation in that month), then converts it to the monthly return
// series described in spec §3 ("Monthly return series per symbol").
func monthlySeries(grid []timeKey, priceAt map[timeKey]float64) []MonthlyPoint {
	prices := make([]*float64, len(grid))
	for i, k := range grid {
		if p, ok := priceAt[k]; ok {
			v := p
			prices[i] = &v
		}
	}

	rets := ToReturns(prices)
	out := make([]MonthlyPoint, len(rets))
	for i, r := range rets {
		out[i] = MonthlyPoint{MonthEnd: grid[i+1].time, Return: r}
	}
	return out
}
