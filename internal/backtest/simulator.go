package backtest

import "time"

// Simulate runs the daily buy-and-hold forward simulation described in
// spec §4.7: for each consecutive pair of trading days, each symbol's daily
// return is clipped to ±dailyClip, weights are renormalized over only the
// symbols that traded on both days, and the day's portfolio return is their
// weighted sum. A day with no qualifying symbol contributes 0.0.
func Simulate(weights Weights, dailyPrices map[string]map[timeKey]float64, tradingDays []time.Time) []DailyReturn {
	if len(tradingDays) < 2 {
		return nil
	}

	out := make([]DailyReturn, 0, len(tradingDays)-1)
	for i := 0; i < len(tradingDays)-1; i++ {
		d0, d1 := tradingDays[i], tradingDays[i+1]
		k0, k1 := dayKey(d0), dayKey(d1)

		type leg struct {
			symbol string
			ret    float64
		}
		var legs []leg
		var weightSum float64

		for sym, w := range weights {
			series, ok := dailyPrices[sym]
			if !ok {
				continue
			}
			p0, ok0 := series[k0]
			p1, ok1 := series[k1]
			if !ok0 || !ok1 || p0 == 0 {
				continue
			}
			r := p1/p0 - 1
			if r > dailyClip {
				r = dailyClip
			}
			if r < -dailyClip {
				r = -dailyClip
			}
			legs = append(legs, leg{symbol: sym, ret: r})
			weightSum += w
		}

		dayReturn := 0.0
		if weightSum > 0 {
			for _, l := range legs {
				w := weights[l.symbol] / weightSum
				dayReturn += w * l.ret
			}
		}

		out = append(out, DailyReturn{Date: d1, Return: dayReturn})
	}

	return out
}
