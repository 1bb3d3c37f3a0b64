package backtest

import "time"

// timeKey is a calendar-day map key: time.Time values from different
// sources can carry different monotonic readings or locations, so raw
// time.Time is not a safe map key for "same day" comparisons.
type timeKey struct {
	time time.Time
	unix int64
}

func dayKey(d time.Time) timeKey {
	u := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return timeKey{time: u, unix: u.Unix()}
}
