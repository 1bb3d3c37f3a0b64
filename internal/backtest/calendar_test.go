package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthEnds_EmptyInput(t *testing.T) {
	assert.Nil(t, MonthEnds(nil))
}

func TestMonthEnds_PicksMaxPerMonth(t *testing.T) {
	dates := []time.Time{
		d(2024, 1, 5), d(2024, 1, 31), d(2024, 1, 15),
		d(2024, 2, 10), d(2024, 2, 28),
	}
	out := MonthEnds(dates)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(d(2024, 1, 31)))
	assert.True(t, out[1].Equal(d(2024, 2, 28)))
}

func TestMonthEnds_TolerantOfGapsAndDuplicates(t *testing.T) {
	dates := []time.Time{d(2024, 1, 1), d(2024, 1, 1), d(2024, 6, 15)}
	out := MonthEnds(dates)
	require.Len(t, out, 2)
	assert.True(t, out[0].Before(out[1]))
}

func TestSortedDistinctDates_Dedupes(t *testing.T) {
	dates := []time.Time{d(2024, 3, 2), d(2024, 1, 1), d(2024, 1, 1)}
	out := sortedDistinctDates(dates)
	require.Len(t, out, 2)
	assert.True(t, out[0].Before(out[1]))
}
