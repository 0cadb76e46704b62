package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/condor-backtest/pkg/types"
)

func barsOn(days ...int) []types.Bar {
	bars := make([]types.Bar, len(days))
	for i, d := range days {
		bars[i] = types.Bar{Date: time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)}
	}
	return bars
}

// TestFilterByPeriod_TrailingWindow tests trailing-window filtering measured from the last bar
func TestFilterByPeriod_TrailingWindow(t *testing.T) {
	filter := NewDefaultDataFilter()
	bars := barsOn(2, 3, 10, 20, 30)

	filtered := filter.FilterByPeriod(bars, 10*24*time.Hour)
	require.Len(t, filtered, 2)
	assert.Equal(t, 20, filtered[0].Date.Day())
	assert.Equal(t, 30, filtered[1].Date.Day())
}

// TestFilterByPeriod_ZeroPeriod tests that a non-positive period is a no-op
func TestFilterByPeriod_ZeroPeriod(t *testing.T) {
	filter := NewDefaultDataFilter()
	bars := barsOn(2, 3)
	assert.Equal(t, bars, filter.FilterByPeriod(bars, 0))
}

// TestFilterByDateRange_Inclusive tests that both bounds are inclusive
func TestFilterByDateRange_Inclusive(t *testing.T) {
	filter := NewDefaultDataFilter()
	bars := barsOn(2, 3, 4, 5)

	filtered := filter.FilterByDateRange(bars,
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	require.Len(t, filtered, 2)
	assert.Equal(t, 3, filtered[0].Date.Day())
	assert.Equal(t, 4, filtered[1].Date.Day())
}

// TestValidateTimeSequence_Duplicates tests rejection of duplicate dates
func TestValidateTimeSequence_Duplicates(t *testing.T) {
	filter := NewDefaultDataFilter()
	assert.Error(t, filter.ValidateTimeSequence(barsOn(2, 2)))
	assert.NoError(t, filter.ValidateTimeSequence(barsOn(2, 3, 4)))
}

// TestDates tests trading-date extraction
func TestDates(t *testing.T) {
	dates := Dates(barsOn(2, 3))
	require.Len(t, dates, 2)
	assert.Equal(t, 3, dates[1].Day())
}

// TestParseTrailingPeriod tests the accepted period spellings
func TestParseTrailingPeriod(t *testing.T) {
	d, ok := ParseTrailingPeriod("30d")
	assert.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, d)

	d, ok = ParseTrailingPeriod(" 7D ")
	assert.True(t, ok)
	assert.Equal(t, 7*24*time.Hour, d)

	d, ok = ParseTrailingPeriod("168h")
	assert.True(t, ok)
	assert.Equal(t, 168*time.Hour, d)

	_, ok = ParseTrailingPeriod("d")
	assert.False(t, ok)

	_, ok = ParseTrailingPeriod("-3d")
	assert.False(t, ok)

	_, ok = ParseTrailingPeriod("banana")
	assert.False(t, ok)
}
