package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCombineResults_SortsByDate tests that stitched trades come out chronological
// even when the window legs are out of order
func TestCombineResults_SortsByDate(t *testing.T) {
	late := NewResults([]TradeRecord{
		{Date: day(10), PnL: 25},
		{Date: day(12), PnL: -255},
	}, true)
	early := NewResults([]TradeRecord{
		{Date: day(2), PnL: 25},
		{Date: day(4), PnL: 25},
	}, true)

	combined := CombineResults([]*BacktestResults{late, early}, true)

	assert.Equal(t, 4, combined.TotalTrades)
	assert.Equal(t, day(2), combined.Trades[0].Date)
	assert.Equal(t, day(4), combined.Trades[1].Date)
	assert.Equal(t, day(10), combined.Trades[2].Date)
	assert.Equal(t, day(12), combined.Trades[3].Date)
}

// TestCombineResults_DrawdownOverStitchedPath tests that the combined drawdown is
// computed over the global equity path, not summed per window
func TestCombineResults_DrawdownOverStitchedPath(t *testing.T) {
	// Each window alone: dd 100. Stitched path 100, 0, -100 -> dd 200.
	a := NewResults([]TradeRecord{
		{Date: day(2), PnL: 100},
		{Date: day(3), PnL: -100},
	}, true)
	b := NewResults([]TradeRecord{
		{Date: day(4), PnL: -100},
	}, true)

	combined := CombineResults([]*BacktestResults{a, b}, true)

	assert.Equal(t, 100.0, a.MaxDrawdown)
	assert.Equal(t, 200.0, combined.MaxDrawdown)
}

// TestCombineResults_MetricsRecomputed tests that every statistic reflects the stitched sequence
func TestCombineResults_MetricsRecomputed(t *testing.T) {
	a := NewResults(tradesWithPnLs(25, 25), true)
	b := NewResults([]TradeRecord{{Date: day(20), PnL: -255}}, true)

	combined := CombineResults([]*BacktestResults{a, b}, false)

	assert.Equal(t, 3, combined.TotalTrades)
	assert.InDelta(t, -205.0, combined.TotalPnL, 1e-9)
	assert.InDelta(t, 100.0*2.0/3.0, combined.WinRate, 1e-9)
	assert.False(t, combined.IsTrain)
}

// TestCombineResults_VolWarningsSummed tests that diagnostic counters accumulate
func TestCombineResults_VolWarningsSummed(t *testing.T) {
	a := NewResults(nil, true)
	a.VolWarnings = 2
	b := NewResults(nil, true)
	b.VolWarnings = 3

	combined := CombineResults([]*BacktestResults{a, b}, true)
	assert.Equal(t, 5, combined.VolWarnings)
}

// TestCombineResults_Empty tests combining zero windows
func TestCombineResults_Empty(t *testing.T) {
	combined := CombineResults(nil, true)
	assert.Equal(t, 0, combined.TotalTrades)
	assert.Equal(t, 0.0, combined.TotalPnL)
}
