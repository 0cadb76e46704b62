package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantforge/condor-backtest/pkg/types"
)

// DefaultDataFilter implements DataFilter for common filtering operations.
type DefaultDataFilter struct{}

// NewDefaultDataFilter creates a new default data filter.
func NewDefaultDataFilter() *DefaultDataFilter {
	return &DefaultDataFilter{}
}

// FilterByPeriod keeps only the trailing period of the series, measured back
// from its last bar.
func (f *DefaultDataFilter) FilterByPeriod(bars []types.Bar, period time.Duration) []types.Bar {
	if period <= 0 || len(bars) == 0 {
		return bars
	}

	cutoff := bars[len(bars)-1].Date.Add(-period)

	startIdx := 0
	for i, bar := range bars {
		if !bar.Date.Before(cutoff) {
			startIdx = i
			break
		}
	}

	return bars[startIdx:]
}

// FilterByDateRange keeps bars inside [start, end], inclusive.
func (f *DefaultDataFilter) FilterByDateRange(bars []types.Bar, start, end time.Time) []types.Bar {
	if len(bars) == 0 {
		return bars
	}

	var filtered []types.Bar
	for _, bar := range bars {
		if bar.Date.Before(start) || bar.Date.After(end) {
			continue
		}
		filtered = append(filtered, bar)
	}
	return filtered
}

// ValidateTimeSequence ensures the series is strictly chronological.
func (f *DefaultDataFilter) ValidateTimeSequence(bars []types.Bar) error {
	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			return fmt.Errorf("bars not in chronological order at index %d: %s comes after %s",
				i, bars[i].Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
		if bars[i].Date.Equal(bars[i-1].Date) {
			return fmt.Errorf("duplicate bar date at index %d: %s",
				i, bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Dates extracts the trading dates of a series, in order.
func Dates(bars []types.Bar) []time.Time {
	dates := make([]time.Time, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
	}
	return dates
}

// ParseTrailingPeriod parses period strings like "7d", "30d", "180d".
func ParseTrailingPeriod(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "days") {
		s = strings.TrimSuffix(s, "days") + "d"
	}
	if strings.HasSuffix(s, "d") {
		nStr := strings.TrimSuffix(s, "d")
		if nStr == "" {
			return 0, false
		}
		n, err := strconv.Atoi(nStr)
		if err != nil || n <= 0 {
			return 0, false
		}
		return time.Duration(n) * 24 * time.Hour, true
	}
	// allow raw durations too (e.g., 168h)
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}
	return 0, false
}
