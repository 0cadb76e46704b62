// Package data loads historical daily bars and volatility-proxy series from
// CSV files.
package data

import (
	"time"

	"github.com/quantforge/condor-backtest/pkg/types"
)

// BarProvider interface for loading historical daily data
type BarProvider interface {
	// LoadBars loads the daily OHLC series from the specified source
	LoadBars(source string) ([]types.Bar, error)

	// LoadVolProxy loads the optional volatility-proxy series; a missing
	// source is not an error for the caller (the series is advisory)
	LoadVolProxy(source string) ([]types.VolPoint, error)

	// ValidateBars validates the integrity of the loaded series
	ValidateBars(bars []types.Bar) error

	// GetName returns the name of the provider
	GetName() string
}

// DataFilter interface for filtering loaded series
type DataFilter interface {
	// FilterByPeriod keeps only the trailing period of the series
	FilterByPeriod(bars []types.Bar, period time.Duration) []types.Bar

	// FilterByDateRange keeps bars inside [start, end]
	FilterByDateRange(bars []types.Bar, start, end time.Time) []types.Bar

	// ValidateTimeSequence ensures the series is in chronological order
	ValidateTimeSequence(bars []types.Bar) error
}

// CSVColumnMapping defines the column positions of a bar CSV file.
type CSVColumnMapping struct {
	DateCol    int
	OpenCol    int
	HighCol    int
	LowCol     int
	CloseCol   int
	MinColumns int
	DateFormat string
}

// DailyCSVFormat is the standard daily-bar layout: date,open,high,low,close.
var DailyCSVFormat = CSVColumnMapping{
	DateCol:    0,
	OpenCol:    1,
	HighCol:    2,
	LowCol:     3,
	CloseCol:   4,
	MinColumns: 5,
	DateFormat: "2006-01-02",
}
