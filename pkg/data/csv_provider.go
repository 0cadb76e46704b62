package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/quantforge/condor-backtest/pkg/types"
)

// CSVProvider implements BarProvider for CSV files, with a small in-memory
// cache so repeated loads of the same file are free.
type CSVProvider struct {
	cache         map[string][]types.Bar
	cacheMutex    sync.RWMutex
	columnMapping CSVColumnMapping
}

// NewCSVProvider creates a new CSV provider using the standard daily layout.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{
		cache:         make(map[string][]types.Bar),
		columnMapping: DailyCSVFormat,
	}
}

// SetColumnMapping configures the CSV column mapping.
func (p *CSVProvider) SetColumnMapping(mapping CSVColumnMapping) {
	p.columnMapping = mapping
}

// GetName returns the provider name.
func (p *CSVProvider) GetName() string {
	return "csv"
}

// LoadBars loads the daily OHLC series from a CSV file.
func (p *CSVProvider) LoadBars(source string) ([]types.Bar, error) {
	p.cacheMutex.RLock()
	if bars, exists := p.cache[source]; exists {
		p.cacheMutex.RUnlock()
		return bars, nil
	}
	p.cacheMutex.RUnlock()

	bars, err := p.loadFromFile(source)
	if err != nil {
		return nil, err
	}

	p.cacheMutex.Lock()
	p.cache[source] = bars
	p.cacheMutex.Unlock()

	return bars, nil
}

func (p *CSVProvider) loadFromFile(filename string) ([]types.Bar, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var bars []types.Bar
	lineNum := 1

	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) < p.columnMapping.MinColumns {
			continue // Skip invalid rows
		}

		date, err := time.Parse(p.columnMapping.DateFormat, record[p.columnMapping.DateCol])
		if err != nil {
			continue // Skip invalid dates
		}

		open, err := strconv.ParseFloat(record[p.columnMapping.OpenCol], 64)
		if err != nil {
			continue
		}

		high, err := strconv.ParseFloat(record[p.columnMapping.HighCol], 64)
		if err != nil {
			continue
		}

		low, err := strconv.ParseFloat(record[p.columnMapping.LowCol], 64)
		if err != nil {
			continue
		}

		closePrice, err := strconv.ParseFloat(record[p.columnMapping.CloseCol], 64)
		if err != nil {
			continue
		}

		// Basic sanity checks
		if open <= 0 || high <= 0 || low <= 0 || closePrice <= 0 {
			continue
		}
		if high < open || high < closePrice || high < low {
			continue
		}
		if low > open || low > closePrice {
			continue
		}

		bars = append(bars, types.Bar{
			Date:  date,
			Open:  open,
			High:  high,
			Low:   low,
			Close: closePrice,
		})
	}

	return bars, nil
}

// LoadVolProxy loads a volatility-proxy series from a date,close CSV file.
func (p *CSVProvider) LoadVolProxy(source string) ([]types.VolPoint, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var points []types.VolPoint
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		date, err := time.Parse(p.columnMapping.DateFormat, record[0])
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		points = append(points, types.VolPoint{Date: date, Close: closePrice})
	}

	return points, nil
}

// ValidateBars ensures a loaded series is non-empty and chronological.
func (p *CSVProvider) ValidateBars(bars []types.Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("no valid bars loaded")
	}
	filter := NewDefaultDataFilter()
	return filter.ValidateTimeSequence(bars)
}

// ClearCache clears all cached series.
func (p *CSVProvider) ClearCache() {
	p.cacheMutex.Lock()
	defer p.cacheMutex.Unlock()
	p.cache = make(map[string][]types.Bar)
}
