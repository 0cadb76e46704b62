// Package reporting renders optimization rankings and backtest results to
// the console and to CSV, JSON and Excel files.
package reporting

import (
	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/optimization"
)

// ConsoleReporter defines the interface for console output.
type ConsoleReporter interface {
	OutputResults(results *backtest.BacktestResults)
	PrintRankingTable(entries []optimization.RankedEntry, topN int)
}

// FileReporter defines the interface for file output. Field names and
// nesting of the CSV/JSON rankings are a downstream compatibility contract.
type FileReporter interface {
	WriteRankingCSV(entries []optimization.RankedEntry, path string) error
	WriteRankingJSON(entries []optimization.RankedEntry, path string) error
	WriteRankingXLSX(entries []optimization.RankedEntry, path string) error
	WriteTradesCSV(results *backtest.BacktestResults, path string) error
}
