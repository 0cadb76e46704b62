package reporting

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/optimization"
)

// DefaultCSVReporter implements CSV output functionality.
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter.
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// rankingHeader is the downstream compatibility contract for ranking CSVs.
var rankingHeader = []string{
	"rank",
	"otm_percent", "wing_width", "intraday_change_max", "credit",
	"is_total_pnl", "is_trades", "is_win_rate", "is_profit_factor",
	"is_max_drawdown", "is_sharpe", "is_sortino",
	"oos_total_pnl", "oos_trades", "oos_win_rate", "oos_profit_factor",
	"oos_max_drawdown", "oos_sharpe", "oos_sortino",
	"robustness",
}

// WriteRankingCSV writes the full ranking to a CSV file. Entries without a
// test leg leave the oos_ columns empty.
func (r *DefaultCSVReporter) WriteRankingCSV(entries []optimization.RankedEntry, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(rankingHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			formatStat(e.Params.OTMPercent),
			formatStat(e.Params.WingWidth),
			formatStat(e.Params.IntradayChangeMax),
			formatStat(e.Params.Credit),
		}
		row = append(row, resultColumns(e.InSample)...)
		row = append(row, resultColumns(e.OutOfSample)...)
		row = append(row, formatStat(e.Robustness))

		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func resultColumns(res *backtest.BacktestResults) []string {
	if res == nil {
		return []string{"", "", "", "", "", "", ""}
	}
	return []string{
		formatStat(res.TotalPnL),
		strconv.Itoa(res.TotalTrades),
		formatStat(res.WinRate),
		formatStat(res.ProfitFactor),
		formatStat(res.MaxDrawdown),
		formatStat(res.SharpeRatio),
		formatStat(res.SortinoRatio),
	}
}

func formatStat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteTradesCSV writes a single run's trade list to a CSV file.
func (r *DefaultCSVReporter) WriteTradesCSV(results *backtest.BacktestResults, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "PnL", "Underlying_Close", "Win_Loss"}); err != nil {
		return err
	}

	for _, t := range results.Trades {
		winLoss := "W"
		if t.PnL < 0 {
			winLoss = "L"
		}
		row := []string{
			t.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", t.PnL),
			fmt.Sprintf("%.2f", t.UnderlyingClose),
			winLoss,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: total_pnl=%.2f; trades=%d; win_rate=%.1f%%; max_drawdown=%.2f",
		results.TotalPnL, results.TotalTrades, results.WinRate, results.MaxDrawdown)
	summaryRow := make([]string, 4)
	summaryRow[3] = summary
	return w.Write(summaryRow)
}

// Package-level convenience functions

// WriteRankingCSV writes a ranking using the default reporter.
func WriteRankingCSV(entries []optimization.RankedEntry, path string) error {
	reporter := NewDefaultCSVReporter()
	return reporter.WriteRankingCSV(entries, path)
}

// WriteTradesCSV writes a trade list using the default reporter.
func WriteTradesCSV(results *backtest.BacktestResults, path string) error {
	reporter := NewDefaultCSVReporter()
	return reporter.WriteTradesCSV(results, path)
}
