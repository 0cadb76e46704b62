package reporting

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/optimization"
	"github.com/quantforge/condor-backtest/pkg/validation"
)

// DefaultConsoleReporter implements console output functionality.
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter.
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputResults prints one backtest result to the console.
func (r *DefaultConsoleReporter) OutputResults(results *backtest.BacktestResults) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📊 BACKTEST RESULTS")
	fmt.Println(strings.Repeat("=", 50))

	fmt.Printf("💰 Total P&L:        $%.2f\n", results.TotalPnL)
	fmt.Printf("🔄 Total Trades:     %d\n", results.TotalTrades)
	fmt.Printf("✅ Win Rate:         %.1f%%\n", results.WinRate)
	fmt.Printf("💹 Profit Factor:    %s\n", formatRatio(results.ProfitFactor))
	fmt.Printf("📉 Max Drawdown:     $%.2f\n", results.MaxDrawdown)
	fmt.Printf("📊 Sharpe Ratio:     %s\n", formatRatio(results.SharpeRatio))
	fmt.Printf("📊 Sortino Ratio:    %s\n", formatRatio(results.SortinoRatio))

	if results.VolWarnings > 0 {
		fmt.Printf("⚠️  Vol Warnings:     %d days above threshold\n", results.VolWarnings)
	}
}

// PrintRankingTable renders the top entries of a ranking as a console table.
func (r *DefaultConsoleReporter) PrintRankingTable(entries []optimization.RankedEntry, topN int) {
	if topN <= 0 || topN > len(entries) {
		topN = len(entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("OPTIMIZATION RANKING (top %d of %d)", topN, len(entries))
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		"Rank", "OTM%", "Wing", "MaxChg%", "Credit",
		"OOS Sortino", "OOS P&L", "IS Sortino", "Robustness",
	})

	for _, e := range entries[:topN] {
		oosSortino := "-"
		oosPnL := "-"
		if e.OutOfSample != nil {
			oosSortino = formatRatio(e.OutOfSample.SortinoRatio)
			oosPnL = fmt.Sprintf("$%.0f", e.OutOfSample.TotalPnL)
		}
		t.AppendRow(table.Row{
			e.Rank,
			fmt.Sprintf("%.2f", e.Params.OTMPercent),
			fmt.Sprintf("%.0f", e.Params.WingWidth),
			fmt.Sprintf("%.2f", e.Params.IntradayChangeMax),
			fmt.Sprintf("%.2f", e.Params.Credit),
			oosSortino,
			oosPnL,
			formatRatio(e.InSample.SortinoRatio),
			formatRatio(e.Robustness),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}

// PrintWindowPlan prints the walk-forward window layout.
func PrintWindowPlan(windows []validation.WindowSpec) {
	fmt.Println("\n🔄 ================ WALK-FORWARD WINDOWS ================")
	fmt.Printf("Created %d windows\n", len(windows))
	for i, w := range windows {
		fmt.Printf("📊 Window %d/%d: Train %s → %s, Test %s → %s\n",
			i+1, len(windows),
			w.TrainStart.Format("2006-01-02"),
			w.TrainEnd.Format("2006-01-02"),
			w.TestStart.Format("2006-01-02"),
			w.TestEnd.Format("2006-01-02"))
	}
	fmt.Println()
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}

// OutputConsole is a package-level convenience function.
func OutputConsole(results *backtest.BacktestResults) {
	reporter := NewDefaultConsoleReporter()
	reporter.OutputResults(results)
}
