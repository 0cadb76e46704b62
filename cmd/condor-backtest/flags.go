package main

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// BacktestFlags holds all command line flags for the single-run backtest command
type BacktestFlags struct {
	// Data
	DataFile *string
	VolFile  *string
	Start    *string
	End      *string
	Period   *string

	// Condor parameters
	OTMPercent        *float64
	WingWidth         *float64
	IntradayChangeMax *float64
	Credit            *float64

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewBacktestFlags creates and registers all command line flags
func NewBacktestFlags() *BacktestFlags {
	return &BacktestFlags{
		// Data
		DataFile: flag.String("data", "", "Path to daily OHLC CSV file (required)"),
		VolFile:  flag.String("vol-data", "", "Path to volatility proxy CSV file (date,close)"),
		Start:    flag.String("start", "", "Backtest start date (YYYY-MM-DD, default: first bar)"),
		End:      flag.String("end", "", "Backtest end date (YYYY-MM-DD, default: last bar)"),
		Period:   flag.String("period", "", "Limit data to trailing window (e.g., 180d, 365d)"),

		// Condor parameters
		OTMPercent:        flag.Float64("otm", DefaultOTMPercent, "Short strike OTM distance in %"),
		WingWidth:         flag.Float64("wing", DefaultWingWidth, "Wing width in index points"),
		IntradayChangeMax: flag.Float64("intraday-max", DefaultIntradayChangeMax, "Maximum intraday change % to allow entry"),
		Credit:            flag.Float64("credit", DefaultCredit, "Assumed collected credit in points"),

		// Output options
		OutputDir:   flag.String("output", DefaultResultsDir, "Output directory for the trade log"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only, do not write files"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateBacktestFlags performs validation on flag combinations
func ValidateBacktestFlags(flags *BacktestFlags) error {
	if *flags.DataFile == "" {
		return fmt.Errorf("data file is required (-data)")
	}

	if *flags.Start != "" {
		if _, err := time.Parse("2006-01-02", *flags.Start); err != nil {
			return fmt.Errorf("invalid start date %q (use YYYY-MM-DD)", *flags.Start)
		}
	}
	if *flags.End != "" {
		if _, err := time.Parse("2006-01-02", *flags.End); err != nil {
			return fmt.Errorf("invalid end date %q (use YYYY-MM-DD)", *flags.End)
		}
	}

	return nil
}

// PrintBacktestUsageExamples prints common invocations
func PrintBacktestUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"condor-backtest -data data/index_daily.csv",
			"Backtest the default condor over the full data period",
		},
		{
			"condor-backtest -data data/index_daily.csv -otm 0.6 -wing 50 -credit 2.0",
			"Backtest a specific parameter set",
		},
		{
			"condor-backtest -data data/index_daily.csv -vol-data data/vix_daily.csv",
			"Backtest with volatility warnings from a proxy series",
		},
		{
			"condor-backtest -data data/index_daily.csv -start 2024-01-02 -end 2024-12-31",
			"Backtest an explicit date range",
		},
		{
			"condor-backtest -data data/index_daily.csv -period 90d -console-only",
			"Backtest the trailing quarter without writing the trade log",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}

// PrintBacktestFlagGroups prints flags organized by category
func PrintBacktestFlagGroups() {
	fmt.Printf(`
📊 DATA FLAGS:
  -data FILE            Daily OHLC CSV file (date,open,high,low,close)
  -vol-data FILE        Volatility proxy CSV file (date,close)
  -start DATE           Backtest start date YYYY-MM-DD (default: first bar)
  -end DATE             Backtest end date YYYY-MM-DD (default: last bar)
  -period PERIOD        Limit data to trailing window (90d, 365d)

🎯 CONDOR PARAMETER FLAGS:
  -otm PCT              Short strike OTM distance in %% (default: 0.5)
  -wing POINTS          Wing width in index points (default: 50)
  -intraday-max PCT     Maximum intraday change %% to enter (default: 0.8)
  -credit POINTS        Assumed collected credit in points (default: 2.0)

📁 OUTPUT FLAGS:
  -output DIR           Output directory for trades.csv (default: results)
  -console-only         Console output only, no file output
  -env FILE             Environment file path (default: .env)

❓ HELP FLAGS:
  -version              Show version information
  -help                 Show this help message
`)
}
