package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OptimizeFlags holds all command line flags for the grid-search command
type OptimizeFlags struct {
	// Data
	DataFile *string
	VolFile  *string
	Start    *string
	End      *string
	Period   *string

	// Parameter ranges (comma-separated values, empty = default grid)
	OTMRange      *string
	WingRange     *string
	IntradayRange *string
	CreditRange   *string

	// Walk-forward validation
	WFEnable      *bool
	WFTrainMonths *int
	WFTestMonths  *int

	// Execution
	Workers     *int
	MetricsAddr *string

	// Output options
	OutputDir   *string
	TopN        *int
	ConsoleOnly *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewOptimizeFlags creates and registers all command line flags
func NewOptimizeFlags() *OptimizeFlags {
	return &OptimizeFlags{
		// Data
		DataFile: flag.String("data", "", "Path to daily OHLC CSV file (required)"),
		VolFile:  flag.String("vol-data", "", "Path to volatility proxy CSV file (date,close)"),
		Start:    flag.String("start", "", "Backtest start date (YYYY-MM-DD, default: first bar)"),
		End:      flag.String("end", "", "Backtest end date (YYYY-MM-DD, default: last bar)"),
		Period:   flag.String("period", "", "Limit data to trailing window (e.g., 180d, 365d)"),

		// Parameter ranges
		OTMRange:      flag.String("otm-range", "", "Comma-separated OTM distances in % (default grid if empty)"),
		WingRange:     flag.String("wing-range", "", "Comma-separated wing widths in points"),
		IntradayRange: flag.String("intraday-range", "", "Comma-separated intraday change caps in %"),
		CreditRange:   flag.String("credit-range", "", "Comma-separated credit assumptions in points"),

		// Walk-forward validation
		WFEnable:      flag.Bool("wf-enable", false, "Enable rolling walk-forward validation"),
		WFTrainMonths: flag.Int("wf-train-months", DefaultTrainMonths, "Training window size (months of 30 days)"),
		WFTestMonths:  flag.Int("wf-test-months", DefaultTestMonths, "Test window size (months of 30 days)"),

		// Execution
		Workers:     flag.Int("workers", 0, "Parallel workers (0 = one per CPU)"),
		MetricsAddr: flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)"),

		// Output options
		OutputDir:   flag.String("output", DefaultResultsDir, "Output directory for ranking files"),
		TopN:        flag.Int("top", DefaultTopN, "Number of top entries to print"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only, do not write files"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateOptimizeFlags performs validation on flag combinations
func ValidateOptimizeFlags(flags *OptimizeFlags) error {
	if *flags.DataFile == "" {
		return fmt.Errorf("data file is required (-data)")
	}

	if *flags.WFEnable {
		if *flags.WFTrainMonths <= 0 || *flags.WFTestMonths <= 0 {
			return fmt.Errorf("walk-forward window months must be positive")
		}
		if *flags.WFTrainMonths <= *flags.WFTestMonths {
			return fmt.Errorf("training months (%d) should be greater than test months (%d)",
				*flags.WFTrainMonths, *flags.WFTestMonths)
		}
	}

	if *flags.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got: %d", *flags.Workers)
	}

	if *flags.TopN <= 0 {
		return fmt.Errorf("top must be positive, got: %d", *flags.TopN)
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

// ParseRange parses a comma-separated list of floats ("0.3,0.5,1.0").
// An empty string returns nil so the caller can fall back to defaults.
func ParseRange(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range value %q: %w", part, err)
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("range %q contains no values", s)
	}
	return values, nil
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"condor-optimize -data data/index_daily.csv",
			"Grid search over the default ranges, full period, no validation",
		},
		{
			"condor-optimize -data data/index_daily.csv -wf-enable",
			"Grid search with rolling walk-forward validation (3m train, 1m test)",
		},
		{
			"condor-optimize -data data/index_daily.csv -vol-data data/vix_daily.csv -wf-enable",
			"Walk-forward search with volatility warnings from a proxy series",
		},
		{
			"condor-optimize -data data/index_daily.csv -otm-range 0.4,0.6,0.8 -wing-range 50,75",
			"Search a custom subset of the parameter space",
		},
		{
			"condor-optimize -data data/index_daily.csv -start 2023-01-01 -end 2024-06-30",
			"Restrict the search to an explicit date range",
		},
		{
			"condor-optimize -data data/index_daily.csv -period 365d -workers 8",
			"Search the trailing year with 8 parallel workers",
		},
		{
			"condor-optimize -data data/index_daily.csv -console-only -top 20",
			"Print the top 20 rows without writing result files",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}

// PrintFlagGroups prints flags organized by category for better readability
func PrintFlagGroups() {
	fmt.Printf(`
📊 DATA FLAGS:
  -data FILE            Daily OHLC CSV file (date,open,high,low,close)
  -vol-data FILE        Volatility proxy CSV file (date,close)
  -start DATE           Backtest start date YYYY-MM-DD (default: first bar)
  -end DATE             Backtest end date YYYY-MM-DD (default: last bar)
  -period PERIOD        Limit data to trailing window (180d, 365d)

🎯 PARAMETER RANGE FLAGS:
  -otm-range LIST       OTM distances in %% (default: 0.3,0.4,0.5,0.6,0.8,1.0,1.2,1.5)
  -wing-range LIST      Wing widths in points (default: 25,50,75,100)
  -intraday-range LIST  Intraday change caps in %% (default: 0.3,0.5,0.8,1.0,1.5)
  -credit-range LIST    Credit assumptions in points (default: 1.0,1.5,2.0,2.5,3.0)

🔄 WALK-FORWARD VALIDATION FLAGS:
  -wf-enable            Enable rolling walk-forward validation
  -wf-train-months N    Training window size (default: 3)
  -wf-test-months N     Test window size (default: 1)

⚙️ EXECUTION FLAGS:
  -workers N            Parallel workers, 0 = one per CPU (default: 0)
  -metrics-addr ADDR    Serve Prometheus metrics (e.g., :9090)

📁 OUTPUT FLAGS:
  -output DIR           Output directory (default: results)
  -top N                Top entries to print (default: 10)
  -console-only         Console output only, no file output
  -env FILE             Environment file path (default: .env)

❓ HELP FLAGS:
  -version              Show version information
  -help                 Show this help message
`)
}
