package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantforge/condor-backtest/internal/monitoring"
	datamanager "github.com/quantforge/condor-backtest/pkg/data"
	"github.com/quantforge/condor-backtest/pkg/optimization"
	"github.com/quantforge/condor-backtest/pkg/reporting"
	"github.com/quantforge/condor-backtest/pkg/types"
	"github.com/quantforge/condor-backtest/pkg/validation"
)

const (
	AppName    = "Condor Optimize"
	AppVersion = "1.0.0"

	// Default values
	DefaultTrainMonths = 3
	DefaultTestMonths  = 1
	DefaultTopN        = 10
	DefaultResultsDir  = "results"
)

func main() {
	flags := NewOptimizeFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidateOptimizeFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	if *flags.MetricsAddr != "" {
		startMetricsServer(*flags.MetricsAddr)
	}

	// Load and validate the underlying series
	provider := datamanager.NewCSVProvider()
	bars, err := provider.LoadBars(*flags.DataFile)
	if err != nil {
		log.Fatalf("❌ Failed to load data: %v", err)
	}
	if err := provider.ValidateBars(bars); err != nil {
		log.Fatalf("❌ Invalid data in %s: %v", *flags.DataFile, err)
	}

	if *flags.Period != "" {
		period, ok := datamanager.ParseTrailingPeriod(*flags.Period)
		if !ok {
			log.Fatalf("❌ Invalid period format: %s (use 7d, 30d, 180d, 365d)", *flags.Period)
		}
		filter := datamanager.NewDefaultDataFilter()
		bars = filter.FilterByPeriod(bars, period)
	}
	if len(bars) == 0 {
		log.Fatalf("❌ No bars left after filtering")
	}

	var volProxies []types.VolPoint
	if *flags.VolFile != "" {
		volProxies, err = provider.LoadVolProxy(*flags.VolFile)
		if err != nil {
			log.Fatalf("❌ Failed to load volatility proxy: %v", err)
		}
		log.Printf("📈 Loaded %d volatility proxy points from %s", len(volProxies), *flags.VolFile)
	}

	start, end := resolveDateRange(flags, bars)
	log.Printf("📅 Backtest period: %s → %s (%d bars)",
		start.Format("2006-01-02"), end.Format("2006-01-02"), len(bars))

	// Plan walk-forward windows. An empty plan is not fatal: the search
	// falls back to a single full-period backtest per parameter set.
	wfConfig := validation.WalkForwardConfig{
		Enable:      *flags.WFEnable,
		TrainMonths: *flags.WFTrainMonths,
		TestMonths:  *flags.WFTestMonths,
	}
	var windows []validation.WindowSpec
	if wfConfig.Enable {
		windows = validation.PlanWindows(wfConfig.TrainMonths, wfConfig.TestMonths,
			start, end, datamanager.Dates(bars))
		if len(windows) == 0 {
			log.Printf("⚠️  Period too short for %dm/%dm walk-forward windows, falling back to full-period backtest",
				wfConfig.TrainMonths, wfConfig.TestMonths)
		} else {
			reporting.PrintWindowPlan(windows)
		}
	}

	grid, err := buildGrid(flags)
	if err != nil {
		log.Fatalf("❌ Invalid parameter ranges: %v", err)
	}

	workers := *flags.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log.Printf("🧮 Grid size: %d parameter sets, %d workers", grid.Count(), workers)

	orch := optimization.NewOrchestrator(bars, volProxies, start, end, windows)
	search := optimization.NewGridSearch(orch, workers, true)

	searchStart := time.Now()
	evaluations, err := search.Run(grid)
	if err != nil {
		log.Fatalf("❌ Grid search failed: %v", err)
	}
	log.Printf("✅ Evaluated %d parameter sets in %s", len(evaluations), time.Since(searchStart).Round(time.Millisecond))

	ranked := optimization.Rank(evaluations)

	console := reporting.NewDefaultConsoleReporter()
	console.PrintRankingTable(ranked, *flags.TopN)

	if !*flags.ConsoleOnly {
		writeRankingFiles(ranked, *flags.OutputDir)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Iron Condor Grid Search and Walk-Forward Validation\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))

	PrintUsageExamples()
	PrintFlagGroups()

	fmt.Printf("\nFor more information, see the README or documentation.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		log.Printf("📊 Serving Prometheus metrics on %s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}

// resolveDateRange derives the backtest period from the flags, defaulting to
// the full extent of the loaded series.
func resolveDateRange(flags *OptimizeFlags, bars []types.Bar) (time.Time, time.Time) {
	start := bars[0].Date
	end := bars[len(bars)-1].Date

	if *flags.Start != "" {
		start, _ = time.Parse("2006-01-02", *flags.Start)
	}
	if *flags.End != "" {
		end, _ = time.Parse("2006-01-02", *flags.End)
	}
	return start, end
}

func buildGrid(flags *OptimizeFlags) (optimization.Grid, error) {
	grid := optimization.GetDefaultGrid()

	ranges := []struct {
		raw    string
		target *[]float64
	}{
		{*flags.OTMRange, &grid.OTMRange},
		{*flags.WingRange, &grid.WingRange},
		{*flags.IntradayRange, &grid.IntradayRange},
		{*flags.CreditRange, &grid.CreditRange},
	}
	for _, r := range ranges {
		values, err := ParseRange(r.raw)
		if err != nil {
			return optimization.Grid{}, err
		}
		if values != nil {
			*r.target = values
		}
	}

	return grid, nil
}

func writeRankingFiles(ranked []optimization.RankedEntry, outputDir string) {
	csvPath := filepath.Join(outputDir, "ranking.csv")
	if err := reporting.WriteRankingCSV(ranked, csvPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", csvPath, err)
	} else {
		log.Printf("💾 Ranking CSV written to %s", csvPath)
	}

	jsonPath := filepath.Join(outputDir, "ranking.json")
	if err := reporting.WriteRankingJSON(ranked, jsonPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", jsonPath, err)
	} else {
		log.Printf("💾 Ranking JSON written to %s", jsonPath)
	}

	xlsxPath := filepath.Join(outputDir, "ranking.xlsx")
	if err := reporting.WriteRankingXLSX(ranked, xlsxPath); err != nil {
		log.Printf("❌ Failed to write %s: %v", xlsxPath, err)
	} else {
		log.Printf("💾 Ranking workbook written to %s", xlsxPath)
	}
}
