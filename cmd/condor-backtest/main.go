package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantforge/condor-backtest/internal/backtest"
	datamanager "github.com/quantforge/condor-backtest/pkg/data"
	"github.com/quantforge/condor-backtest/pkg/reporting"
	"github.com/quantforge/condor-backtest/pkg/types"
)

const (
	AppName    = "Condor Backtest"
	AppVersion = "1.0.0"

	// Default values
	DefaultOTMPercent        = 0.5
	DefaultWingWidth         = 50.0
	DefaultIntradayChangeMax = 0.8
	DefaultCredit            = 2.0
	DefaultResultsDir        = "results"
)

func main() {
	flags := NewBacktestFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidateBacktestFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

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

	params := backtest.ParameterSet{
		OTMPercent:        *flags.OTMPercent,
		WingWidth:         *flags.WingWidth,
		IntradayChangeMax: *flags.IntradayChangeMax,
		Credit:            *flags.Credit,
	}

	engine, err := backtest.NewEngine(params)
	if err != nil {
		log.Fatalf("❌ Invalid parameters: %v", err)
	}

	start, end := resolveDateRange(flags, bars)
	log.Printf("📅 Backtest period: %s → %s (%d bars)",
		start.Format("2006-01-02"), end.Format("2006-01-02"), len(bars))
	log.Printf("🎯 Parameters: %s", params)

	results, err := engine.Run(start, end, bars, volProxies)
	if err != nil {
		log.Fatalf("❌ Backtest failed: %v", err)
	}

	reporting.OutputConsole(results)

	if !*flags.ConsoleOnly {
		tradesPath := filepath.Join(*flags.OutputDir, "trades.csv")
		if err := reporting.WriteTradesCSV(results, tradesPath); err != nil {
			log.Printf("❌ Failed to write %s: %v", tradesPath, err)
		} else {
			log.Printf("💾 Trade log written to %s", tradesPath)
		}
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - 0DTE Iron Condor Backtesting\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))

	PrintBacktestUsageExamples()
	PrintBacktestFlagGroups()

	fmt.Printf("\nFor more information, see the README or documentation.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func resolveDateRange(flags *BacktestFlags, bars []types.Bar) (time.Time, time.Time) {
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
