package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DailyBar is one daily OHLC candle as written to the output CSV.
type DailyBar struct {
	Date  string
	Open  string
	High  string
	Low   string
	Close string
}

func main() {
	var (
		// Single-symbol backward compatible flags
		symbol = flag.String("symbol", "^spx", "Stooq symbol (e.g. ^spx, ^ndx, spy.us, ^vix)")

		// New multi options
		symbols = flag.String("symbols", "", "Comma-separated list of symbols (overrides -symbol if provided)")
		outdir  = flag.String("outdir", "data", "Directory to write CSV files")

		startDate = flag.String("start", "", "Start date (YYYY-MM-DD)")
		endDate   = flag.String("end", "", "End date (YYYY-MM-DD)")
		output    = flag.String("output", "", "Explicit output file path (only for a single symbol)")
	)

	flag.Parse()

	// Build symbol list
	symList := []string{}
	if strings.TrimSpace(*symbols) != "" {
		for _, s := range strings.Split(*symbols, ",") {
			ss := strings.ToLower(strings.TrimSpace(s))
			if ss != "" {
				symList = append(symList, ss)
			}
		}
	} else {
		symList = []string{strings.ToLower(strings.TrimSpace(*symbol))}
	}

	// Set default dates if not provided
	end := time.Now()
	start := end.AddDate(-2, 0, 0) // Default to 2 years of data

	if *startDate != "" {
		parsedStart, err := time.Parse("2006-01-02", *startDate)
		if err != nil {
			log.Fatalf("Invalid start date format: %v", err)
		}
		start = parsedStart
	}

	if *endDate != "" {
		parsedEnd, err := time.Parse("2006-01-02", *endDate)
		if err != nil {
			log.Fatalf("Invalid end date format: %v", err)
		}
		end = parsedEnd
	}

	// Ensure base output directory exists
	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	fmt.Println("🚀 Daily Index Data Downloader")
	fmt.Println("====================================")
	fmt.Printf("🎯 Symbols: %s\n", strings.Join(symList, ", "))
	fmt.Printf("📅 Date Range: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Println()

	if len(symList) == 1 && strings.TrimSpace(*output) != "" {
		downloadOne(symList[0], start, end, *output)
		return
	}

	for _, sym := range symList {
		outPath := filepath.Join(*outdir, fileNameFor(sym))
		downloadOne(sym, start, end, outPath)
	}

	fmt.Println("\n🎉 All downloads completed!")
}

// fileNameFor maps a Stooq symbol to an output file name ("^spx" -> "spx_daily.csv").
func fileNameFor(symbol string) string {
	name := strings.TrimPrefix(symbol, "^")
	name = strings.ReplaceAll(name, ".", "_")
	return name + "_daily.csv"
}

func downloadOne(symbol string, start, end time.Time, outputPath string) {
	fmt.Printf("\n📊 Downloading daily data for %s\n", symbol)
	fmt.Printf("📅 Period: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Printf("📁 Output: %s\n", outputPath)
	fmt.Println("🔄 Fetching data...")

	bars, err := downloadStooqDaily(symbol, start, end)
	if err != nil {
		log.Printf("❌ Failed to download data for %s: %v", symbol, err)
		return
	}

	fmt.Printf("✅ Downloaded %d daily bars\n", len(bars))

	// Ensure parent directory exists for this file
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		log.Printf("❌ Failed to prepare output directory %s: %v", filepath.Dir(outputPath), err)
		return
	}

	if err := saveToCSV(bars, outputPath); err != nil {
		log.Printf("❌ Failed to save %s: %v", symbol, err)
		return
	}

	fmt.Printf("💾 Data saved to %s\n", outputPath)
	printSummary(bars)
}

func printSummary(bars []DailyBar) {
	if len(bars) == 0 {
		return
	}

	fmt.Println("\n📊 DATA SUMMARY:")
	fmt.Printf("  First: %s\n", bars[0].Date)
	fmt.Printf("  Last:  %s\n", bars[len(bars)-1].Date)
	fmt.Printf("  Total: %d daily candles\n", len(bars))

	highPrice := 0.0
	lowPrice := 1e9
	for _, bar := range bars {
		high, _ := strconv.ParseFloat(bar.High, 64)
		low, _ := strconv.ParseFloat(bar.Low, 64)
		if high > highPrice {
			highPrice = high
		}
		if low > 0 && low < lowPrice {
			lowPrice = low
		}
	}

	fmt.Printf("  High:  %.2f\n", highPrice)
	fmt.Printf("  Low:   %.2f\n", lowPrice)
}

// downloadStooqDaily fetches the full daily history for a symbol from the
// Stooq CSV endpoint and keeps rows inside [start, end].
func downloadStooqDaily(symbol string, start, end time.Time) ([]DailyBar, error) {
	url := fmt.Sprintf("https://stooq.com/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		symbol, start.Format("20060102"), end.Format("20060102"))

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	// Header: Date,Open,High,Low,Close,Volume
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 5 || !strings.EqualFold(header[0], "date") {
		return nil, fmt.Errorf("unexpected response format (symbol %q unknown?)", symbol)
	}

	var bars []DailyBar
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		if len(record) < 5 {
			continue
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}

		bars = append(bars, DailyBar{
			Date:  record[0],
			Open:  record[1],
			High:  record[2],
			Low:   record[3],
			Close: record[4],
		})
	}

	return bars, nil
}

func saveToCSV(bars []DailyBar, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"date", "open", "high", "low", "close"}); err != nil {
		return err
	}

	for _, bar := range bars {
		record := []string{bar.Date, bar.Open, bar.High, bar.Low, bar.Close}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
