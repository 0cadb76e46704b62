package backtest

import "sort"

// CombineResults merges per-window results into one result by flattening all
// trades, sorting them by date, and recomputing every statistic over the
// stitched sequence.
//
// Per-window max drawdowns are never summed: windows may overlap, so local
// drawdowns are not a valid bound on the global equity path.
func CombineResults(results []*BacktestResults, isTrain bool) *BacktestResults {
	total := 0
	volWarnings := 0
	for _, r := range results {
		total += len(r.Trades)
		volWarnings += r.VolWarnings
	}

	trades := make([]TradeRecord, 0, total)
	for _, r := range results {
		trades = append(trades, r.Trades...)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.Before(trades[j].Date)
	})

	combined := NewResults(trades, isTrain)
	combined.VolWarnings = volWarnings
	return combined
}
