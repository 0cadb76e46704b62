package optimization

import (
	"math"
	"sort"

	"github.com/quantforge/condor-backtest/internal/backtest"
)

// RankedEntry is one row of the final ranking.
type RankedEntry struct {
	Rank        int                       `json:"rank"`
	Params      backtest.ParameterSet     `json:"params"`
	InSample    *backtest.BacktestResults `json:"in_sample"`
	OutOfSample *backtest.BacktestResults `json:"out_of_sample"`
	Robustness  float64                   `json:"robustness"`
}

// Rank orders evaluations descending by out-of-sample Sortino ratio, falling
// back to the in-sample Sortino when a set has no test leg. The sort is
// stable and ranks start at 1.
//
// The robustness score (out-of-sample Sortino over in-sample Sortino) flags
// overfit parameter choices. It is diagnostic only and never alters the
// order.
func Rank(evaluations []Evaluation) []RankedEntry {
	entries := make([]RankedEntry, len(evaluations))
	for i, e := range evaluations {
		entries[i] = RankedEntry{
			Params:      e.Params,
			InSample:    e.Train,
			OutOfSample: e.Test,
			Robustness:  robustness(e.Train, e.Test),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return sortKey(entries[i]) > sortKey(entries[j])
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func sortKey(e RankedEntry) float64 {
	if e.OutOfSample != nil {
		return e.OutOfSample.SortinoRatio
	}
	return e.InSample.SortinoRatio
}

func robustness(train, test *backtest.BacktestResults) float64 {
	if test == nil {
		return 1.0
	}
	if math.IsInf(train.SortinoRatio, 1) && math.IsInf(test.SortinoRatio, 1) {
		return 1.0
	}
	if train.SortinoRatio > 0 {
		return test.SortinoRatio / train.SortinoRatio
	}
	return 0
}
