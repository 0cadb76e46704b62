package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/quantforge/condor-backtest/pkg/types"
)

// entryFillFraction approximates a mid-morning fill: the entry price has
// moved 30% of the way from the open toward the bar's high/low midpoint.
const entryFillFraction = 0.3

// Engine runs the condor rule over a date range for one parameter set.
// Given the same inputs it produces a bit-identical result.
type Engine struct {
	params ParameterSet
}

// NewEngine validates the parameter set and returns a runner for it.
func NewEngine(params ParameterSet) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: params}, nil
}

// Params returns the parameter set this engine evaluates.
func (e *Engine) Params() ParameterSet {
	return e.params
}

// Run evaluates every in-range bar chronologically and simulates a condor
// payoff for each day the rule trades. It returns ErrNoData when no bars
// fall inside [start, end].
func (e *Engine) Run(start, end time.Time, bars []types.Bar, volProxies []types.VolPoint) (*BacktestResults, error) {
	inRange := filterBars(bars, start, end)
	if len(inRange) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoData,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	volByDay := indexVolProxies(volProxies)

	trades := make([]TradeRecord, 0, len(inRange))
	volWarnings := 0

	for _, bar := range inRange {
		entry := bar.Open + entryFillFraction*(bar.Mid()-bar.Open)

		var volClose *float64
		if v, ok := volByDay[dayKey(bar.Date)]; ok {
			volClose = &v
		}

		decision, err := EvaluateDay(volClose, bar.Open, entry, e.params.IntradayChangeMax)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", bar.Date.Format("2006-01-02"), err)
		}
		if decision.VolWarning {
			volWarnings++
		}
		if !decision.ShouldTrade {
			continue
		}

		callStrike := math.Round(entry * (1 + e.params.OTMPercent/100))
		putStrike := math.Round(entry * (1 - e.params.OTMPercent/100))
		pnl := SimulatePayoff(bar.Close, callStrike, putStrike, e.params.WingWidth, e.params.Credit)

		trades = append(trades, TradeRecord{
			Date:            bar.Date,
			PnL:             pnl,
			UnderlyingClose: bar.Close,
		})
	}

	results := NewResults(trades, true)
	results.VolWarnings = volWarnings
	return results, nil
}

func filterBars(bars []types.Bar, start, end time.Time) []types.Bar {
	out := make([]types.Bar, 0, len(bars))
	for _, b := range bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func indexVolProxies(points []types.VolPoint) map[string]float64 {
	byDay := make(map[string]float64, len(points))
	for _, p := range points {
		byDay[dayKey(p.Date)] = p.Close
	}
	return byDay
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
