package backtest

import "math"

// VolWarningThreshold is the volatility-proxy close above which a day is
// flagged. The flag is advisory and never blocks a trade.
const VolWarningThreshold = 22.0

// DayDecision is the outcome of evaluating one trading day.
type DayDecision struct {
	ShouldTrade       bool
	Reason            string
	IntradayChangePct float64
	VolWarning        bool
}

// EvaluateDay decides whether the condor rule trades on a single day.
// volClose is the optional same-day volatility-proxy close (nil when the
// series has no point for the date). The intraday-change cap is the only
// blocking rule.
func EvaluateDay(volClose *float64, open, entry, intradayChangeMax float64) (DayDecision, error) {
	if open <= 0 {
		return DayDecision{}, ErrInvalidOpen
	}

	changePct := (entry - open) / open * 100

	decision := DayDecision{
		IntradayChangePct: changePct,
		VolWarning:        volClose != nil && *volClose > VolWarningThreshold,
	}

	if math.Abs(changePct) > intradayChangeMax {
		decision.Reason = "intraday change exceeds cap"
		return decision, nil
	}

	decision.ShouldTrade = true
	decision.Reason = "within intraday change cap"
	return decision, nil
}
