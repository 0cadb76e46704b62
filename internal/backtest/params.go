package backtest

import "fmt"

// ParameterSet is one immutable candidate configuration of the condor rule.
type ParameterSet struct {
	OTMPercent        float64 `json:"otm_percent"`
	WingWidth         float64 `json:"wing_width"`
	IntradayChangeMax float64 `json:"intraday_change_max"`
	Credit            float64 `json:"credit"`
}

// Validate fails fast on non-positive fields so a bad set never produces a
// partial result.
func (p ParameterSet) Validate() error {
	if p.OTMPercent <= 0 {
		return fmt.Errorf("%w: otm_percent must be positive, got %.4f", ErrInvalidParameter, p.OTMPercent)
	}
	if p.WingWidth <= 0 {
		return fmt.Errorf("%w: wing_width must be positive, got %.4f", ErrInvalidParameter, p.WingWidth)
	}
	if p.IntradayChangeMax <= 0 {
		return fmt.Errorf("%w: intraday_change_max must be positive, got %.4f", ErrInvalidParameter, p.IntradayChangeMax)
	}
	if p.Credit <= 0 {
		return fmt.Errorf("%w: credit must be positive, got %.4f", ErrInvalidParameter, p.Credit)
	}
	return nil
}

// String renders the set the way it appears in reports.
func (p ParameterSet) String() string {
	return fmt.Sprintf("otm=%.2f%% wing=%.0f maxchg=%.2f%% credit=%.2f",
		p.OTMPercent, p.WingWidth, p.IntradayChangeMax, p.Credit)
}
