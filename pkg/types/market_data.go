package types

import "time"

// Bar is one daily OHLC bar of the underlying index. Bars are loaded once
// per run and treated as read-only afterwards.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// VolPoint is an optional same-day volatility-proxy close (e.g. a volatility
// index). It is advisory only and never blocks a trade.
type VolPoint struct {
	Date  time.Time
	Close float64
}

// Mid returns the midpoint of the bar's high and low.
func (b Bar) Mid() float64 {
	return (b.High + b.Low) / 2
}
