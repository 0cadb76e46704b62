package backtest

import "time"

// TradeRecord is one simulated condor trade, opened and expired on the same
// trading day. Records are immutable once created.
type TradeRecord struct {
	Date            time.Time `json:"date"`
	PnL             float64   `json:"pnl"`
	UnderlyingClose float64   `json:"underlying_close"`
}

// BacktestResults holds the outcome of one backtest leg together with its
// derived statistics. TotalTrades always equals len(Trades).
type BacktestResults struct {
	TotalPnL     float64       `json:"total_pnl"`
	TotalTrades  int           `json:"trades"`
	WinRate      float64       `json:"win_rate"`
	ProfitFactor float64       `json:"profit_factor"`
	MaxDrawdown  float64       `json:"max_drawdown"`
	SharpeRatio  float64       `json:"sharpe"`
	SortinoRatio float64       `json:"sortino"`
	Trades       []TradeRecord `json:"trades_list,omitempty"`
	IsTrain      bool          `json:"is_train"`

	// VolWarnings counts days whose volatility proxy exceeded the warning
	// threshold. Diagnostic only.
	VolWarnings int `json:"-"`
}

// NewResults builds a result from a chronological trade list and computes
// all derived statistics once.
func NewResults(trades []TradeRecord, isTrain bool) *BacktestResults {
	r := &BacktestResults{
		Trades:  trades,
		IsTrain: isTrain,
	}
	r.UpdateMetrics()
	return r
}
