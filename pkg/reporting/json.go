package reporting

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/optimization"
)

// DefaultJSONReporter implements JSON output functionality.
type DefaultJSONReporter struct{}

// NewDefaultJSONReporter creates a new JSON reporter.
func NewDefaultJSONReporter() *DefaultJSONReporter {
	return &DefaultJSONReporter{}
}

// safeFloat marshals non-finite values as JSON strings ("Infinity",
// "-Infinity", "NaN"), since encoding/json rejects bare non-finite numbers.
type safeFloat float64

func (f safeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	default:
		return json.Marshal(v)
	}
}

// resultJSON mirrors BacktestResults with the downstream field names.
type resultJSON struct {
	TotalPnL     safeFloat `json:"total_pnl"`
	Trades       int       `json:"trades"`
	WinRate      safeFloat `json:"win_rate"`
	ProfitFactor safeFloat `json:"profit_factor"`
	MaxDrawdown  safeFloat `json:"max_drawdown"`
	Sharpe       safeFloat `json:"sharpe"`
	Sortino      safeFloat `json:"sortino"`
	IsTrain      bool      `json:"is_train"`
}

type entryJSON struct {
	Rank        int                   `json:"rank"`
	Params      backtest.ParameterSet `json:"params"`
	InSample    resultJSON            `json:"in_sample"`
	OutOfSample *resultJSON           `json:"out_of_sample"`
	Robustness  safeFloat             `json:"robustness"`
}

func toResultJSON(res *backtest.BacktestResults) *resultJSON {
	if res == nil {
		return nil
	}
	return &resultJSON{
		TotalPnL:     safeFloat(res.TotalPnL),
		Trades:       res.TotalTrades,
		WinRate:      safeFloat(res.WinRate),
		ProfitFactor: safeFloat(res.ProfitFactor),
		MaxDrawdown:  safeFloat(res.MaxDrawdown),
		Sharpe:       safeFloat(res.SharpeRatio),
		Sortino:      safeFloat(res.SortinoRatio),
		IsTrain:      res.IsTrain,
	}
}

// FormatRanking renders a ranking as indented JSON.
func (r *DefaultJSONReporter) FormatRanking(entries []optimization.RankedEntry) ([]byte, error) {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{
			Rank:        e.Rank,
			Params:      e.Params,
			InSample:    *toResultJSON(e.InSample),
			OutOfSample: toResultJSON(e.OutOfSample),
			Robustness:  safeFloat(e.Robustness),
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteRankingJSON writes the full ranking to a JSON file.
func (r *DefaultJSONReporter) WriteRankingJSON(entries []optimization.RankedEntry, path string) error {
	data, err := r.FormatRanking(entries)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// WriteRankingJSON writes a ranking using the default reporter.
func WriteRankingJSON(entries []optimization.RankedEntry, path string) error {
	reporter := NewDefaultJSONReporter()
	return reporter.WriteRankingJSON(entries, path)
}
