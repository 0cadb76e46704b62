package backtest

import "math"

// MaxDrawdown folds the realized equity path of a date-sorted trade sequence
// into its largest peak-to-trough excursion. The fold reflects the path, not
// the final totals, so it must always run over the full stitched sequence.
func MaxDrawdown(trades []TradeRecord) float64 {
	var cumulative, peak, drawdown float64
	for _, t := range trades {
		cumulative += t.PnL
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > drawdown {
			drawdown = dd
		}
	}
	return drawdown
}

// CalculateWinRate returns the percentage of winning trades.
func (r *BacktestResults) CalculateWinRate() float64 {
	if len(r.Trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range r.Trades {
		if t.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(r.Trades)) * 100
}

// CalculateProfitFactor returns |gross wins / gross losses|, or 0 when there
// are no losing trades.
func (r *BacktestResults) CalculateProfitFactor() float64 {
	var grossWin, grossLoss float64
	for _, t := range r.Trades {
		if t.PnL > 0 {
			grossWin += t.PnL
		} else {
			grossLoss += t.PnL
		}
	}
	if grossLoss == 0 {
		return 0
	}
	return math.Abs(grossWin / grossLoss)
}

// CalculateSharpeRatio returns mean P&L over population standard deviation,
// or 0 with fewer than two trades or zero deviation.
func (r *BacktestResults) CalculateSharpeRatio() float64 {
	if len(r.Trades) < 2 {
		return 0
	}
	pnls := make([]float64, len(r.Trades))
	for i, t := range r.Trades {
		pnls[i] = t.PnL
	}
	stdev := popStdDev(pnls)
	if stdev == 0 {
		return 0
	}
	return mean(pnls) / stdev
}

// CalculateSortinoRatio returns mean P&L over the population standard
// deviation of losing trades only. With no losing trades it is +Inf when the
// mean is positive and 0 otherwise.
func (r *BacktestResults) CalculateSortinoRatio() float64 {
	if len(r.Trades) == 0 {
		return 0
	}
	var pnls, losses []float64
	for _, t := range r.Trades {
		pnls = append(pnls, t.PnL)
		if t.PnL < 0 {
			losses = append(losses, t.PnL)
		}
	}
	avg := mean(pnls)
	if len(losses) == 0 {
		if avg > 0 {
			return math.Inf(1)
		}
		return 0
	}
	downside := popStdDev(losses)
	if downside == 0 {
		return 0
	}
	return avg / downside
}

// UpdateMetrics recomputes every derived statistic from the trade list.
func (r *BacktestResults) UpdateMetrics() {
	r.TotalTrades = len(r.Trades)
	r.TotalPnL = 0
	for _, t := range r.Trades {
		r.TotalPnL += t.PnL
	}
	r.WinRate = r.CalculateWinRate()
	r.ProfitFactor = r.CalculateProfitFactor()
	r.MaxDrawdown = MaxDrawdown(r.Trades)
	r.SharpeRatio = r.CalculateSharpeRatio()
	r.SortinoRatio = r.CalculateSortinoRatio()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - avg
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
