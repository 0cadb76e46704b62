package backtest

import "math"

// ContractMultiplier is the fixed dollar value of one index point.
const ContractMultiplier = 10.0

// SimulatePayoff returns the P&L of a fixed-width credit-spread structure
// held to expiration, using intrinsic value only.
//
// A close exactly at a short strike counts as inside the range (max profit):
// intrinsic value at the strike is zero. Historical results depend on this
// boundary, so it must not change.
func SimulatePayoff(close, callStrike, putStrike, wingWidth, credit float64) float64 {
	switch {
	case close <= putStrike:
		loss := math.Min(putStrike-close, wingWidth) - credit
		return -loss * ContractMultiplier
	case close >= callStrike:
		loss := math.Min(close-callStrike, wingWidth) - credit
		return -loss * ContractMultiplier
	default:
		return credit * ContractMultiplier
	}
}
