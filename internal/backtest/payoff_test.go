package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSimulatePayoff_InsideBand tests max profit when the close stays between the short strikes
func TestSimulatePayoff_InsideBand(t *testing.T) {
	pnl := SimulatePayoff(5195, 5232, 5128, 50, 2.5)
	assert.Equal(t, 25.0, pnl)
}

// TestSimulatePayoff_PutBreached tests a partial loss when the close breaches the put strike
func TestSimulatePayoff_PutBreached(t *testing.T) {
	// loss = min(5128-5100, 50) - 2.5 = 25.5 points
	pnl := SimulatePayoff(5100, 5232, 5128, 50, 2.5)
	assert.Equal(t, -255.0, pnl)
}

// TestSimulatePayoff_BeyondWing tests the max loss cap when the close moves past the wing
func TestSimulatePayoff_BeyondWing(t *testing.T) {
	// loss = min(150, 50) - 2.5 = 47.5 points
	pnl := SimulatePayoff(5000, 5232, 5128, 50, 2.5)
	assert.Equal(t, -475.0, pnl)
}

// TestSimulatePayoff_CallBreached tests a partial loss on the call side
func TestSimulatePayoff_CallBreached(t *testing.T) {
	// loss = min(5250-5232, 50) - 2.5 = 15.5 points
	pnl := SimulatePayoff(5250, 5232, 5128, 50, 2.5)
	assert.Equal(t, -155.0, pnl)
}

// TestSimulatePayoff_ExactlyAtPutStrike tests that a close exactly at the short
// put strike still pays max profit
func TestSimulatePayoff_ExactlyAtPutStrike(t *testing.T) {
	// intrinsic value at the strike is zero, so the full credit is kept
	pnl := SimulatePayoff(5128, 5232, 5128, 50, 2.5)
	assert.Equal(t, 25.0, pnl)
}

// TestSimulatePayoff_ExactlyAtCallStrike tests the symmetric boundary on the call side
func TestSimulatePayoff_ExactlyAtCallStrike(t *testing.T) {
	pnl := SimulatePayoff(5232, 5232, 5128, 50, 2.5)
	assert.Equal(t, 25.0, pnl)
}

// TestSimulatePayoff_Bounds tests that every payoff stays between max loss and max profit
func TestSimulatePayoff_Bounds(t *testing.T) {
	const (
		callStrike = 5232.0
		putStrike  = 5128.0
		wing       = 50.0
		credit     = 2.5
	)
	maxProfit := credit * ContractMultiplier
	maxLoss := -(wing - credit) * ContractMultiplier

	for close := 4900.0; close <= 5500.0; close += 7.3 {
		pnl := SimulatePayoff(close, callStrike, putStrike, wing, credit)
		assert.LessOrEqual(t, pnl, maxProfit, "close=%.1f", close)
		assert.GreaterOrEqual(t, pnl, maxLoss, "close=%.1f", close)
	}
}
