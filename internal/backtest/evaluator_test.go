package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluateDay_QuietDayWithVolWarning tests that an elevated volatility proxy
// flags the day but never blocks the trade
func TestEvaluateDay_QuietDayWithVolWarning(t *testing.T) {
	vol := 28.0
	decision, err := EvaluateDay(&vol, 5180, 5185, 0.5)

	require.NoError(t, err)
	assert.True(t, decision.ShouldTrade)
	assert.True(t, decision.VolWarning)
	assert.InDelta(t, 0.0965, decision.IntradayChangePct, 0.001)
}

// TestEvaluateDay_ChangeExceedsCap tests that a large intraday move blocks the trade
func TestEvaluateDay_ChangeExceedsCap(t *testing.T) {
	decision, err := EvaluateDay(nil, 5000, 5060, 0.5)

	require.NoError(t, err)
	assert.False(t, decision.ShouldTrade)
	assert.InDelta(t, 1.2, decision.IntradayChangePct, 1e-9)
}

// TestEvaluateDay_NegativeChangeExceedsCap tests that the cap applies to the magnitude of the move
func TestEvaluateDay_NegativeChangeExceedsCap(t *testing.T) {
	decision, err := EvaluateDay(nil, 5000, 4940, 0.5)

	require.NoError(t, err)
	assert.False(t, decision.ShouldTrade)
	assert.InDelta(t, -1.2, decision.IntradayChangePct, 1e-9)
}

// TestEvaluateDay_ExactlyAtCap tests that a move exactly at the cap still trades
func TestEvaluateDay_ExactlyAtCap(t *testing.T) {
	decision, err := EvaluateDay(nil, 5000, 5025, 0.5)

	require.NoError(t, err)
	assert.True(t, decision.ShouldTrade)
}

// TestEvaluateDay_MissingVolProxy tests that a day without a proxy point carries no warning
func TestEvaluateDay_MissingVolProxy(t *testing.T) {
	decision, err := EvaluateDay(nil, 5180, 5181, 1.0)

	require.NoError(t, err)
	assert.True(t, decision.ShouldTrade)
	assert.False(t, decision.VolWarning)
}

// TestEvaluateDay_VolBelowThreshold tests that a calm proxy close raises no warning
func TestEvaluateDay_VolBelowThreshold(t *testing.T) {
	vol := 15.0
	decision, err := EvaluateDay(&vol, 5180, 5181, 1.0)

	require.NoError(t, err)
	assert.False(t, decision.VolWarning)
}

// TestEvaluateDay_InvalidOpen tests that a non-positive open is rejected
func TestEvaluateDay_InvalidOpen(t *testing.T) {
	_, err := EvaluateDay(nil, 0, 5181, 1.0)
	assert.ErrorIs(t, err, ErrInvalidOpen)

	_, err = EvaluateDay(nil, -5, 5181, 1.0)
	assert.ErrorIs(t, err, ErrInvalidOpen)
}
