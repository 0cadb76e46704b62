package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/condor-backtest/pkg/types"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadBars_ValidFile tests loading a well-formed daily CSV
func TestLoadBars_ValidFile(t *testing.T) {
	path := writeTempCSV(t, "daily.csv", `date,open,high,low,close
2024-01-02,5000.0,5030.0,4990.0,5010.0
2024-01-03,5010.0,5040.0,5000.0,5035.0
`)

	provider := NewCSVProvider()
	bars, err := provider.LoadBars(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 5000.0, bars[0].Open)
	assert.Equal(t, 5030.0, bars[0].High)
	assert.Equal(t, 4990.0, bars[0].Low)
	assert.Equal(t, 5010.0, bars[0].Close)
}

// TestLoadBars_SkipsInvalidRows tests that malformed rows are dropped, not fatal
func TestLoadBars_SkipsInvalidRows(t *testing.T) {
	path := writeTempCSV(t, "daily.csv", `date,open,high,low,close
2024-01-02,5000.0,5030.0,4990.0,5010.0
not-a-date,5010.0,5040.0,5000.0,5035.0
2024-01-04,abc,5040.0,5000.0,5035.0
2024-01-05,5010.0,4000.0,5000.0,5035.0
2024-01-08,5010.0,5040.0,5000.0,5035.0
`)

	provider := NewCSVProvider()
	bars, err := provider.LoadBars(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), bars[1].Date)
}

// TestLoadBars_MissingFile tests the error for a nonexistent path
func TestLoadBars_MissingFile(t *testing.T) {
	provider := NewCSVProvider()
	_, err := provider.LoadBars("/nonexistent/daily.csv")
	assert.Error(t, err)
}

// TestLoadBars_Cached tests that repeat loads hit the cache
func TestLoadBars_Cached(t *testing.T) {
	path := writeTempCSV(t, "daily.csv", `date,open,high,low,close
2024-01-02,5000.0,5030.0,4990.0,5010.0
`)

	provider := NewCSVProvider()
	first, err := provider.LoadBars(path)
	require.NoError(t, err)

	// Replace the file; the cached series must still be served.
	require.NoError(t, os.WriteFile(path, []byte("date,open,high,low,close\n"), 0644))

	second, err := provider.LoadBars(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	provider.ClearCache()
	third, err := provider.LoadBars(path)
	require.NoError(t, err)
	assert.Empty(t, third)
}

// TestLoadVolProxy tests loading a two-column proxy series
func TestLoadVolProxy(t *testing.T) {
	path := writeTempCSV(t, "vix.csv", `date,close
2024-01-02,14.5
2024-01-03,28.1
`)

	provider := NewCSVProvider()
	points, err := provider.LoadVolProxy(path)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 28.1, points[1].Close)
}

// TestValidateBars_Empty tests rejection of an empty series
func TestValidateBars_Empty(t *testing.T) {
	provider := NewCSVProvider()
	assert.Error(t, provider.ValidateBars(nil))
}

// TestValidateBars_OutOfOrder tests rejection of a non-chronological series
func TestValidateBars_OutOfOrder(t *testing.T) {
	provider := NewCSVProvider()
	bars := []types.Bar{
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	assert.Error(t, provider.ValidateBars(bars))
}
