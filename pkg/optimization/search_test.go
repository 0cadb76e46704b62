package optimization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/types"
	"github.com/quantforge/condor-backtest/pkg/validation"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func flatBars(days int, price float64) []types.Bar {
	bars := make([]types.Bar, days)
	for i := range bars {
		bars[i] = types.Bar{Date: day(i + 2), Open: price, High: price, Low: price, Close: price}
	}
	return bars
}

func smallGrid() Grid {
	return Grid{
		OTMRange:      []float64{0.5, 1.0},
		WingRange:     []float64{25, 50},
		IntradayRange: []float64{0.8},
		CreditRange:   []float64{2.0},
	}
}

// TestGridSearchRun_FullGridEvaluated tests that every parameter set comes back,
// in grid order
func TestGridSearchRun_FullGridEvaluated(t *testing.T) {
	bars := flatBars(10, 5000)
	orch := NewOrchestrator(bars, nil, day(1), day(31), nil)
	search := NewGridSearch(orch, 4, false)

	grid := smallGrid()
	evaluations, err := search.Run(grid)
	require.NoError(t, err)
	require.Len(t, evaluations, grid.Count())

	expected := grid.Generate()
	for i, e := range evaluations {
		assert.Equal(t, expected[i], e.Params)
		require.NotNil(t, e.Train)
		assert.Nil(t, e.Test)
		assert.Equal(t, 10, e.Train.TotalTrades)
	}
}

// TestGridSearchRun_Deterministic tests that two runs produce identical tables
func TestGridSearchRun_Deterministic(t *testing.T) {
	bars := flatBars(10, 5000)
	orch := NewOrchestrator(bars, nil, day(1), day(31), nil)
	search := NewGridSearch(orch, 4, false)

	first, err := search.Run(smallGrid())
	require.NoError(t, err)
	second, err := search.Run(smallGrid())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestGridSearchRun_InvalidGrid tests fail-fast on a bad range value
func TestGridSearchRun_InvalidGrid(t *testing.T) {
	orch := NewOrchestrator(flatBars(10, 5000), nil, day(1), day(31), nil)
	search := NewGridSearch(orch, 2, false)

	grid := smallGrid()
	grid.CreditRange = []float64{-2.0}

	_, err := search.Run(grid)
	assert.ErrorIs(t, err, backtest.ErrInvalidParameter)
}

// TestGridSearchRun_EmptyGrid tests that an empty grid is an error, not an empty table
func TestGridSearchRun_EmptyGrid(t *testing.T) {
	orch := NewOrchestrator(flatBars(10, 5000), nil, day(1), day(31), nil)
	search := NewGridSearch(orch, 2, false)

	_, err := search.Run(Grid{})
	assert.Error(t, err)
}

// TestGridSearchRun_EvaluationErrorFailsWholeSearch tests all-or-nothing error handling
func TestGridSearchRun_EvaluationErrorFailsWholeSearch(t *testing.T) {
	// No bars inside the requested period: every evaluation hits ErrNoData.
	orch := NewOrchestrator(flatBars(10, 5000), nil, day(20), day(31), nil)
	search := NewGridSearch(orch, 2, false)

	_, err := search.Run(smallGrid())
	assert.ErrorIs(t, err, backtest.ErrNoData)
}

// TestOrchestratorEvaluate_WalkForwardLegs tests that windows produce combined
// train and test legs
func TestOrchestratorEvaluate_WalkForwardLegs(t *testing.T) {
	bars := flatBars(28, 5000)
	windows := []validation.WindowSpec{
		{TrainStart: day(2), TrainEnd: day(11), TestStart: day(12), TestEnd: day(15)},
		{TrainStart: day(7), TrainEnd: day(16), TestStart: day(17), TestEnd: day(20)},
	}
	orch := NewOrchestrator(bars, nil, day(1), day(31), windows)

	eval, err := orch.Evaluate(backtest.ParameterSet{OTMPercent: 0.5, WingWidth: 50, IntradayChangeMax: 0.8, Credit: 2.0})
	require.NoError(t, err)

	require.NotNil(t, eval.Train)
	require.NotNil(t, eval.Test)
	assert.True(t, eval.Train.IsTrain)
	assert.False(t, eval.Test.IsTrain)

	// 10 train days per window, 4 test days per window
	assert.Equal(t, 20, eval.Train.TotalTrades)
	assert.Equal(t, 8, eval.Test.TotalTrades)
}

// TestWorkerPool_ResultsComplete tests that every submitted job yields exactly one result
func TestWorkerPool_ResultsComplete(t *testing.T) {
	orch := NewOrchestrator(flatBars(5, 5000), nil, day(1), day(31), nil)
	sets := smallGrid().Generate()

	pool := NewWorkerPool(3, len(sets), orch)
	pool.Start()
	defer pool.Stop()

	for i, params := range sets {
		require.NoError(t, pool.SubmitJob(Job{ID: i, Params: params}))
	}

	seen := make(map[int]bool)
	for i := 0; i < len(sets); i++ {
		result := <-pool.GetResults()
		require.NoError(t, result.Err)
		assert.False(t, seen[result.ID], "duplicate result for job %d", result.ID)
		seen[result.ID] = true
	}
	assert.Len(t, seen, len(sets))
}

// BenchmarkGridSearch measures a small search end to end
func BenchmarkGridSearch(b *testing.B) {
	bars := flatBars(60, 5000)
	orch := NewOrchestrator(bars, nil, day(1), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), nil)
	search := NewGridSearch(orch, 4, false)
	grid := smallGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Run(grid); err != nil {
			b.Fatal(err)
		}
	}
}

// TestProgressTracker tests counting and percentage reporting
func TestProgressTracker(t *testing.T) {
	tracker := NewProgressTracker(4)

	tracker.Increment()
	tracker.Increment()

	completed, total, progress, _ := tracker.GetProgress()
	assert.Equal(t, 2, completed)
	assert.Equal(t, 4, total)
	assert.Equal(t, 50.0, progress)
}
