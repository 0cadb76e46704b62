package optimization

import (
	"fmt"
	"time"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/pkg/types"
	"github.com/quantforge/condor-backtest/pkg/validation"
)

// Evaluation is the outcome of one parameter set: a train result and an
// optional out-of-sample test result. Test is nil when walk-forward was
// disabled or no windows fit the period.
type Evaluation struct {
	Params backtest.ParameterSet
	Train  *backtest.BacktestResults
	Test   *backtest.BacktestResults
}

// Orchestrator evaluates parameter sets against an immutable bar series.
// Evaluations are pure given the loaded data, so they are safe to run on
// independent workers with no locking.
type Orchestrator struct {
	bars       []types.Bar
	volProxies []types.VolPoint
	start      time.Time
	end        time.Time
	windows    []validation.WindowSpec
}

// NewOrchestrator creates an orchestrator over a loaded data set. An empty
// windows slice disables walk-forward and every set runs once over the full
// range.
func NewOrchestrator(bars []types.Bar, volProxies []types.VolPoint, start, end time.Time, windows []validation.WindowSpec) *Orchestrator {
	return &Orchestrator{
		bars:       bars,
		volProxies: volProxies,
		start:      start,
		end:        end,
		windows:    windows,
	}
}

// Windows returns the planned walk-forward windows.
func (o *Orchestrator) Windows() []validation.WindowSpec {
	return o.windows
}

// Evaluate runs one parameter set. With walk-forward windows it runs a train
// and a test leg per window and combines each side over the stitched trade
// sequence; otherwise it runs once over the full range.
func (o *Orchestrator) Evaluate(params backtest.ParameterSet) (Evaluation, error) {
	engine, err := backtest.NewEngine(params)
	if err != nil {
		return Evaluation{}, err
	}

	if len(o.windows) == 0 {
		result, err := engine.Run(o.start, o.end, o.bars, o.volProxies)
		if err != nil {
			return Evaluation{}, err
		}
		return Evaluation{Params: params, Train: result}, nil
	}

	trainLegs := make([]*backtest.BacktestResults, 0, len(o.windows))
	testLegs := make([]*backtest.BacktestResults, 0, len(o.windows))

	for i, w := range o.windows {
		trainResult, err := engine.Run(w.TrainStart, w.TrainEnd, o.bars, o.volProxies)
		if err != nil {
			return Evaluation{}, fmt.Errorf("window %d train leg: %w", i+1, err)
		}
		testResult, err := engine.Run(w.TestStart, w.TestEnd, o.bars, o.volProxies)
		if err != nil {
			return Evaluation{}, fmt.Errorf("window %d test leg: %w", i+1, err)
		}
		trainLegs = append(trainLegs, trainResult)
		testLegs = append(testLegs, testResult)
	}

	return Evaluation{
		Params: params,
		Train:  backtest.CombineResults(trainLegs, true),
		Test:   backtest.CombineResults(testLegs, false),
	}, nil
}
