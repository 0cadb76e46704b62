package validation

import "time"

// A "month" is exactly 30 days here, not calendar arithmetic. Reported
// historical results depend on this approximation, so it must not change.
const monthDays = 30 * 24 * time.Hour

// DefaultWindowPlanner implements the WindowPlanner interface.
type DefaultWindowPlanner struct{}

// NewDefaultWindowPlanner creates a new default window planner.
func NewDefaultWindowPlanner() *DefaultWindowPlanner {
	return &DefaultWindowPlanner{}
}

// PlanWindows partitions [start, end] into rolling train/test windows over
// the available trading dates. Each roll advances the train start by half
// the training length, so consecutive windows overlap by 50%.
//
// The sequence is empty when there is no data or the period is shorter than
// one full window; the caller falls back to a single full-period backtest.
func (p *DefaultWindowPlanner) PlanWindows(trainMonths, testMonths int, start, end time.Time, availableDates []time.Time) []WindowSpec {
	var windows []WindowSpec

	if len(availableDates) == 0 {
		return windows
	}

	firstAvailable := availableDates[0]
	availableEnd := availableDates[len(availableDates)-1]

	trainDur := time.Duration(trainMonths) * monthDays
	testDur := time.Duration(testMonths) * monthDays
	rollBack := time.Duration(trainMonths) * monthDays / 2

	trainStart := start
	if firstAvailable.After(trainStart) {
		trainStart = firstAvailable
	}

	// Terminates: testEnd strictly increases each iteration.
	for {
		trainEnd := trainStart.Add(trainDur)
		testStart := trainEnd.Add(24 * time.Hour)
		testEnd := testStart.Add(testDur)

		if testEnd.After(availableEnd) {
			break
		}

		if !trainEnd.After(end) && !testStart.After(end) {
			windows = append(windows, WindowSpec{
				TrainStart: trainStart,
				TrainEnd:   trainEnd,
				TestStart:  testStart,
				TestEnd:    testEnd,
			})
		}

		trainStart = testStart.Add(-rollBack)
	}

	return windows
}

// PlanWindows is a convenience function that uses the default planner.
func PlanWindows(trainMonths, testMonths int, start, end time.Time, availableDates []time.Time) []WindowSpec {
	planner := NewDefaultWindowPlanner()
	return planner.PlanWindows(trainMonths, testMonths, start, end, availableDates)
}
