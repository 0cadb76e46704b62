// Package validation plans rolling train/test windows for walk-forward
// optimization.
package validation

import "time"

// WindowSpec is one walk-forward window. Windows are chronological and may
// overlap the next window by design (50% roll).
type WindowSpec struct {
	TrainStart time.Time
	TrainEnd   time.Time
	TestStart  time.Time
	TestEnd    time.Time
}

// WindowPlanner defines the interface for partitioning a backtest period
// into rolling train/test windows.
type WindowPlanner interface {
	PlanWindows(trainMonths, testMonths int, start, end time.Time, availableDates []time.Time) []WindowSpec
}

// WalkForwardConfig holds the walk-forward settings taken from the command
// line.
type WalkForwardConfig struct {
	Enable      bool
	TrainMonths int
	TestMonths  int
}
