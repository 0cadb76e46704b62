package optimization

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quantforge/condor-backtest/internal/monitoring"
)

// GridSearch drives the full combinatorial search: it submits every
// parameter set to the worker pool, waits at the join barrier for all
// results, and returns the evaluations in submission order.
type GridSearch struct {
	orchestrator *Orchestrator
	workers      int
	verbose      bool
}

// NewGridSearch creates a search driver. workers <= 0 uses one worker per
// CPU.
func NewGridSearch(orchestrator *Orchestrator, workers int, verbose bool) *GridSearch {
	return &GridSearch{
		orchestrator: orchestrator,
		workers:      workers,
		verbose:      verbose,
	}
}

// Run evaluates the whole grid. It either completes for every parameter set
// or fails as a whole: any worker error aborts the search and no partial
// table is returned.
func (gs *GridSearch) Run(grid Grid) ([]Evaluation, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	sets := grid.Generate()
	if len(sets) == 0 {
		return nil, fmt.Errorf("empty parameter grid")
	}

	searchStart := time.Now()

	pool := NewWorkerPool(gs.workers, len(sets), gs.orchestrator)
	pool.Start()
	defer pool.Stop()

	for i, params := range sets {
		if err := pool.SubmitJob(Job{ID: i, Params: params}); err != nil {
			return nil, fmt.Errorf("submitting job %d: %w", i, err)
		}
	}

	// Join barrier: every result is collected before anything is ranked.
	tracker := NewProgressTracker(len(sets))
	results := make([]Result, 0, len(sets))
	for i := 0; i < len(sets); i++ {
		result := <-pool.GetResults()
		results = append(results, result)

		tracker.Increment()
		if gs.verbose {
			completed, total, progress, _ := tracker.GetProgress()
			if completed%50 == 0 || completed == total {
				log.Printf("⏳ Progress: %d/%d (%.1f%%), ETA %s",
					completed, total, progress, tracker.EstimateTimeRemaining().Round(time.Second))
			}
		}
	}

	// Any failed unit invalidates the whole search.
	for _, r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("parameter set %s: %w", sets[r.ID], r.Err)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	evaluations := make([]Evaluation, len(results))
	for i, r := range results {
		evaluations[i] = r.Evaluation
	}

	monitoring.ObserveSearchDuration(time.Since(searchStart))
	return evaluations, nil
}
