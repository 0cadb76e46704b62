package optimization

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/quantforge/condor-backtest/internal/backtest"
	"github.com/quantforge/condor-backtest/internal/monitoring"
)

// WorkerPool manages parallel evaluation of parameter sets.
type WorkerPool struct {
	workerCount  int
	orchestrator *Orchestrator
	jobQueue     chan Job
	resultQueue  chan Result
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

// Job is one parameter set to evaluate. ID is the submission order, used to
// restore a deterministic result ordering at the join barrier.
type Job struct {
	ID     int
	Params backtest.ParameterSet
}

// Result is the outcome of one job. A non-nil Err fails the whole search;
// partial results are discarded, never ranked.
type Result struct {
	ID         int
	Evaluation Evaluation
	Err        error
	Duration   time.Duration
}

// NewWorkerPool creates a pool of workers evaluating against the given
// orchestrator. workerCount <= 0 uses one worker per CPU.
func NewWorkerPool(workerCount, jobBufferSize int, orchestrator *Orchestrator) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount:  workerCount,
		orchestrator: orchestrator,
		jobQueue:     make(chan Job, jobBufferSize),
		resultQueue:  make(chan Result, jobBufferSize),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start starts the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop stops the pool gracefully.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// SubmitJob submits a job to the pool.
func (wp *WorkerPool) SubmitJob(job Job) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// GetResults returns the channel on which completed jobs arrive.
func (wp *WorkerPool) GetResults() <-chan Result {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job Job) Result {
	startTime := time.Now()

	evaluation, err := wp.orchestrator.Evaluate(job.Params)

	duration := time.Since(startTime)
	if err != nil {
		monitoring.RecordError("evaluation")
	} else {
		trades := evaluation.Train.TotalTrades
		if evaluation.Test != nil {
			trades += evaluation.Test.TotalTrades
		}
		monitoring.RecordEvaluation(duration, trades)
	}

	return Result{
		ID:         job.ID,
		Evaluation: evaluation,
		Err:        err,
		Duration:   duration,
	}
}

// ProgressTracker tracks grid-search progress across workers.
type ProgressTracker struct {
	total     int
	completed int
	startTime time.Time
	mutex     sync.RWMutex
}

// NewProgressTracker creates a tracker for the given job count.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
	}
}

// Increment increments the completion count.
func (pt *ProgressTracker) Increment() {
	pt.mutex.Lock()
	defer pt.mutex.Unlock()
	pt.completed++
}

// GetProgress returns completed count, total, percentage and elapsed time.
func (pt *ProgressTracker) GetProgress() (int, int, float64, time.Duration) {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()

	elapsed := time.Since(pt.startTime)
	progress := float64(pt.completed) / float64(pt.total) * 100

	return pt.completed, pt.total, progress, elapsed
}

// EstimateTimeRemaining extrapolates the remaining time from current
// progress.
func (pt *ProgressTracker) EstimateTimeRemaining() time.Duration {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()

	if pt.completed == 0 {
		return 0
	}

	elapsed := time.Since(pt.startTime)
	avgTimePerItem := elapsed / time.Duration(pt.completed)
	remaining := pt.total - pt.completed

	return avgTimePerItem * time.Duration(remaining)
}
