package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/srodrigo23/backend-otb-control/pkg/logger"
)

// Job is a unit of background work. It receives the worker's context so it
// can stop early during shutdown.
type Job func(ctx context.Context) error

// Worker runs fire-and-forget jobs and periodic tasks for the API: receipt
// emails after a payment commits, the overdue-debt scan, attendance counter
// repairs. Concurrency is bounded by a semaphore; Shutdown waits for every
// running job before returning.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	sem    chan struct{}
}

// NewWorker creates a worker allowing up to maxConcurrent jobs at once
func NewWorker(maxConcurrent int) *Worker {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		ctx:    ctx,
		cancel: cancel,
		sem:    make(chan struct{}, maxConcurrent),
	}
}

// EnqueueAsync runs a job in its own goroutine. Errors and panics are logged,
// never propagated; the caller has already committed its transaction.
func (w *Worker) EnqueueAsync(job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		select {
		case w.sem <- struct{}{}:
			defer func() { <-w.sem }()
		case <-w.ctx.Done():
			return
		}

		defer func() {
			if r := recover(); r != nil {
				logger.Error("background job panicked", "panic", r)
			}
		}()

		if err := job(w.ctx); err != nil {
			logger.Error("background job failed", "error", err)
		}
	}()
}

// ScheduleEvery runs a job at fixed intervals, starting one interval after
// startup.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(job)
			}
		}
	}()
}

// ScheduleEveryImmediate runs a job once at startup and then at fixed
// intervals. Useful for tasks that must not wait a full interval after a
// redeploy.
func (w *Worker) ScheduleEveryImmediate(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.runScheduled(job)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(job)
			}
		}
	}()
}

func (w *Worker) runScheduled(job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scheduled job panicked", "panic", r)
		}
	}()

	start := time.Now()
	if err := job(w.ctx); err != nil {
		logger.Error("scheduled job failed", "error", err)
		return
	}
	logger.Debug("scheduled job completed", "duration", time.Since(start))
}

// Shutdown cancels the worker context and waits for running jobs to finish
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}
