// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"czanon/internal/observability"
	"czanon/internal/pipeline"
	"czanon/internal/resilience"
)

// ProcessFunc anonymises one document. It must be safe for concurrent use.
type ProcessFunc func(ctx context.Context, job *Job) (*pipeline.Result, error)

// WorkerPool processes documents in parallel. A job that fails because a file is
// briefly locked is retried.
type WorkerPool struct {
	workers      int
	process      ProcessFunc
	jobs         chan *Job
	results      chan *Result
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	observer     *observability.StandardObserver
	retryManager *resilience.RetryManager
}

// Job is one document to process.
type Job struct {
	JobID    string
	Index    int
	FilePath string
}

// Result represents processing results
type Result struct {
	JobID    string
	Index    int
	FilePath string
	Output   *pipeline.Result
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool with resilience features
func NewWorkerPool(ctx context.Context, workers int, process ProcessFunc, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if observer == nil {
		observer = observability.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)

	retryManager := resilience.NewRetryManager()
	retryManager.SetConfig("document", resilience.DefaultRetryConfig())

	return &WorkerPool{
		workers:      workers,
		process:      process,
		jobs:         make(chan *Job, workers*2),
		results:      make(chan *Result, workers*2),
		ctx:          ctx,
		cancel:       cancel,
		observer:     observer,
		retryManager: retryManager,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit adds a job to the queue. It returns false once the pool is cancelled.
func (wp *WorkerPool) Submit(job *Job) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Close tells the workers that no more jobs will be submitted.
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Stop waits for the workers and closes the results channel.
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Cancel abandons queued jobs.
func (wp *WorkerPool) Cancel() {
	wp.cancel()
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for job := range wp.jobs {
		var result *Result
		if err := wp.ctx.Err(); err != nil {
			result = &Result{JobID: job.JobID, Index: job.Index, FilePath: job.FilePath, Error: err}
		} else {
			result = wp.processJob(job)
		}
		wp.results <- result
	}
}

// processJob runs one job, turning a panic into an error so one broken document
// cannot take the batch down.
func (wp *WorkerPool) processJob(job *Job) (result *Result) {
	start := time.Now()
	finishTiming := wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)
	result = &Result{JobID: job.JobID, Index: job.Index, FilePath: job.FilePath}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic while processing %s: %v", job.FilePath, r)
		}
		result.Duration = time.Since(start)
		finishTiming(result.Error == nil, map[string]interface{}{"job_id": job.JobID})
	}()

	attempts := 0
	err := wp.retryManager.Retry(wp.ctx, "document", func(ctx context.Context) error {
		attempts++
		out, err := wp.process(ctx, job)
		result.Output = out
		return err
	})
	result.Error = err
	if attempts > 1 && wp.observer.DebugObserver != nil {
		wp.observer.DebugObserver.LogDetail("worker_pool", fmt.Sprintf("%s took %d attempts", job.FilePath, attempts))
	}
	return result
}
