// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel anonymises batches of documents on a bounded worker pool.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"czanon/internal/observability"
)

// ParallelProcessor manages parallel file processing
type ParallelProcessor struct {
	workers  int
	process  ProcessFunc
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	FailedFiles    int           `json:"failed_files"`
	TotalTags      int           `json:"total_tags"`
	TotalLeaks     int           `json:"total_leaks"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgFileTime    time.Duration `json:"avg_file_time_ms"`
}

// DefaultWorkers is the number of CPUs, capped at 8.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), 8)
}

// NewParallelProcessor creates a processor running process on up to workers
// documents at a time. workers <= 0 selects DefaultWorkers.
func NewParallelProcessor(workers int, process ProcessFunc, observer *observability.StandardObserver) *ParallelProcessor {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if observer == nil {
		observer = observability.Nop()
	}
	return &ParallelProcessor{workers: workers, process: process, observer: observer}
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, result *Result)

// ProcessFiles processes every file and returns the results in input order.
// Failed files are reported in their Result, never as the returned error. When
// ctx is cancelled the error is set and files that were never submitted have a
// nil entry.
func (pp *ParallelProcessor) ProcessFiles(ctx context.Context, filePaths []string, progress ProgressCallback) ([]*Result, *ProcessingStats, error) {
	start := time.Now()
	finishTiming := pp.observer.StartTiming("parallel_processor", "process_files", "batch")

	workers := min(pp.workers, max(len(filePaths), 1))
	pool := NewWorkerPool(ctx, workers, pp.process, pp.observer)
	pool.Start()

	// submit in a separate goroutine so results can be drained meanwhile
	go func() {
		defer pool.Close()
		for i, path := range filePaths {
			if !pool.Submit(&Job{JobID: fmt.Sprintf("job_%d", i), Index: i, FilePath: path}) {
				return
			}
		}
	}()
	go pool.Stop()

	results := make([]*Result, len(filePaths))
	stats := &ProcessingStats{TotalFiles: len(filePaths), WorkerCount: workers}
	var busy time.Duration
	completed := 0
	for result := range pool.Results() {
		results[result.Index] = result
		completed++
		busy += result.Duration

		if result.Error != nil {
			stats.FailedFiles++
		} else {
			stats.ProcessedFiles++
			if result.Output != nil {
				stats.TotalTags += result.Output.Stats.Tags
				stats.TotalLeaks += result.Output.Stats.Leaks
			}
		}
		if progress != nil {
			progress(completed, len(filePaths), result)
		}
	}

	stats.TotalDuration = time.Since(start)
	stats.AvgFileTime = busy / time.Duration(max(completed, 1))

	err := ctx.Err()
	finishTiming(err == nil, map[string]interface{}{
		"total_files":     stats.TotalFiles,
		"processed_files": stats.ProcessedFiles,
		"failed_files":    stats.FailedFiles,
		"worker_count":    workers,
	})
	return results, stats, err
}
