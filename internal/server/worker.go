package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/searchkit/internal/evo"
	"github.com/cwbudde/searchkit/internal/objective"
	"github.com/cwbudde/searchkit/internal/store"
)

// runJob executes a search job in the background. If runStore is not nil,
// the finished run is archived along with a JSONL fitness trace.
func runJob(ctx context.Context, jm *JobManager, runStore store.Store, traceDir, jobID string) error {
	job, exists := jm.Snapshot(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	}); err != nil {
		return err
	}

	spec := job.Spec
	slog.Info("Starting job", "job_id", jobID,
		"algorithm", spec.Search.Algorithm, "objective", spec.Objective)

	obj, err := objective.Lookup(spec.Objective)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	initial, err := evo.RandomCandidate(spec.Genes, spec.EvoDomain(), rng).Evaluate(obj)
	if err != nil {
		markJobFailed(jm, jobID, fmt.Errorf("failed to evaluate initial candidate: %w", err))
		return err
	}

	jm.UpdateJob(jobID, func(j *Job) {
		j.InitialFitness = initial.Fitness()
		j.BestFitness = initial.Fitness()
	})

	// Fitness trace alongside the eventual run record
	var trace *store.TraceWriter
	if traceDir != "" {
		trace, err = store.NewTraceWriter(traceDir, jobID)
		if err != nil {
			slog.Warn("Failed to open trace writer", "job_id", jobID, "error", err)
			trace = nil
		} else {
			defer func() {
				if trace != nil {
					trace.Close()
				}
			}()
		}
	}

	hook := func(iter int, best evo.Candidate) {
		jm.UpdateJob(jobID, func(j *Job) {
			j.Iterations = iter
			j.BestFitness = best.Fitness()
		})
		if trace != nil {
			if err := trace.Write(store.TraceEntry{
				Iteration: iter,
				Fitness:   best.Fitness(),
				Timestamp: time.Now(),
			}); err != nil {
				slog.Warn("Failed to write trace entry", "job_id", jobID, "error", err)
			}
		}
	}

	driver, err := spec.Driver(rng, hook)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	// Check for cancellation before starting the long-running search
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	// Progress broadcasting, throttled independently of search speed
	progressDone := make(chan struct{})
	go monitorProgress(ctx, jm, jobID, progressDone)

	start := time.Now()
	best, err := driver.Run(initial, obj)
	close(progressDone)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}
	elapsed := time.Since(start)

	// Flush the trace before the job is observable as completed, so clients
	// reacting to the completion event never read a truncated file.
	if trace != nil {
		if err := trace.Close(); err != nil {
			slog.Warn("Failed to close trace writer", "job_id", jobID, "error", err)
		}
		trace = nil
	}

	endTime := time.Now()
	var iterations int
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.BestGenes = best.Genes
		j.BestFitness = best.Fitness()
		j.EndTime = &endTime
		iterations = j.Iterations
	})

	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"initial_fitness", initial.Fitness(),
		"best_fitness", best.Fitness(),
		"iterations", iterations,
	)

	// Archive the finished run
	if runStore != nil {
		record := store.NewRunRecord(jobID, spec, best.Genes, best.Fitness(), initial.Fitness(), iterations)
		if err := runStore.SaveRun(jobID, record); err != nil {
			slog.Error("Failed to archive run record", "job_id", jobID, "error", err)
		}
	}

	// Broadcast final completion event
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:       jobID,
		State:       StateCompleted,
		Iterations:  iterations,
		BestFitness: best.Fitness(),
		Timestamp:   time.Now(),
	})

	return nil
}

// monitorProgress periodically broadcasts progress events during a search
func monitorProgress(ctx context.Context, jm *JobManager, jobID string, done chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond) // Throttle to 2 updates per second
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, exists := jm.Snapshot(jobID)
			if !exists {
				return
			}

			jm.broadcaster.Broadcast(ProgressEvent{
				JobID:       jobID,
				State:       job.State,
				Iterations:  job.Iterations,
				BestFitness: job.BestFitness,
				Timestamp:   time.Now(),
			})
		}
	}
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
