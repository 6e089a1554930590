package store

import (
	"fmt"
	"time"

	"github.com/cwbudde/searchkit/internal/config"
)

// RunRecord is the archived outcome of a finished search run. It captures
// the result and the spec that produced it, not resumable search state:
// nothing here can continue an interrupted run, only reproduce it from the
// seed.
type RunRecord struct {
	// RunID is the unique identifier for this run.
	RunID string `json:"runId"`

	// Algorithm is the driver that produced the result (hill, anneal, tabu).
	Algorithm string `json:"algorithm"`

	// Objective is the registered objective name.
	Objective string `json:"objective"`

	// BestGenes is the chromosome of the best candidate found.
	BestGenes []float64 `json:"bestGenes"`

	// BestFitness is the fitness achieved by BestGenes.
	BestFitness float64 `json:"bestFitness"`

	// InitialFitness is the starting candidate's fitness, kept for
	// improvement tracking.
	InitialFitness float64 `json:"initialFitness"`

	// Iterations is the number of driver iterations performed.
	Iterations int `json:"iterations"`

	// Timestamp records when the run finished.
	Timestamp time.Time `json:"timestamp"`

	// Spec is the full run specification, kept so a run can be reproduced.
	Spec config.RunSpec `json:"spec"`
}

// RunInfo is record metadata without the gene payload, used for listing.
type RunInfo struct {
	RunID       string    `json:"runId"`
	Algorithm   string    `json:"algorithm"`
	Objective   string    `json:"objective"`
	BestFitness float64   `json:"bestFitness"`
	Iterations  int       `json:"iterations"`
	Genes       int       `json:"genes"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRunRecord assembles a record from a finished run.
func NewRunRecord(runID string, spec config.RunSpec, bestGenes []float64, bestFitness, initialFitness float64, iterations int) *RunRecord {
	return &RunRecord{
		RunID:          runID,
		Algorithm:      spec.Search.Algorithm,
		Objective:      spec.Objective,
		BestGenes:      bestGenes,
		BestFitness:    bestFitness,
		InitialFitness: initialFitness,
		Iterations:     iterations,
		Timestamp:      time.Now(),
		Spec:           spec,
	}
}

// ToInfo converts a full record to its listing metadata.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:       r.RunID,
		Algorithm:   r.Algorithm,
		Objective:   r.Objective,
		BestFitness: r.BestFitness,
		Iterations:  r.Iterations,
		Genes:       len(r.BestGenes),
		Timestamp:   r.Timestamp,
	}
}

// Validate checks that the record is complete enough to archive.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Algorithm == "" {
		return &ValidationError{Field: "Algorithm", Reason: "cannot be empty"}
	}
	if r.Objective == "" {
		return &ValidationError{Field: "Objective", Reason: "cannot be empty"}
	}
	if len(r.BestGenes) == 0 {
		return &ValidationError{Field: "BestGenes", Reason: "cannot be empty"}
	}
	if r.Iterations < 0 {
		return &ValidationError{Field: "Iterations", Reason: "cannot be negative"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	// Driver runs keep a fixed chromosome length; the result must match the
	// spec it came from.
	if r.Spec.Genes > 0 && len(r.BestGenes) != r.Spec.Genes {
		return &ValidationError{
			Field:  "BestGenes",
			Reason: fmt.Sprintf("length mismatch: expected %d genes, got %d", r.Spec.Genes, len(r.BestGenes)),
		}
	}
	return nil
}

// ValidationError represents a run-record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
