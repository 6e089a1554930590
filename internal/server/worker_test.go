package server

import (
	"context"
	"testing"

	"github.com/cwbudde/searchkit/internal/store"
)

func TestRunJob_Success(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testSpec())

	err := runJob(context.Background(), jm, nil, "", job.ID)
	if err != nil {
		t.Fatalf("runJob should succeed: %v", err)
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateCompleted {
		t.Errorf("Job should be completed, got %s", updated.State)
	}
	if len(updated.BestGenes) != 5 {
		t.Errorf("Expected 5 genes, got %d", len(updated.BestGenes))
	}
	if updated.BestFitness < updated.InitialFitness {
		t.Errorf("Best fitness %v fell below initial %v", updated.BestFitness, updated.InitialFitness)
	}
	if updated.Iterations != 50 {
		t.Errorf("Expected 50 iterations, got %d", updated.Iterations)
	}
	if updated.EndTime == nil {
		t.Error("End time should be set")
	}
}

func TestRunJob_ArchivesRecordAndTrace(t *testing.T) {
	tmpDir := t.TempDir()
	runStore, err := store.NewFSStore(tmpDir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	jm := NewJobManager()
	job := jm.CreateJob(testSpec())

	if err := runJob(context.Background(), jm, runStore, tmpDir, job.ID); err != nil {
		t.Fatalf("runJob should succeed: %v", err)
	}

	record, err := runStore.LoadRun(job.ID)
	if err != nil {
		t.Fatalf("Run record should be archived: %v", err)
	}
	if record.Algorithm != "hill" {
		t.Errorf("Expected hill algorithm, got %s", record.Algorithm)
	}
	if len(record.BestGenes) != 5 {
		t.Errorf("Expected 5 genes in record, got %d", len(record.BestGenes))
	}
	if err := record.Validate(); err != nil {
		t.Errorf("Archived record should validate: %v", err)
	}

	tr, err := store.NewTraceReader(tmpDir, job.ID)
	if err != nil {
		t.Fatalf("Trace should exist: %v", err)
	}
	defer tr.Close()

	entries, err := tr.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(entries) != 50 {
		t.Errorf("Expected 50 trace entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Fitness < entries[i-1].Fitness {
			t.Errorf("Trace fitness regressed at entry %d", i)
		}
	}
}

func TestRunJob_UnknownObjectiveFails(t *testing.T) {
	jm := NewJobManager()
	spec := testSpec()
	spec.Objective = "nope"
	job := jm.CreateJob(spec)

	if err := runJob(context.Background(), jm, nil, "", job.ID); err == nil {
		t.Fatal("Expected error for unknown objective")
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateFailed {
		t.Errorf("Job should be failed, got %s", updated.State)
	}
	if updated.Error == "" {
		t.Error("Job error message should be set")
	}
}

func TestRunJob_CancelledContext(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(testSpec())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runJob(ctx, jm, nil, "", job.ID); err == nil {
		t.Fatal("Expected error for cancelled context")
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateCancelled {
		t.Errorf("Job should be cancelled, got %s", updated.State)
	}
}

func TestRunJob_DeterministicForSeed(t *testing.T) {
	spec := testSpec()

	run := func() []float64 {
		jm := NewJobManager()
		job := jm.CreateJob(spec)
		if err := runJob(context.Background(), jm, nil, "", job.ID); err != nil {
			t.Fatalf("runJob should succeed: %v", err)
		}
		updated, _ := jm.GetJob(job.ID)
		return updated.BestGenes
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("Gene lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Gene %d differs between seeded runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRunJob_MissingJob(t *testing.T) {
	jm := NewJobManager()
	if err := runJob(context.Background(), jm, nil, "", "nonexistent"); err == nil {
		t.Error("Expected error for missing job")
	}
}
