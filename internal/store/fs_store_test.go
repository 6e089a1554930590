package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/searchkit/internal/config"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	return store, tempDir
}

// createTestRecord creates a run record with test data.
func createTestRecord(runID string) *RunRecord {
	return &RunRecord{
		RunID:          runID,
		Algorithm:      "hill",
		Objective:      "sum",
		BestGenes:      []float64{97, 88, 100, 91, 76},
		BestFitness:    452,
		InitialFitness: 15,
		Iterations:     1000,
		Timestamp:      time.Now(),
		Spec: config.RunSpec{
			Objective: "sum",
			Genes:     5,
			Seed:      42,
			Domain:    config.DomainSpec{Min: 0, Max: 100, Integer: true},
			Search:    config.SearchSpec{Algorithm: "hill", MaxIterations: 1000},
		},
	}
}

func TestNewFSStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("Expected non-nil store")
	}
	if store.BaseDir() != tempDir {
		t.Errorf("Expected base dir %s, got %s", tempDir, store.BaseDir())
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store, _ := setupTestStore(t)
	record := createTestRecord("run-1")

	if err := store.SaveRun("run-1", record); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := store.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}

	if loaded.RunID != record.RunID {
		t.Errorf("Expected run ID %s, got %s", record.RunID, loaded.RunID)
	}
	if loaded.Algorithm != record.Algorithm {
		t.Errorf("Expected algorithm %s, got %s", record.Algorithm, loaded.Algorithm)
	}
	if loaded.BestFitness != record.BestFitness {
		t.Errorf("Expected best fitness %v, got %v", record.BestFitness, loaded.BestFitness)
	}
	if len(loaded.BestGenes) != len(record.BestGenes) {
		t.Fatalf("Expected %d genes, got %d", len(record.BestGenes), len(loaded.BestGenes))
	}
	for i := range record.BestGenes {
		if loaded.BestGenes[i] != record.BestGenes[i] {
			t.Errorf("Gene %d: expected %v, got %v", i, record.BestGenes[i], loaded.BestGenes[i])
		}
	}
	if loaded.Spec.Seed != 42 {
		t.Errorf("Expected spec seed 42, got %d", loaded.Spec.Seed)
	}
}

func TestSaveRunOverwrites(t *testing.T) {
	store, _ := setupTestStore(t)

	record := createTestRecord("run-1")
	if err := store.SaveRun("run-1", record); err != nil {
		t.Fatalf("First SaveRun failed: %v", err)
	}

	record.BestFitness = 500
	if err := store.SaveRun("run-1", record); err != nil {
		t.Fatalf("Second SaveRun failed: %v", err)
	}

	loaded, err := store.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.BestFitness != 500 {
		t.Errorf("Expected overwritten fitness 500, got %v", loaded.BestFitness)
	}
}

func TestSaveRunLeavesNoTempFile(t *testing.T) {
	store, tempDir := setupTestStore(t)

	if err := store.SaveRun("run-1", createTestRecord("run-1")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tempDir, "runs", "run-1"))
	if err != nil {
		t.Fatalf("Failed to read run directory: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
}

func TestSaveRunValidation(t *testing.T) {
	store, _ := setupTestStore(t)

	if err := store.SaveRun("", createTestRecord("run-1")); err == nil {
		t.Error("Expected error for empty runID")
	}
	if err := store.SaveRun("run-1", nil); err == nil {
		t.Error("Expected error for nil record")
	}
}

func TestLoadRunNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.LoadRun("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	store, _ := setupTestStore(t)

	infos, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns on empty store failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected no runs, got %d", len(infos))
	}

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.SaveRun(id, createTestRecord(id)); err != nil {
			t.Fatalf("SaveRun %s failed: %v", id, err)
		}
	}

	infos, err = store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(infos))
	}
	for _, info := range infos {
		if info.Genes != 5 {
			t.Errorf("Run %s: expected 5 genes, got %d", info.RunID, info.Genes)
		}
		if info.BestFitness != 452 {
			t.Errorf("Run %s: expected fitness 452, got %v", info.RunID, info.BestFitness)
		}
	}
}

func TestListRunsSkipsIncompleteDirs(t *testing.T) {
	store, tempDir := setupTestStore(t)

	if err := store.SaveRun("run-1", createTestRecord("run-1")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	// A run still in flight has a directory but no record yet.
	if err := os.MkdirAll(filepath.Join(tempDir, "runs", "in-flight"), 0755); err != nil {
		t.Fatalf("Failed to create in-flight dir: %v", err)
	}

	infos, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("Expected 1 run, got %d", len(infos))
	}
}

func TestDeleteRun(t *testing.T) {
	store, tempDir := setupTestStore(t)

	if err := store.SaveRun("run-1", createTestRecord("run-1")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := store.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "runs", "run-1")); !os.IsNotExist(err) {
		t.Error("Run directory still exists after delete")
	}
	if _, err := store.LoadRun("run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteRunNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.DeleteRun("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRunRemovesTrace(t *testing.T) {
	store, tempDir := setupTestStore(t)

	if err := store.SaveRun("run-1", createTestRecord("run-1")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	tw, err := NewTraceWriter(tempDir, "run-1")
	if err != nil {
		t.Fatalf("NewTraceWriter failed: %v", err)
	}
	if err := tw.Write(TraceEntry{Iteration: 1, Fitness: 10, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := store.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := os.Stat(tw.Path()); !os.IsNotExist(err) {
		t.Error("Trace file still exists after delete")
	}
}
