package main

import (
	"testing"
	"time"

	"github.com/cwbudde/searchkit/internal/config"
	"github.com/cwbudde/searchkit/internal/store"
)

func TestSelectStaleRuns(t *testing.T) {
	now := time.Now()
	infos := []store.RunInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -10)}, // 10 days old
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -5)},  // 5 days old
		{RunID: "run3", Timestamp: now.AddDate(0, 0, -1)},  // 1 day old
		{RunID: "run4", Timestamp: now.AddDate(0, 0, -30)}, // 30 days old
	}

	stale := selectStaleRuns(infos, 7, now)

	if len(stale) != 2 {
		t.Fatalf("Expected 2 stale runs, got %d", len(stale))
	}

	found10, found30 := false, false
	for _, info := range stale {
		if info.RunID == "run1" {
			found10 = true
		}
		if info.RunID == "run4" {
			found30 = true
		}
	}
	if !found10 || !found30 {
		t.Error("Expected run1 and run4 to be selected as stale")
	}
}

func TestSelectStaleRuns_NoneStale(t *testing.T) {
	now := time.Now()
	infos := []store.RunInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -1)},
		{RunID: "run2", Timestamp: now},
	}

	if stale := selectStaleRuns(infos, 7, now); len(stale) != 0 {
		t.Errorf("Expected no stale runs, got %d", len(stale))
	}
}

func TestSelectStaleRuns_Empty(t *testing.T) {
	if stale := selectStaleRuns(nil, 7, time.Now()); len(stale) != 0 {
		t.Errorf("Expected no stale runs for empty input, got %d", len(stale))
	}
}

func TestBuildRunSpec_FlagDefaults(t *testing.T) {
	runConfigPath = ""
	runAlgorithm = "tabu"
	runObjective = "sphere"
	runGenes = 7
	runIters = 123
	runSeed = 9

	spec, err := buildRunSpec(runCmd)
	if err != nil {
		t.Fatalf("buildRunSpec failed: %v", err)
	}

	if spec.Search.Algorithm != "tabu" {
		t.Errorf("Expected tabu algorithm, got %s", spec.Search.Algorithm)
	}
	if spec.Objective != "sphere" {
		t.Errorf("Expected sphere objective, got %s", spec.Objective)
	}
	if spec.Genes != 7 {
		t.Errorf("Expected 7 genes, got %d", spec.Genes)
	}
	if spec.Search.MaxIterations != 123 {
		t.Errorf("Expected 123 iterations, got %d", spec.Search.MaxIterations)
	}
	if spec.Seed != 9 {
		t.Errorf("Expected seed 9, got %d", spec.Seed)
	}
	// Zero-valued fields still get defaults
	if spec.Domain == (config.DomainSpec{}) {
		t.Error("Expected domain defaults to be applied")
	}
}

func TestBuildRunSpec_InvalidAlgorithm(t *testing.T) {
	runConfigPath = ""
	runAlgorithm = "climbing"
	runObjective = "sum"
	runGenes = 5
	runIters = 10
	runSeed = 1

	if _, err := buildRunSpec(runCmd); err == nil {
		t.Error("Expected validation error for unknown algorithm")
	}
	runAlgorithm = "hill"
}
