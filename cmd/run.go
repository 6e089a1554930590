package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/searchkit/internal/config"
	"github.com/cwbudde/searchkit/internal/evo"
	"github.com/cwbudde/searchkit/internal/objective"
	"github.com/cwbudde/searchkit/internal/search"
	"github.com/cwbudde/searchkit/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	runConfigPath string
	runAlgorithm  string
	runObjective  string
	runGenes      int
	runIters      int
	runSeed       int64
	runSave       bool
	runDataDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single local search",
	Long: `Runs one local-search driver (hill climbing, simulated annealing, or
tabu search) against a named objective and prints the result. Parameters come
from a YAML run spec, individual flags, or both (flags win).`,
	RunE: runSearch,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "YAML run spec path")
	runCmd.Flags().StringVar(&runAlgorithm, "algo", "hill", "Algorithm: hill, anneal, tabu")
	runCmd.Flags().StringVar(&runObjective, "objective", "sum", "Objective function name")
	runCmd.Flags().IntVar(&runGenes, "genes", 20, "Chromosome length")
	runCmd.Flags().IntVar(&runIters, "iters", 1000, "Max iterations (hill, tabu)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "Random seed")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Archive the finished run")
	runCmd.Flags().StringVar(&runDataDir, "data", "./data", "Archive directory (with --save)")
	rootCmd.AddCommand(runCmd)
}

func buildRunSpec(cmd *cobra.Command) (*config.RunSpec, error) {
	var spec *config.RunSpec
	if runConfigPath != "" {
		loaded, err := config.Load(runConfigPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else {
		spec = &config.RunSpec{}
		spec.ApplyDefaults()
	}

	// Flags override the file where explicitly set
	if cmd.Flags().Changed("algo") || runConfigPath == "" {
		spec.Search.Algorithm = runAlgorithm
	}
	if cmd.Flags().Changed("objective") || runConfigPath == "" {
		spec.Objective = runObjective
	}
	if cmd.Flags().Changed("genes") || runConfigPath == "" {
		spec.Genes = runGenes
	}
	if cmd.Flags().Changed("iters") || runConfigPath == "" {
		spec.Search.MaxIterations = runIters
	}
	if cmd.Flags().Changed("seed") || runConfigPath == "" {
		spec.Seed = runSeed
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	spec, err := buildRunSpec(cmd)
	if err != nil {
		return err
	}

	slog.Info("Starting search",
		"algorithm", spec.Search.Algorithm,
		"objective", spec.Objective,
		"genes", spec.Genes,
		"seed", spec.Seed,
	)

	obj, err := objective.Lookup(spec.Objective)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	initial, err := evo.RandomCandidate(spec.Genes, spec.EvoDomain(), rng).Evaluate(obj)
	if err != nil {
		return fmt.Errorf("failed to evaluate initial candidate: %w", err)
	}

	var iterations int
	var hook search.Hook = func(iter int, best evo.Candidate) {
		iterations = iter
	}

	driver, err := spec.Driver(rng, hook)
	if err != nil {
		return err
	}

	start := time.Now()
	best, err := driver.Run(initial, obj)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	slog.Info("Search complete",
		"elapsed", elapsed,
		"iterations", iterations,
		"initial_fitness", initial.Fitness(),
		"best_fitness", best.Fitness(),
		"improvement", best.Fitness()-initial.Fitness(),
	)

	fmt.Printf("%s on %s: fitness %.4f -> %.4f in %d iterations (%.2fs)\n",
		spec.Search.Algorithm, spec.Objective,
		initial.Fitness(), best.Fitness(), iterations, elapsed.Seconds())

	if runSave {
		st, err := store.NewFSStore(runDataDir)
		if err != nil {
			return err
		}
		runID := uuid.New().String()
		record := store.NewRunRecord(runID, *spec, best.Genes, best.Fitness(), initial.Fitness(), iterations)
		if err := record.Validate(); err != nil {
			return err
		}
		if err := st.SaveRun(runID, record); err != nil {
			return err
		}
		fmt.Printf("Archived run %s under %s\n", runID, runDataDir)
	}

	return nil
}
