package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/searchkit/internal/config"
	"github.com/cwbudde/searchkit/internal/evo"
	"github.com/cwbudde/searchkit/internal/objective"
	"github.com/spf13/cobra"
)

var evolveConfigPath string

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Run a generational loop built from the operator library",
	Long: `Composes the operator library into a select -> crossover -> mutate ->
evaluate -> replace loop. The loop lives here, not in the core: the library
only provides the operators, orchestration is the caller's job.

The run spec's "ga" section picks the variants, e.g.:

    objective: sum
    genes: 20
    seed: 42
    ga:
      population: 30
      generations: 50
      selection: {variant: tournament, tournament_size: 3}
      crossover: {variant: npoint, points: 2}
      mutation:  {variant: uniform, probability: 0.05}`,
	RunE: runEvolve,
}

func init() {
	evolveCmd.Flags().StringVar(&evolveConfigPath, "config", "", "YAML run spec path (required)")
	evolveCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(evolveCmd)
}

func runEvolve(cmd *cobra.Command, args []string) error {
	spec, err := config.Load(evolveConfigPath)
	if err != nil {
		return err
	}
	if spec.GA == nil {
		return fmt.Errorf("run spec %s has no ga section", evolveConfigPath)
	}
	ga := spec.GA

	obj, err := objective.Lookup(spec.Objective)
	if err != nil {
		return err
	}
	selector, err := ga.Selector()
	if err != nil {
		return err
	}
	crossover, err := ga.CrossoverOp()
	if err != nil {
		return err
	}

	slog.Info("Starting generational loop",
		"objective", spec.Objective,
		"population", ga.Population,
		"generations", ga.Generations,
		"selection", ga.Selection.Variant,
		"crossover", ga.Crossover.Variant,
		"mutation", ga.Mutation.Variant,
	)

	rng := rand.New(rand.NewSource(spec.Seed))
	domain := spec.EvoDomain()

	pop, err := evo.RandomPopulation(ga.Population, spec.Genes, domain, rng).Evaluate(obj)
	if err != nil {
		return err
	}
	initialBest, _ := pop.Best()

	start := time.Now()
	for gen := 1; gen <= ga.Generations; gen++ {
		// Generation-dependent mutators (nonuniform, adaptive) are rebuilt
		// against the current population.
		mutator, err := ga.Mutator(domain, gen, pop)
		if err != nil {
			return err
		}

		next := make(evo.Population, 0, ga.Population)
		for len(next) < ga.Population {
			parent1, parent2, err := selector.Select(pop, rng)
			if err != nil {
				return fmt.Errorf("generation %d: %w", gen, err)
			}
			child, err := crossover.Cross(parent1, parent2, rng)
			if err != nil {
				return fmt.Errorf("generation %d: %w", gen, err)
			}
			child, err = mutator.Mutate(child, rng)
			if err != nil {
				return fmt.Errorf("generation %d: %w", gen, err)
			}
			child, err = child.Evaluate(obj)
			if err != nil {
				return err
			}
			next = append(next, child)
		}
		pop = next

		best, _ := pop.Best()
		slog.Debug("Generation complete",
			"generation", gen,
			"best_fitness", best.Fitness(),
			"mean_fitness", pop.MeanFitness(),
		)
	}
	elapsed := time.Since(start)

	best, _ := pop.Best()
	slog.Info("Generational loop complete",
		"elapsed", elapsed,
		"initial_best", initialBest.Fitness(),
		"final_best", best.Fitness(),
		"final_mean", pop.MeanFitness(),
	)

	fmt.Printf("evolve on %s: best fitness %.4f -> %.4f over %d generations (%.2fs)\n",
		spec.Objective, initialBest.Fitness(), best.Fitness(), ga.Generations, elapsed.Seconds())

	return nil
}
