package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a run specification file, fills defaults, and
// validates the result.
func Load(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run spec %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run spec %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a YAML run specification, fills defaults, and validates.
func Parse(data []byte) (*RunSpec, error) {
	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ApplyDefaults fills zero-valued fields with the standard defaults. The
// defaults mirror the classic textbook parameterization: integer genes in
// [0, 100], thousand-iteration budgets, geometric cooling from 1000 down to
// 1e-5 at rate 0.003, tabu list and neighborhood of 10.
func (s *RunSpec) ApplyDefaults() {
	if s.Objective == "" {
		s.Objective = "sum"
	}
	if s.Genes == 0 {
		s.Genes = 20
	}
	if s.Domain == (DomainSpec{}) {
		s.Domain = DomainSpec{Min: 0, Max: 100, Integer: true}
	}
	if s.Search.Algorithm == "" {
		s.Search.Algorithm = "hill"
	}
	if s.Search.MaxIterations == 0 {
		s.Search.MaxIterations = 1000
	}
	if s.Search.InitialTemperature == 0 {
		s.Search.InitialTemperature = 1000
	}
	if s.Search.CoolingRate == 0 {
		s.Search.CoolingRate = 0.003
	}
	if s.Search.MinTemperature == 0 {
		s.Search.MinTemperature = 1e-5
	}
	if s.Search.TabuListSize == 0 {
		s.Search.TabuListSize = 10
	}
	if s.Search.NeighborhoodSize == 0 {
		s.Search.NeighborhoodSize = 10
	}
	if s.GA != nil {
		if s.GA.Population == 0 {
			s.GA.Population = 30
		}
		if s.GA.Generations == 0 {
			s.GA.Generations = 50
		}
		if s.GA.Selection.Variant == "" {
			s.GA.Selection.Variant = "tournament"
		}
		if s.GA.Crossover.Variant == "" {
			s.GA.Crossover.Variant = "uniform"
		}
		if s.GA.Mutation.Variant == "" {
			s.GA.Mutation.Variant = "uniform"
		}
		if s.GA.Mutation.Variant == "uniform" && s.GA.Mutation.Probability == 0 {
			s.GA.Mutation.Probability = 0.05
		}
	}
}

// Validate performs structural validation. Operator- and driver-level
// parameter checks happen again in the core at call time; this pass catches
// spec-level mistakes early with file-oriented messages.
func (s *RunSpec) Validate() error {
	if s.Genes < 1 {
		return fmt.Errorf("genes must be at least 1, got %d", s.Genes)
	}
	if s.Domain.Min >= s.Domain.Max {
		return fmt.Errorf("domain min (%g) must be less than max (%g)", s.Domain.Min, s.Domain.Max)
	}
	if s.Domain.Integer && math.Floor(s.Domain.Max) < math.Ceil(s.Domain.Min) {
		return fmt.Errorf("integer domain [%g, %g] contains no whole number", s.Domain.Min, s.Domain.Max)
	}
	switch s.Search.Algorithm {
	case "hill", "anneal", "tabu":
	default:
		return fmt.Errorf("unknown algorithm %q (must be hill, anneal, or tabu)", s.Search.Algorithm)
	}
	if s.Search.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", s.Search.MaxIterations)
	}
	if s.Search.Algorithm == "anneal" {
		if s.Search.CoolingRate <= 0 || s.Search.CoolingRate >= 1 {
			return fmt.Errorf("cooling_rate must be in (0, 1), got %g", s.Search.CoolingRate)
		}
		if s.Search.MinTemperature <= 0 {
			return fmt.Errorf("min_temperature must be positive, got %g", s.Search.MinTemperature)
		}
		if s.Search.InitialTemperature <= s.Search.MinTemperature {
			return fmt.Errorf("initial_temperature (%g) must exceed min_temperature (%g)",
				s.Search.InitialTemperature, s.Search.MinTemperature)
		}
	}
	if s.Search.Algorithm == "tabu" {
		if s.Search.TabuListSize < 1 {
			return fmt.Errorf("tabu_list_size must be at least 1, got %d", s.Search.TabuListSize)
		}
		if s.Search.NeighborhoodSize < 1 {
			return fmt.Errorf("neighborhood_size must be at least 1, got %d", s.Search.NeighborhoodSize)
		}
	}
	if s.GA != nil {
		if s.GA.Population < 2 {
			return fmt.Errorf("ga population must be at least 2, got %d", s.GA.Population)
		}
		if s.GA.Generations < 1 {
			return fmt.Errorf("ga generations must be at least 1, got %d", s.GA.Generations)
		}
		if err := validateVariant("selection", s.GA.Selection.Variant,
			"roulette", "rank", "tournament", "sus", "truncation", "elitism"); err != nil {
			return err
		}
		if err := validateVariant("crossover", s.GA.Crossover.Variant,
			"npoint", "uniform", "arithmetic", "blend", "cutsplice", "order"); err != nil {
			return err
		}
		if err := validateVariant("mutation", s.GA.Mutation.Variant,
			"uniform", "multipoint", "gaussian", "boundary", "swap",
			"scramble", "inversion", "nonuniform", "adaptive"); err != nil {
			return err
		}
	}
	return nil
}

func validateVariant(kind, got string, known ...string) error {
	for _, k := range known {
		if got == k {
			return nil
		}
	}
	return fmt.Errorf("unknown %s variant %q (must be one of %v)", kind, got, known)
}
