package config

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/searchkit/internal/evo"
	"github.com/cwbudde/searchkit/internal/search"
)

// EvoDomain converts the spec's domain into the core type.
func (s *RunSpec) EvoDomain() evo.Domain {
	return evo.Domain{Min: s.Domain.Min, Max: s.Domain.Max, Integer: s.Domain.Integer}
}

// Driver builds the configured local-search driver. The hook may be nil.
func (s *RunSpec) Driver(rng *rand.Rand, hook search.Hook) (search.Driver, error) {
	domain := s.EvoDomain()
	switch s.Search.Algorithm {
	case "hill":
		return &search.HillClimber{
			MaxIterations: s.Search.MaxIterations,
			Domain:        domain,
			Rand:          rng,
			OnIteration:   hook,
		}, nil
	case "anneal":
		return &search.Annealer{
			InitialTemperature: s.Search.InitialTemperature,
			CoolingRate:        s.Search.CoolingRate,
			MinTemperature:     s.Search.MinTemperature,
			Domain:             domain,
			Rand:               rng,
			OnIteration:        hook,
		}, nil
	case "tabu":
		return &search.TabuSearcher{
			TabuListSize:     s.Search.TabuListSize,
			MaxIterations:    s.Search.MaxIterations,
			NeighborhoodSize: s.Search.NeighborhoodSize,
			Domain:           domain,
			Rand:             rng,
			OnIteration:      hook,
		}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", s.Search.Algorithm)
	}
}

// Selector builds the configured selection operator.
func (g *GASpec) Selector() (evo.Selector, error) {
	switch g.Selection.Variant {
	case "roulette":
		return evo.RouletteSelector{}, nil
	case "rank":
		return evo.RankSelector{}, nil
	case "tournament":
		return evo.TournamentSelector{Size: g.Selection.TournamentSize}, nil
	case "sus":
		return evo.SUSSelector{}, nil
	case "truncation":
		fraction := g.Selection.TruncationFraction
		if fraction == 0 {
			fraction = 0.5
		}
		return evo.TruncationSelector{Fraction: fraction}, nil
	case "elitism":
		fraction := g.Selection.EliteFraction
		if fraction == 0 {
			fraction = 0.1
		}
		return evo.ElitismSelector{Fraction: fraction}, nil
	default:
		return nil, fmt.Errorf("unknown selection variant %q", g.Selection.Variant)
	}
}

// CrossoverOp builds the configured crossover operator.
func (g *GASpec) CrossoverOp() (evo.Crossover, error) {
	switch g.Crossover.Variant {
	case "npoint":
		points := g.Crossover.Points
		if points == 0 {
			points = 2
		}
		return evo.NPointCrossover{Points: points}, nil
	case "uniform":
		return evo.UniformCrossover{}, nil
	case "arithmetic":
		alpha := g.Crossover.Alpha
		if alpha == 0 {
			alpha = 0.5
		}
		return evo.ArithmeticCrossover{Alpha: alpha}, nil
	case "blend":
		alpha := g.Crossover.Alpha
		if alpha == 0 {
			alpha = 0.5
		}
		return evo.BlendCrossover{Alpha: alpha}, nil
	case "cutsplice":
		return evo.CutSpliceCrossover{}, nil
	case "order":
		return evo.OrderCrossover{}, nil
	default:
		return nil, fmt.Errorf("unknown crossover variant %q", g.Crossover.Variant)
	}
}

// Mutator builds the configured mutation operator for one generation.
// Generation-dependent variants (nonuniform, adaptive) need the current
// generation number and population, so callers rebuild per generation.
func (g *GASpec) Mutator(domain evo.Domain, generation int, pop evo.Population) (evo.Mutator, error) {
	m := g.Mutation
	switch m.Variant {
	case "uniform":
		return evo.UniformMutation{Probability: m.Probability, Domain: domain}, nil
	case "multipoint":
		points := m.Points
		if points == 0 {
			points = 1
		}
		return evo.MultiPointMutation{Points: points, Domain: domain}, nil
	case "gaussian":
		stddev := m.StdDev
		if stddev == 0 {
			stddev = 1
		}
		return evo.GaussianMutation{Mean: m.Mean, StdDev: stddev, Domain: domain}, nil
	case "boundary":
		return evo.BoundaryMutation{Lower: domain.Min, Upper: domain.Max}, nil
	case "swap":
		return evo.SwapMutation{}, nil
	case "scramble":
		return evo.ScrambleMutation{}, nil
	case "inversion":
		return evo.InversionMutation{}, nil
	case "nonuniform":
		probability := m.Probability
		if probability == 0 {
			probability = 0.1
		}
		return evo.NonUniformMutation{
			Probability:    probability,
			Generation:     generation,
			MaxGenerations: g.Generations,
			Domain:         domain,
		}, nil
	case "adaptive":
		probability := m.Probability
		if probability == 0 {
			probability = 0.1
		}
		return evo.AdaptiveMutation{
			Probability:          probability,
			ImprovementThreshold: m.ImprovementThreshold,
			Domain:               domain,
			Pop:                  pop,
		}, nil
	default:
		return nil, fmt.Errorf("unknown mutation variant %q", m.Variant)
	}
}
