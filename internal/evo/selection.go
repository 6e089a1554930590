package evo

import "math/rand"

// Selector picks two parent candidates from a population. All variants are
// stochastic; the rng argument is the single per-run randomness source.
//
// Every variant except ElitismSelector guarantees the returned parents are
// distinct by value equality, or that equality was never possible given its
// sampling rule.
type Selector interface {
	Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error)
}

// distinctResampleFactor bounds parent2 re-sampling: selectors that enforce
// distinct parents give up after factor*len(pool) draws and report
// ErrNoDistinctParent rather than spinning on a value-identical pool.
const distinctResampleFactor = 4

// RouletteSelector implements fitness-proportional (roulette-wheel)
// selection: a uniform point in [0, total fitness) is matched against the
// cumulative fitness walk. Requires a positive total fitness.
type RouletteSelector struct{}

func (RouletteSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	if len(pop) < 2 {
		return Candidate{}, Candidate{}, &ParamError{Param: "population", Reason: "needs at least 2 candidates"}
	}
	total := pop.TotalFitness()
	if total <= 0 {
		return Candidate{}, Candidate{}, &FitnessError{Selector: "roulette", Total: total}
	}

	spin := func() Candidate {
		pick := rng.Float64() * total
		var cum float64
		for _, c := range pop {
			cum += c.fitness
			if cum > pick {
				return c
			}
		}
		// Floating-point shortfall at the tail lands on the last candidate.
		return pop[len(pop)-1]
	}

	parent1 := spin()
	for i := 0; i < distinctResampleFactor*len(pop); i++ {
		parent2 := spin()
		if !parent2.Equal(parent1) {
			return parent1, parent2, nil
		}
	}
	return Candidate{}, Candidate{}, &DistinctParentError{Selector: "roulette"}
}

// RankSelector sorts the population ascending by fitness and selects with
// probability proportional to rank (1..N), so selection pressure depends on
// ordering rather than fitness magnitude.
type RankSelector struct{}

func (RankSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	if len(pop) < 2 {
		return Candidate{}, Candidate{}, &ParamError{Param: "population", Reason: "needs at least 2 candidates"}
	}
	if total := pop.TotalFitness(); total <= 0 {
		return Candidate{}, Candidate{}, &FitnessError{Selector: "rank", Total: total}
	}

	ranked := pop.SortedAscending()
	n := len(ranked)
	totalRanks := float64(n*(n+1)) / 2

	spin := func() Candidate {
		pick := rng.Float64() * totalRanks
		var cum float64
		for i, c := range ranked {
			cum += float64(i + 1)
			if cum > pick {
				return c
			}
		}
		return ranked[n-1]
	}

	return spin(), spin(), nil
}

// TournamentSelector samples Size candidates uniformly without replacement
// and returns the fittest; each parent comes from an independent tournament.
type TournamentSelector struct {
	Size int // number of contestants per tournament; DefaultTournamentSize if zero
}

// DefaultTournamentSize is used when TournamentSelector.Size is zero.
const DefaultTournamentSize = 3

func (s TournamentSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	size := s.Size
	if size == 0 {
		size = DefaultTournamentSize
	}
	if size < 1 {
		return Candidate{}, Candidate{}, &ParamError{Param: "tournament size", Reason: "must be at least 1"}
	}
	if size > len(pop) {
		return Candidate{}, Candidate{}, &ParamError{Param: "tournament size", Reason: "exceeds population size"}
	}

	hold := func() Candidate {
		best := Candidate{}
		have := false
		for _, idx := range rng.Perm(len(pop))[:size] {
			if !have || pop[idx].fitness > best.fitness {
				best = pop[idx]
				have = true
			}
		}
		return best
	}

	return hold(), hold(), nil
}

// SUSSelector implements stochastic universal sampling: evenly spaced
// pointers over the cumulative fitness walk, collected in a single pass.
type SUSSelector struct{}

func (s SUSSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	parents, err := s.SelectN(pop, 2, rng)
	if err != nil {
		return Candidate{}, Candidate{}, err
	}
	return parents[0], parents[1], nil
}

// SelectN collects exactly n parents with one walk over the population.
// If floating-point accumulation leaves a tail pointer uncrossed, the final
// candidate of the walk fills the remaining slots, so the result always has
// length n.
func (s SUSSelector) SelectN(pop Population, n int, rng *rand.Rand) ([]Candidate, error) {
	if n < 1 {
		return nil, &ParamError{Param: "num parents", Reason: "must be at least 1"}
	}
	if len(pop) == 0 {
		return nil, &ParamError{Param: "population", Reason: "must not be empty"}
	}
	total := pop.TotalFitness()
	if total <= 0 {
		return nil, &FitnessError{Selector: "sus", Total: total}
	}

	spacing := total / float64(n)
	point := rng.Float64() * spacing

	parents := make([]Candidate, 0, n)
	var cum float64
	for _, c := range pop {
		cum += c.fitness
		for cum > point && len(parents) < n {
			parents = append(parents, c)
			point += spacing
		}
	}
	for len(parents) < n {
		parents = append(parents, pop[len(pop)-1])
	}
	return parents, nil
}

// TruncationSelector keeps the top Fraction of the population by fitness and
// samples two distinct parents uniformly from that subset.
type TruncationSelector struct {
	Fraction float64 // fraction of the population retained, in (0, 1]
}

func (s TruncationSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	if s.Fraction <= 0 || s.Fraction > 1 {
		return Candidate{}, Candidate{}, &ParamError{Param: "truncation fraction", Reason: "must be in (0, 1]"}
	}
	keep := int(s.Fraction * float64(len(pop)))
	if keep < 2 {
		return Candidate{}, Candidate{}, &ParamError{Param: "truncation fraction", Reason: "retained subset needs at least 2 candidates"}
	}
	subset := pop.SortedDescending()[:keep]

	parent1 := subset[rng.Intn(keep)]
	for i := 0; i < distinctResampleFactor*keep; i++ {
		parent2 := subset[rng.Intn(keep)]
		if !parent2.Equal(parent1) {
			return parent1, parent2, nil
		}
	}
	return Candidate{}, Candidate{}, &DistinctParentError{Selector: "truncation"}
}

// ElitismSelector samples two parents uniformly, with replacement, from the
// top Fraction of the population (at least one candidate). It is the only
// selector that may return the same candidate twice.
type ElitismSelector struct {
	Fraction float64 // fraction of the population forming the elite, in (0, 1]
}

func (s ElitismSelector) Select(pop Population, rng *rand.Rand) (Candidate, Candidate, error) {
	if s.Fraction <= 0 || s.Fraction > 1 {
		return Candidate{}, Candidate{}, &ParamError{Param: "elite fraction", Reason: "must be in (0, 1]"}
	}
	if len(pop) == 0 {
		return Candidate{}, Candidate{}, &ParamError{Param: "population", Reason: "must not be empty"}
	}
	size := int(s.Fraction * float64(len(pop)))
	if size < 1 {
		size = 1
	}
	elite := pop.SortedDescending()[:size]
	return elite[rng.Intn(size)], elite[rng.Intn(size)], nil
}
