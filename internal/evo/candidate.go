// Package evo provides the shared candidate-solution model and the
// selection, crossover, and mutation operator library used by the search
// drivers and by caller-composed generational loops.
package evo

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Objective scores a chromosome. Higher is better. Errors returned by an
// objective propagate unmodified to the caller of whatever evaluated it.
type Objective func(genes []float64) (float64, error)

// Candidate is one solution instance: a chromosome plus a lazily computed
// fitness. Candidates are value objects; operators never mutate their inputs
// and always return fresh Candidates with fitness unset.
type Candidate struct {
	Genes []float64

	fitness   float64
	evaluated bool
}

// NewCandidate wraps a chromosome in an unevaluated Candidate.
// The slice is copied so later mutation of the argument cannot alias.
func NewCandidate(genes []float64) Candidate {
	return Candidate{Genes: append([]float64(nil), genes...)}
}

// RandomCandidate draws a fresh chromosome of n genes from the domain.
func RandomCandidate(n int, domain Domain, rng *rand.Rand) Candidate {
	genes := make([]float64, n)
	for i := range genes {
		genes[i] = domain.Sample(rng)
	}
	return Candidate{Genes: genes}
}

// Evaluate returns a copy of c with fitness computed by the objective.
// Objective errors are returned unmodified.
func (c Candidate) Evaluate(objective Objective) (Candidate, error) {
	if c.evaluated {
		return c, nil
	}
	fitness, err := objective(c.Genes)
	if err != nil {
		return Candidate{}, err
	}
	out := c
	out.fitness = fitness
	out.evaluated = true
	return out, nil
}

// Fitness returns the computed fitness. It is only meaningful when
// Evaluated reports true.
func (c Candidate) Fitness() float64 { return c.fitness }

// Evaluated reports whether the fitness has been computed.
func (c Candidate) Evaluated() bool { return c.evaluated }

// WithFitness returns a copy of c carrying the given fitness.
// Useful for tests and for callers that score chromosomes externally.
func (c Candidate) WithFitness(fitness float64) Candidate {
	out := c
	out.fitness = fitness
	out.evaluated = true
	return out
}

// Len returns the chromosome length.
func (c Candidate) Len() int { return len(c.Genes) }

// Equal reports value equality over the chromosome. Fitness and evaluation
// state are ignored: two candidates with identical genes are the same
// solution. This is the equality used by tabu membership and
// distinct-parent checks.
func (c Candidate) Equal(other Candidate) bool {
	if len(c.Genes) != len(other.Genes) {
		return false
	}
	for i, g := range c.Genes {
		if g != other.Genes[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string signature of the chromosome, usable as a
// map key or tabu-list entry. Candidates that are Equal share a Key.
func (c Candidate) Key() string {
	var sb strings.Builder
	for i, g := range c.Genes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(g, 'g', -1, 64))
	}
	return sb.String()
}

// Clone returns a deep copy of the candidate.
func (c Candidate) Clone() Candidate {
	out := c
	out.Genes = append([]float64(nil), c.Genes...)
	return out
}

// Population is an ordered collection of candidates. Order carries no
// meaning except where an operator explicitly ranks or sorts.
type Population []Candidate

// RandomPopulation generates size candidates of n genes each from the domain.
func RandomPopulation(size, n int, domain Domain, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = RandomCandidate(n, domain, rng)
	}
	return pop
}

// Evaluate returns a copy of the population with every candidate scored.
// The first objective error aborts and propagates.
func (p Population) Evaluate(objective Objective) (Population, error) {
	out := make(Population, len(p))
	for i, c := range p {
		scored, err := c.Evaluate(objective)
		if err != nil {
			return nil, err
		}
		out[i] = scored
	}
	return out, nil
}

// TotalFitness sums the fitness of all candidates.
func (p Population) TotalFitness() float64 {
	var total float64
	for _, c := range p {
		total += c.fitness
	}
	return total
}

// MeanFitness returns the average fitness, or 0 for an empty population.
func (p Population) MeanFitness() float64 {
	if len(p) == 0 {
		return 0
	}
	return p.TotalFitness() / float64(len(p))
}

// Best returns the candidate with the highest fitness and false for an
// empty population.
func (p Population) Best() (Candidate, bool) {
	if len(p) == 0 {
		return Candidate{}, false
	}
	best := p[0]
	for _, c := range p[1:] {
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best, true
}

// SortedAscending returns a copy sorted by fitness, worst first.
// The sort is stable so equal-fitness candidates keep their order.
func (p Population) SortedAscending() Population {
	out := append(Population(nil), p...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].fitness < out[j].fitness
	})
	return out
}

// SortedDescending returns a copy sorted by fitness, best first.
func (p Population) SortedDescending() Population {
	out := append(Population(nil), p...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].fitness > out[j].fitness
	})
	return out
}
