package evo

import "math/rand"

// Mutator derives a new candidate from an existing one by a stochastic
// perturbation. The input candidate is never modified; the result has its
// fitness unevaluated.
type Mutator interface {
	Mutate(c Candidate, rng *rand.Rand) (Candidate, error)
}

func checkProbability(p float64) error {
	if p < 0 || p > 1 {
		return &ParamError{Param: "mutation probability", Reason: "must be in [0, 1]"}
	}
	return nil
}

// UniformMutation replaces each gene, independently with Probability, by a
// fresh value drawn from the domain.
type UniformMutation struct {
	Probability float64
	Domain      Domain
}

func (m UniformMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if err := checkProbability(m.Probability); err != nil {
		return Candidate{}, err
	}
	if err := m.Domain.Validate(); err != nil {
		return Candidate{}, err
	}
	genes := make([]float64, c.Len())
	for i, g := range c.Genes {
		if rng.Float64() < m.Probability {
			genes[i] = m.Domain.Sample(rng)
		} else {
			genes[i] = g
		}
	}
	return Candidate{Genes: genes}, nil
}

// MultiPointMutation resamples exactly Points distinct, randomly chosen gene
// positions from the domain.
type MultiPointMutation struct {
	Points int
	Domain Domain
}

func (m MultiPointMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if m.Points < 1 {
		return Candidate{}, &ParamError{Param: "mutation points", Reason: "must be at least 1"}
	}
	if m.Points > c.Len() {
		return Candidate{}, &ParamError{Param: "mutation points", Reason: "exceeds chromosome length"}
	}
	if err := m.Domain.Validate(); err != nil {
		return Candidate{}, err
	}
	genes := append([]float64(nil), c.Genes...)
	for _, idx := range rng.Perm(c.Len())[:m.Points] {
		genes[idx] = m.Domain.Sample(rng)
	}
	return Candidate{Genes: genes}, nil
}

// GaussianMutation adds Normal(Mean, StdDev) noise to every gene. When Domain
// is set, perturbed genes are clamped back into it; the zero Domain leaves
// genes unbounded.
type GaussianMutation struct {
	Mean   float64
	StdDev float64
	Domain Domain
}

func (m GaussianMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if m.StdDev < 0 {
		return Candidate{}, &ParamError{Param: "stddev", Reason: "must be non-negative"}
	}
	clamp, err := clampFunc(m.Domain)
	if err != nil {
		return Candidate{}, err
	}
	genes := make([]float64, c.Len())
	for i, g := range c.Genes {
		genes[i] = clamp(g + rng.NormFloat64()*m.StdDev + m.Mean)
	}
	return Candidate{Genes: genes}, nil
}

// clampFunc resolves an optional domain into a gene post-processing step.
// The zero Domain means unbounded; any other domain must validate.
func clampFunc(d Domain) (func(float64) float64, error) {
	if d == (Domain{}) {
		return func(v float64) float64 { return v }, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.Clamp, nil
}

// BoundaryMutation sets one random gene to Lower or Upper with equal
// probability.
type BoundaryMutation struct {
	Lower float64
	Upper float64
}

func (m BoundaryMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if m.Lower > m.Upper {
		return Candidate{}, &ParamError{Param: "bounds", Reason: "lower exceeds upper"}
	}
	if c.Len() == 0 {
		return Candidate{}, &ParamError{Param: "candidate", Reason: "chromosome must not be empty"}
	}
	genes := append([]float64(nil), c.Genes...)
	idx := rng.Intn(len(genes))
	if rng.Float64() < 0.5 {
		genes[idx] = m.Lower
	} else {
		genes[idx] = m.Upper
	}
	return Candidate{Genes: genes}, nil
}

// SwapMutation exchanges the values of two distinct random positions.
type SwapMutation struct{}

func (SwapMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if c.Len() < 2 {
		return Candidate{}, &ParamError{Param: "candidate", Reason: "chromosome needs at least 2 genes"}
	}
	genes := append([]float64(nil), c.Genes...)
	idx := rng.Perm(len(genes))[:2]
	genes[idx[0]], genes[idx[1]] = genes[idx[1]], genes[idx[0]]
	return Candidate{Genes: genes}, nil
}

// ScrambleMutation shuffles the genes within one random contiguous subrange.
type ScrambleMutation struct{}

func (ScrambleMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	start, end, err := subrange(c, rng)
	if err != nil {
		return Candidate{}, err
	}
	genes := append([]float64(nil), c.Genes...)
	rng.Shuffle(end-start, func(i, j int) {
		genes[start+i], genes[start+j] = genes[start+j], genes[start+i]
	})
	return Candidate{Genes: genes}, nil
}

// InversionMutation reverses the gene order within one random contiguous
// subrange.
type InversionMutation struct{}

func (InversionMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	start, end, err := subrange(c, rng)
	if err != nil {
		return Candidate{}, err
	}
	genes := append([]float64(nil), c.Genes...)
	for i, j := start, end-1; i < j; i, j = i+1, j-1 {
		genes[i], genes[j] = genes[j], genes[i]
	}
	return Candidate{Genes: genes}, nil
}

// subrange picks a half-open interval [start, end) from two distinct
// positions, shared by scramble and inversion.
func subrange(c Candidate, rng *rand.Rand) (int, int, error) {
	if c.Len() < 2 {
		return 0, 0, &ParamError{Param: "candidate", Reason: "chromosome needs at least 2 genes"}
	}
	idx := rng.Perm(c.Len())[:2]
	start, end := idx[0], idx[1]
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}

// NonUniformMutation perturbs genes with a magnitude that shrinks linearly
// as Generation approaches MaxGenerations, annealing mutation strength over
// the course of a run. When Domain is set, perturbed genes are clamped back
// into it; the zero Domain leaves genes unbounded.
type NonUniformMutation struct {
	Probability    float64
	Generation     int
	MaxGenerations int
	Domain         Domain
}

func (m NonUniformMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if err := checkProbability(m.Probability); err != nil {
		return Candidate{}, err
	}
	if m.MaxGenerations < 1 {
		return Candidate{}, &ParamError{Param: "max generations", Reason: "must be at least 1"}
	}
	if m.Generation < 0 || m.Generation > m.MaxGenerations {
		return Candidate{}, &ParamError{Param: "generation", Reason: "must be in [0, max generations]"}
	}
	clamp, err := clampFunc(m.Domain)
	if err != nil {
		return Candidate{}, err
	}
	scale := 1 - float64(m.Generation)/float64(m.MaxGenerations)
	genes := make([]float64, c.Len())
	for i, g := range c.Genes {
		if rng.Float64() < m.Probability {
			delta := rng.Float64() * scale
			if rng.Float64() < 0.5 {
				delta = -delta
			}
			genes[i] = clamp(g + delta)
		} else {
			genes[i] = g
		}
	}
	return Candidate{Genes: genes}, nil
}

// AdaptiveMutation doubles the effective mutation probability for candidates
// whose fitness lags the population mean by more than ImprovementThreshold,
// then applies uniform mutation. Pop must be rebound by the caller whenever
// the population changes.
type AdaptiveMutation struct {
	Probability          float64
	ImprovementThreshold float64
	Domain               Domain
	Pop                  Population
}

func (m AdaptiveMutation) Mutate(c Candidate, rng *rand.Rand) (Candidate, error) {
	if err := checkProbability(m.Probability); err != nil {
		return Candidate{}, err
	}
	if len(m.Pop) == 0 {
		return Candidate{}, &ParamError{Param: "population", Reason: "must not be empty"}
	}
	probability := m.Probability
	if c.Fitness() < m.Pop.MeanFitness()*(1+m.ImprovementThreshold) {
		probability *= 2
	}
	if probability > 1 {
		probability = 1
	}
	return UniformMutation{Probability: probability, Domain: m.Domain}.Mutate(c, rng)
}
