package evo

import (
	"math/rand"
	"sort"
)

// Crossover combines two parent candidates into one offspring. The offspring
// is returned with its fitness unevaluated. All variants require parents of
// equal chromosome length except CutSpliceCrossover, which deliberately
// produces variable-length offspring.
type Crossover interface {
	Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error)
}

func equalLength(p1, p2 Candidate) error {
	if p1.Len() != p2.Len() {
		return &ParamError{Param: "parents", Reason: "chromosome lengths differ"}
	}
	return nil
}

// NPointCrossover cuts both parents at Points strictly increasing positions
// in [1, length) and alternates contiguous segments, starting with parent1.
type NPointCrossover struct {
	Points int
}

func (x NPointCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if err := equalLength(parent1, parent2); err != nil {
		return Candidate{}, err
	}
	length := parent1.Len()
	if x.Points < 1 {
		return Candidate{}, &ParamError{Param: "crossover points", Reason: "must be at least 1"}
	}
	if x.Points >= length {
		return Candidate{}, &ParamError{Param: "crossover points", Reason: "must be less than chromosome length"}
	}

	cuts := rng.Perm(length - 1)[:x.Points]
	for i := range cuts {
		cuts[i]++ // shift from [0,length-1) to [1,length)
	}
	sort.Ints(cuts)
	cuts = append(cuts, length)

	genes := make([]float64, 0, length)
	fromSecond, prev := false, 0
	for _, cut := range cuts {
		if fromSecond {
			genes = append(genes, parent2.Genes[prev:cut]...)
		} else {
			genes = append(genes, parent1.Genes[prev:cut]...)
		}
		fromSecond = !fromSecond
		prev = cut
	}
	return Candidate{Genes: genes}, nil
}

// UniformCrossover picks each gene from either parent with equal probability.
type UniformCrossover struct{}

func (UniformCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if err := equalLength(parent1, parent2); err != nil {
		return Candidate{}, err
	}
	genes := make([]float64, parent1.Len())
	for i := range genes {
		if rng.Float64() < 0.5 {
			genes[i] = parent1.Genes[i]
		} else {
			genes[i] = parent2.Genes[i]
		}
	}
	return Candidate{Genes: genes}, nil
}

// ArithmeticCrossover blends each gene pair as alpha*g1 + (1-alpha)*g2.
// Offspring genes are real-valued even for integer parents.
type ArithmeticCrossover struct {
	Alpha float64
}

func (x ArithmeticCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if x.Alpha < 0 || x.Alpha > 1 {
		return Candidate{}, &ParamError{Param: "alpha", Reason: "must be in [0, 1]"}
	}
	if err := equalLength(parent1, parent2); err != nil {
		return Candidate{}, err
	}
	genes := make([]float64, parent1.Len())
	for i := range genes {
		genes[i] = x.Alpha*parent1.Genes[i] + (1-x.Alpha)*parent2.Genes[i]
	}
	return Candidate{Genes: genes}, nil
}

// BlendCrossover (BLX-alpha) samples each offspring gene uniformly from the
// parents' interval widened by Alpha times the gene distance on both sides.
type BlendCrossover struct {
	Alpha float64
}

func (x BlendCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if x.Alpha < 0 {
		return Candidate{}, &ParamError{Param: "alpha", Reason: "must be non-negative"}
	}
	if err := equalLength(parent1, parent2); err != nil {
		return Candidate{}, err
	}
	genes := make([]float64, parent1.Len())
	for i := range genes {
		g1, g2 := parent1.Genes[i], parent2.Genes[i]
		lo, hi := g1, g2
		if lo > hi {
			lo, hi = hi, lo
		}
		d := hi - lo
		lo -= x.Alpha * d
		hi += x.Alpha * d
		genes[i] = lo + rng.Float64()*(hi-lo)
	}
	return Candidate{Genes: genes}, nil
}

// CutSpliceCrossover cuts each parent at an independent point and joins
// parent1's prefix to parent2's suffix. The offspring length may differ from
// both parents; this is the one sanctioned exception to the fixed-length
// invariant.
type CutSpliceCrossover struct{}

func (CutSpliceCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if parent1.Len() == 0 || parent2.Len() == 0 {
		return Candidate{}, &ParamError{Param: "parents", Reason: "chromosomes must not be empty"}
	}
	cut1 := rng.Intn(parent1.Len())
	cut2 := rng.Intn(parent2.Len())

	genes := make([]float64, 0, cut1+parent2.Len()-cut2)
	genes = append(genes, parent1.Genes[:cut1]...)
	genes = append(genes, parent2.Genes[cut2:]...)
	return Candidate{Genes: genes}, nil
}

// OrderCrossover (OX) copies a random contiguous segment of parent1 verbatim
// and fills the remaining positions, in order, with parent2's genes that are
// not already covered by the segment. The "already covered" check counts
// multiplicity, so when the parents share a multiset of genes the offspring
// is a permutation of that multiset even if values repeat.
type OrderCrossover struct{}

func (OrderCrossover) Cross(parent1, parent2 Candidate, rng *rand.Rand) (Candidate, error) {
	if err := equalLength(parent1, parent2); err != nil {
		return Candidate{}, err
	}
	length := parent1.Len()
	if length < 2 {
		return Candidate{}, &ParamError{Param: "parents", Reason: "chromosome needs at least 2 genes"}
	}

	idx := rng.Perm(length)[:2]
	start, end := idx[0], idx[1]
	if start > end {
		start, end = end, start
	}

	genes := make([]float64, length)
	copied := make(map[float64]int, end-start)
	for i := start; i < end; i++ {
		genes[i] = parent1.Genes[i]
		copied[parent1.Genes[i]]++
	}

	fill := make([]float64, 0, length-(end-start))
	for _, g := range parent2.Genes {
		if copied[g] > 0 {
			copied[g]--
			continue
		}
		fill = append(fill, g)
	}

	next := 0
	for i := 0; i < length; i++ {
		if i >= start && i < end {
			continue
		}
		genes[i] = fill[next]
		next++
	}
	return Candidate{Genes: genes}, nil
}
