package search

import (
	"math/rand"

	"github.com/cwbudde/searchkit/internal/evo"
)

// TabuSearcher explores a sampled neighborhood each iteration while a
// bounded recency list forbids revisiting recent chromosomes. A tabu
// neighbor is still admissible when it beats the best fitness seen so far
// (aspiration criterion). The current chromosome is pushed onto the tabu
// list every iteration, moved or not, so the list always reflects recent
// occupancy including repeats.
type TabuSearcher struct {
	TabuListSize     int
	MaxIterations    int
	NeighborhoodSize int
	Domain           evo.Domain
	Rand             *rand.Rand
	OnIteration      Hook
}

func (t *TabuSearcher) validate() error {
	if t.TabuListSize < 1 {
		return &evo.ParamError{Param: "tabu list size", Reason: "must be at least 1"}
	}
	if t.MaxIterations < 1 {
		return &evo.ParamError{Param: "max iterations", Reason: "must be at least 1"}
	}
	if t.NeighborhoodSize < 1 {
		return &evo.ParamError{Param: "neighborhood size", Reason: "must be at least 1"}
	}
	return nil
}

// Run searches from initial for MaxIterations iterations and returns the
// best candidate seen.
func (t *TabuSearcher) Run(initial evo.Candidate, objective evo.Objective) (evo.Candidate, error) {
	if err := t.validate(); err != nil {
		return evo.Candidate{}, err
	}
	if err := checkCommon(initial, t.Domain, t.Rand); err != nil {
		return evo.Candidate{}, err
	}

	current, err := initial.Evaluate(objective)
	if err != nil {
		return evo.Candidate{}, err
	}
	best := current

	tabu := newTabuList(t.TabuListSize)
	tabu.push(current.Key())

	for iter := 1; iter <= t.MaxIterations; iter++ {
		current, best, err = t.step(current, best, tabu, objective)
		if err != nil {
			return evo.Candidate{}, err
		}
		if t.OnIteration != nil {
			t.OnIteration(iter, best)
		}
	}
	return best, nil
}

// step performs one tabu iteration: scan a sampled neighborhood for the best
// admissible neighbor, move on strict improvement, and record the resulting
// current chromosome in tabu memory.
func (t *TabuSearcher) step(current, best evo.Candidate, tabu *tabuList, objective evo.Objective) (evo.Candidate, evo.Candidate, error) {
	// Each neighbor is an independent perturbation of current,
	// not of each other.
	var bestNeighbor evo.Candidate
	found := false
	for i := 0; i < t.NeighborhoodSize; i++ {
		proposal, err := neighbor(current, t.Domain, t.Rand).Evaluate(objective)
		if err != nil {
			return evo.Candidate{}, evo.Candidate{}, err
		}
		admissible := !tabu.contains(proposal.Key()) ||
			proposal.Fitness() > best.Fitness()
		if !admissible {
			continue
		}
		if !found || proposal.Fitness() > bestNeighbor.Fitness() {
			bestNeighbor = proposal
			found = true
		}
	}

	if found && bestNeighbor.Fitness() > current.Fitness() {
		current = bestNeighbor
		if bestNeighbor.Fitness() > best.Fitness() {
			best = bestNeighbor
		}
	}

	tabu.push(current.Key())
	return current, best, nil
}
