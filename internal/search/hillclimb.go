package search

import (
	"math/rand"

	"github.com/cwbudde/searchkit/internal/evo"
)

// HillClimber performs strict-improvement hill climbing: each iteration
// proposes one single-gene neighbor and moves only when the neighbor's
// fitness is strictly higher. Ties never move. There is no separate
// best-tracking; the last accepted candidate is the result, so the returned
// fitness can never be below the initial candidate's.
type HillClimber struct {
	MaxIterations int
	Domain        evo.Domain
	Rand          *rand.Rand
	OnIteration   Hook
}

// Run climbs from initial for MaxIterations steps and returns the last
// accepted candidate.
func (h *HillClimber) Run(initial evo.Candidate, objective evo.Objective) (evo.Candidate, error) {
	if h.MaxIterations < 1 {
		return evo.Candidate{}, &evo.ParamError{Param: "max iterations", Reason: "must be at least 1"}
	}
	if err := checkCommon(initial, h.Domain, h.Rand); err != nil {
		return evo.Candidate{}, err
	}

	current, err := initial.Evaluate(objective)
	if err != nil {
		return evo.Candidate{}, err
	}

	for iter := 1; iter <= h.MaxIterations; iter++ {
		proposal, err := neighbor(current, h.Domain, h.Rand).Evaluate(objective)
		if err != nil {
			return evo.Candidate{}, err
		}
		if proposal.Fitness() > current.Fitness() {
			current = proposal
		}
		if h.OnIteration != nil {
			h.OnIteration(iter, current)
		}
	}
	return current, nil
}
