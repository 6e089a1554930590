package search

import (
	"math"
	"math/rand"

	"github.com/cwbudde/searchkit/internal/evo"
)

// Annealer performs simulated annealing with the Metropolis acceptance rule
// and a geometric cooling schedule. Improving neighbors are always accepted;
// a worsening neighbor is accepted with probability exp(delta/T), which
// degenerates to near zero as the temperature drops. The best candidate seen
// is tracked separately from the current one and is what Run returns.
type Annealer struct {
	InitialTemperature float64
	CoolingRate        float64 // per-iteration fraction, in (0, 1)
	MinTemperature     float64
	Domain             evo.Domain
	Rand               *rand.Rand
	OnIteration        Hook
}

func (a *Annealer) validate() error {
	if a.CoolingRate <= 0 || a.CoolingRate >= 1 {
		return &evo.ParamError{Param: "cooling rate", Reason: "must be in (0, 1)"}
	}
	if a.MinTemperature <= 0 {
		return &evo.ParamError{Param: "min temperature", Reason: "must be positive"}
	}
	if a.InitialTemperature <= a.MinTemperature {
		return &evo.ParamError{Param: "initial temperature", Reason: "must exceed min temperature"}
	}
	return nil
}

// Run anneals from initial until the temperature falls to MinTemperature and
// returns the best candidate seen over the whole run.
func (a *Annealer) Run(initial evo.Candidate, objective evo.Objective) (evo.Candidate, error) {
	if err := a.validate(); err != nil {
		return evo.Candidate{}, err
	}
	if err := checkCommon(initial, a.Domain, a.Rand); err != nil {
		return evo.Candidate{}, err
	}

	current, err := initial.Evaluate(objective)
	if err != nil {
		return evo.Candidate{}, err
	}
	best := current

	temperature := a.InitialTemperature
	for iter := 1; temperature > a.MinTemperature; iter++ {
		proposal, err := neighbor(current, a.Domain, a.Rand).Evaluate(objective)
		if err != nil {
			return evo.Candidate{}, err
		}

		delta := proposal.Fitness() - current.Fitness()
		if delta > 0 || a.Rand.Float64() < math.Exp(delta/temperature) {
			current = proposal
			if proposal.Fitness() > best.Fitness() {
				best = proposal
			}
		}

		temperature *= 1 - a.CoolingRate
		if a.OnIteration != nil {
			a.OnIteration(iter, best)
		}
	}
	return best, nil
}
