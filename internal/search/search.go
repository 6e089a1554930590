// Package search implements the local-search drivers: hill climbing,
// simulated annealing, and tabu search. Each driver iteratively refines a
// single candidate against a caller-supplied objective and owns its own
// acceptance and termination policy. Drivers never log or print; progress is
// observable through an optional per-iteration hook.
package search

import (
	"math/rand"

	"github.com/cwbudde/searchkit/internal/evo"
)

// Driver runs a local search from an initial candidate and returns the
// resulting candidate. Objective evaluation errors propagate unmodified.
type Driver interface {
	Run(initial evo.Candidate, objective evo.Objective) (evo.Candidate, error)
}

// Hook observes driver progress. It is called once per iteration with the
// driver's current return-value candidate (last accepted for hill climbing,
// running best for annealing and tabu search). Hooks must not retain the
// candidate's gene slice across calls if they mutate it.
type Hook func(iteration int, best evo.Candidate)

// neighbor produces a single-gene perturbation of c: one randomly chosen
// gene is replaced by a fresh sample from the domain.
func neighbor(c evo.Candidate, domain evo.Domain, rng *rand.Rand) evo.Candidate {
	genes := append([]float64(nil), c.Genes...)
	genes[rng.Intn(len(genes))] = domain.Sample(rng)
	return evo.Candidate{Genes: genes}
}

func checkCommon(initial evo.Candidate, domain evo.Domain, rng *rand.Rand) error {
	if initial.Len() == 0 {
		return &evo.ParamError{Param: "initial candidate", Reason: "chromosome must not be empty"}
	}
	if err := domain.Validate(); err != nil {
		return err
	}
	if rng == nil {
		return &evo.ParamError{Param: "rand", Reason: "random source is required"}
	}
	return nil
}

// tabuList is a bounded FIFO of chromosome keys. Pushing beyond the limit
// evicts the oldest entry.
type tabuList struct {
	keys  []string
	limit int
}

func newTabuList(limit int) *tabuList {
	return &tabuList{keys: make([]string, 0, limit), limit: limit}
}

func (t *tabuList) push(key string) {
	t.keys = append(t.keys, key)
	if len(t.keys) > t.limit {
		t.keys = t.keys[1:]
	}
}

func (t *tabuList) contains(key string) bool {
	for _, k := range t.keys {
		if k == key {
			return true
		}
	}
	return false
}
