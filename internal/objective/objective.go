// Package objective provides named benchmark objective functions for the
// CLI and server harnesses. All objectives follow the core's higher-is-better
// convention; classic minimization benchmarks are negated.
package objective

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/searchkit/internal/evo"
)

// Sum maximizes the plain gene sum. The canonical smoke-test objective: with
// a bounded domain the optimum is every gene at the upper bound.
func Sum(genes []float64) (float64, error) {
	var total float64
	for _, g := range genes {
		total += g
	}
	return total, nil
}

// Mean maximizes the average gene value.
func Mean(genes []float64) (float64, error) {
	if len(genes) == 0 {
		return 0, fmt.Errorf("mean objective: empty chromosome")
	}
	total, _ := Sum(genes)
	return total / float64(len(genes)), nil
}

// NegSphere is the negated sphere benchmark -sum(x_i^2); the peak (0) is at
// the origin.
func NegSphere(genes []float64) (float64, error) {
	var total float64
	for _, g := range genes {
		total += g * g
	}
	return -total, nil
}

// NegRastrigin is the negated Rastrigin benchmark, a highly multimodal
// surface with its peak (0) at the origin. Useful for exercising the
// annealer's ability to leave local maxima.
func NegRastrigin(genes []float64) (float64, error) {
	total := 10 * float64(len(genes))
	for _, g := range genes {
		total += g*g - 10*math.Cos(2*math.Pi*g)
	}
	return -total, nil
}

var registry = map[string]evo.Objective{
	"sum":       Sum,
	"mean":      Mean,
	"sphere":    NegSphere,
	"rastrigin": NegRastrigin,
}

// Lookup returns the named objective or a descriptive error.
func Lookup(name string) (evo.Objective, error) {
	obj, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective %q (available: %v)", name, Names())
	}
	return obj, nil
}

// Names lists the registered objective names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
