package evo

import (
	"math"
	"math/rand"
)

// Domain describes the value range genes are drawn from. Integer domains
// sample whole values (inclusive of both bounds), real domains sample
// uniformly from [Min, Max).
type Domain struct {
	Min     float64
	Max     float64
	Integer bool
}

// Validate checks that the domain is usable.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) ||
		math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return &ParamError{Param: "domain", Reason: "bounds must be finite"}
	}
	if d.Min >= d.Max {
		return &ParamError{Param: "domain", Reason: "min must be less than max"}
	}
	if d.Integer && math.Floor(d.Max) < math.Ceil(d.Min) {
		return &ParamError{Param: "domain", Reason: "integer domain contains no whole number"}
	}
	return nil
}

// Sample draws a fresh gene value from the domain.
func (d Domain) Sample(rng *rand.Rand) float64 {
	if d.Integer {
		lo := int64(math.Ceil(d.Min))
		hi := int64(math.Floor(d.Max))
		return float64(lo + rng.Int63n(hi-lo+1))
	}
	return d.Min + rng.Float64()*(d.Max-d.Min)
}

// Clamp limits a value to the domain bounds.
func (d Domain) Clamp(v float64) float64 {
	return math.Max(d.Min, math.Min(d.Max, v))
}
