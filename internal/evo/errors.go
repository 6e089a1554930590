package evo

// ParamError reports an invalid operator or driver parameter. It is
// returned at construction or call time, before any stochastic work runs.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return "invalid parameter " + e.Param + ": " + e.Reason
}

func (e *ParamError) Is(target error) bool {
	_, ok := target.(*ParamError)
	return ok
}

// ErrParam can be matched with errors.Is to detect any parameter error.
var ErrParam = &ParamError{}

// FitnessError reports a degenerate population handed to a
// fitness-proportional selector.
type FitnessError struct {
	Selector string
	Total    float64
}

func (e *FitnessError) Error() string {
	return e.Selector + ": total fitness must be positive"
}

func (e *FitnessError) Is(target error) bool {
	_, ok := target.(*FitnessError)
	return ok
}

// ErrNonPositiveFitness is returned by roulette, rank, and SUS selection
// when the population's total fitness is zero or negative. Such input is
// undefined for cumulative-walk selection and is rejected outright.
var ErrNonPositiveFitness = &FitnessError{}

// DistinctParentError is returned when a selector that must produce two
// distinct parents exhausts its re-sampling budget, which happens when the
// candidate pool is value-identical.
type DistinctParentError struct {
	Selector string
}

func (e *DistinctParentError) Error() string {
	return e.Selector + ": could not select two distinct parents"
}

func (e *DistinctParentError) Is(target error) bool {
	_, ok := target.(*DistinctParentError)
	return ok
}

// ErrNoDistinctParent can be matched with errors.Is.
var ErrNoDistinctParent = &DistinctParentError{}
