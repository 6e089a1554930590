// Package config defines the YAML run specification shared by the CLI and
// the HTTP server, and builds core drivers and operators from it.
package config

// RunSpec is the top-level run specification. The same structure is accepted
// as a YAML file by the CLI and as a JSON body by the server's job API.
type RunSpec struct {
	Objective string     `yaml:"objective" json:"objective"`
	Genes     int        `yaml:"genes" json:"genes"`
	Seed      int64      `yaml:"seed" json:"seed"`
	Domain    DomainSpec `yaml:"domain" json:"domain"`
	Search    SearchSpec `yaml:"search" json:"search"`
	GA        *GASpec    `yaml:"ga,omitempty" json:"ga,omitempty"`
}

// DomainSpec describes the gene value domain.
type DomainSpec struct {
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Integer bool    `yaml:"integer" json:"integer"`
}

// SearchSpec selects and parameterizes a local-search driver.
type SearchSpec struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"` // hill, anneal, tabu

	MaxIterations int `yaml:"max_iterations" json:"maxIterations"`

	// Annealer parameters.
	InitialTemperature float64 `yaml:"initial_temperature" json:"initialTemperature"`
	CoolingRate        float64 `yaml:"cooling_rate" json:"coolingRate"`
	MinTemperature     float64 `yaml:"min_temperature" json:"minTemperature"`

	// Tabu search parameters.
	TabuListSize     int `yaml:"tabu_list_size" json:"tabuListSize"`
	NeighborhoodSize int `yaml:"neighborhood_size" json:"neighborhoodSize"`
}

// GASpec parameterizes the generational-loop demo harness.
type GASpec struct {
	Population  int           `yaml:"population" json:"population"`
	Generations int           `yaml:"generations" json:"generations"`
	Selection   SelectionSpec `yaml:"selection" json:"selection"`
	Crossover   CrossoverSpec `yaml:"crossover" json:"crossover"`
	Mutation    MutationSpec  `yaml:"mutation" json:"mutation"`
}

// SelectionSpec selects and parameterizes a selection operator.
type SelectionSpec struct {
	Variant            string  `yaml:"variant" json:"variant"` // roulette, rank, tournament, sus, truncation, elitism
	TournamentSize     int     `yaml:"tournament_size,omitempty" json:"tournamentSize,omitempty"`
	TruncationFraction float64 `yaml:"truncation_fraction,omitempty" json:"truncationFraction,omitempty"`
	EliteFraction      float64 `yaml:"elite_fraction,omitempty" json:"eliteFraction,omitempty"`
}

// CrossoverSpec selects and parameterizes a crossover operator.
type CrossoverSpec struct {
	Variant string  `yaml:"variant" json:"variant"` // npoint, uniform, arithmetic, blend, cutsplice, order
	Points  int     `yaml:"points,omitempty" json:"points,omitempty"`
	Alpha   float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
}

// MutationSpec selects and parameterizes a mutation operator.
type MutationSpec struct {
	Variant              string  `yaml:"variant" json:"variant"` // uniform, multipoint, gaussian, boundary, swap, scramble, inversion, nonuniform, adaptive
	Probability          float64 `yaml:"probability,omitempty" json:"probability,omitempty"`
	Points               int     `yaml:"points,omitempty" json:"points,omitempty"`
	Mean                 float64 `yaml:"mean,omitempty" json:"mean,omitempty"`
	StdDev               float64 `yaml:"stddev,omitempty" json:"stddev,omitempty"`
	ImprovementThreshold float64 `yaml:"improvement_threshold,omitempty" json:"improvementThreshold,omitempty"`
}
