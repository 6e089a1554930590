package evo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainValidate(t *testing.T) {
	assert.NoError(t, Domain{Min: 0, Max: 1}.Validate())
	assert.Error(t, Domain{Min: 1, Max: 1}.Validate())
	assert.Error(t, Domain{Min: 2, Max: 1}.Validate())
	assert.Error(t, Domain{Min: math.Inf(-1), Max: 1}.Validate())
	assert.Error(t, Domain{Min: 0, Max: math.NaN()}.Validate())
}

func TestDomainValidateIntegerNeedsWholeNumber(t *testing.T) {
	// An integer domain whose bounds bracket no whole value has nothing to
	// sample and must be rejected up front.
	assert.ErrorIs(t, Domain{Min: 0.2, Max: 0.8, Integer: true}.Validate(), ErrParam)
	assert.ErrorIs(t, Domain{Min: -0.9, Max: -0.1, Integer: true}.Validate(), ErrParam)

	// Fractional bounds are fine as long as a whole value lies between them.
	assert.NoError(t, Domain{Min: 0.5, Max: 1.5, Integer: true}.Validate())
	assert.NoError(t, Domain{Min: -0.5, Max: 0.3, Integer: true}.Validate())
	assert.NoError(t, Domain{Min: 2, Max: 3, Integer: true}.Validate())

	// Real domains with the same bounds stay valid.
	assert.NoError(t, Domain{Min: 0.2, Max: 0.8}.Validate())
}

func TestDomainSampleIntegerFractionalBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	domain := Domain{Min: 0.5, Max: 2.5, Integer: true}
	if err := domain.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	for i := 0; i < 200; i++ {
		v := domain.Sample(rng)
		assert.Contains(t, []float64{1, 2}, v)
	}
}

func TestDomainSampleIntegerInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	domain := Domain{Min: 0, Max: 2, Integer: true}

	seen := map[float64]bool{}
	for i := 0; i < 200; i++ {
		v := domain.Sample(rng)
		seen[v] = true
		assert.Contains(t, []float64{0, 1, 2}, v)
	}
	// Both endpoints are reachable
	assert.True(t, seen[0])
	assert.True(t, seen[2])
}

func TestDomainSampleReal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	domain := Domain{Min: -1.5, Max: 2.5}

	for i := 0; i < 100; i++ {
		v := domain.Sample(rng)
		assert.GreaterOrEqual(t, v, -1.5)
		assert.Less(t, v, 2.5)
	}
}

func TestDomainClamp(t *testing.T) {
	domain := Domain{Min: 0, Max: 10}
	assert.Equal(t, 0.0, domain.Clamp(-5))
	assert.Equal(t, 10.0, domain.Clamp(15))
	assert.Equal(t, 5.0, domain.Clamp(5))
}
