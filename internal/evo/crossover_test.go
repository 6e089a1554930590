package evo

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPointCrossoverSingleCut(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	p1 := NewCandidate([]float64{1, 1, 1, 1})
	p2 := NewCandidate([]float64{9, 9, 9, 9})

	for i := 0; i < 100; i++ {
		child, err := NPointCrossover{Points: 1}.Cross(p1, p2, rng)
		require.NoError(t, err)
		require.Equal(t, 4, child.Len())

		// One cut: a prefix of 1s followed by a suffix of 9s, both non-empty.
		switches := 0
		for j := 1; j < child.Len(); j++ {
			if child.Genes[j] != child.Genes[j-1] {
				switches++
			}
		}
		assert.Equal(t, 1, switches)
		assert.Equal(t, 1.0, child.Genes[0], "segments must start from the first parent")
	}
}

func TestNPointCrossoverLengthAndAlternation(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	p1 := NewCandidate([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	p2 := NewCandidate([]float64{10, 20, 30, 40, 50, 60, 70, 80})

	for points := 1; points < 8; points++ {
		child, err := NPointCrossover{Points: points}.Cross(p1, p2, rng)
		require.NoError(t, err)
		require.Equal(t, 8, child.Len())
		for j, g := range child.Genes {
			assert.True(t, g == p1.Genes[j] || g == p2.Genes[j],
				"gene %d must come from a parent at the same position", j)
		}
	}
}

func TestNPointCrossoverValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	p1 := NewCandidate([]float64{1, 2, 3})
	p2 := NewCandidate([]float64{4, 5, 6})

	_, err := NPointCrossover{Points: 0}.Cross(p1, p2, rng)
	assert.ErrorIs(t, err, ErrParam)

	_, err = NPointCrossover{Points: 3}.Cross(p1, p2, rng)
	assert.ErrorIs(t, err, ErrParam)

	_, err = NPointCrossover{Points: 1}.Cross(p1, NewCandidate([]float64{1, 2}), rng)
	assert.ErrorIs(t, err, ErrParam)
}

func TestUniformCrossoverGenesFromParents(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	p1 := NewCandidate([]float64{1, 2, 3, 4, 5})
	p2 := NewCandidate([]float64{6, 7, 8, 9, 10})

	child, err := UniformCrossover{}.Cross(p1, p2, rng)
	require.NoError(t, err)
	require.Equal(t, 5, child.Len())
	for i, g := range child.Genes {
		assert.True(t, g == p1.Genes[i] || g == p2.Genes[i])
	}
	assert.False(t, child.Evaluated())
}

func TestArithmeticCrossoverBlend(t *testing.T) {
	rng := rand.New(rand.NewSource(47))
	p1 := NewCandidate([]float64{0, 10})
	p2 := NewCandidate([]float64{10, 0})

	child, err := ArithmeticCrossover{Alpha: 0.25}.Cross(p1, p2, rng)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, child.Genes[0], 1e-12)
	assert.InDelta(t, 2.5, child.Genes[1], 1e-12)

	_, err = ArithmeticCrossover{Alpha: 1.5}.Cross(p1, p2, rng)
	assert.ErrorIs(t, err, ErrParam)
}

func TestBlendCrossoverWithinWidenedInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	p1 := NewCandidate([]float64{0, 4})
	p2 := NewCandidate([]float64{10, 2})
	alpha := 0.5

	for i := 0; i < 100; i++ {
		child, err := BlendCrossover{Alpha: alpha}.Cross(p1, p2, rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, child.Genes[0], -5.0)
		assert.LessOrEqual(t, child.Genes[0], 15.0)
		assert.GreaterOrEqual(t, child.Genes[1], 1.0)
		assert.LessOrEqual(t, child.Genes[1], 5.0)
	}

	_, err := BlendCrossover{Alpha: -0.1}.Cross(p1, p2, rng)
	assert.ErrorIs(t, err, ErrParam)
}

func TestCutSpliceCrossoverVariableLength(t *testing.T) {
	rng := rand.New(rand.NewSource(59))
	p1 := NewCandidate([]float64{1, 1, 1})
	p2 := NewCandidate([]float64{9, 9, 9, 9, 9})

	for i := 0; i < 100; i++ {
		child, err := CutSpliceCrossover{}.Cross(p1, p2, rng)
		require.NoError(t, err)
		// Prefix of 1s, suffix of 9s; length in [1, len1+len2).
		assert.GreaterOrEqual(t, child.Len(), 1)
		assert.LessOrEqual(t, child.Len(), 7)
		seenNine := false
		for _, g := range child.Genes {
			if g == 9 {
				seenNine = true
			} else {
				assert.False(t, seenNine, "prefix genes must precede suffix genes")
			}
		}
	}

	_, err := CutSpliceCrossover{}.Cross(NewCandidate(nil), p2, rng)
	assert.ErrorIs(t, err, ErrParam)
}

func TestOrderCrossoverPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	base := []float64{1, 2, 3, 4, 5, 6, 7}
	p1 := NewCandidate(base)
	shuffled := append([]float64(nil), base...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	p2 := NewCandidate(shuffled)

	for i := 0; i < 100; i++ {
		child, err := OrderCrossover{}.Cross(p1, p2, rng)
		require.NoError(t, err)
		require.Equal(t, len(base), child.Len())

		got := append([]float64(nil), child.Genes...)
		sort.Float64s(got)
		assert.Equal(t, base, got, "offspring must be a permutation of the parents' genes")
	}
}

func TestOrderCrossoverDuplicateGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(67))
	// Shared multiset with repeats: duplicates must be consumed by count.
	p1 := NewCandidate([]float64{1, 1, 2, 3})
	p2 := NewCandidate([]float64{3, 1, 2, 1})

	for i := 0; i < 100; i++ {
		child, err := OrderCrossover{}.Cross(p1, p2, rng)
		require.NoError(t, err)

		got := append([]float64(nil), child.Genes...)
		sort.Float64s(got)
		assert.Equal(t, []float64{1, 1, 2, 3}, got)
	}
}

func TestOrderCrossoverValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(67))

	_, err := OrderCrossover{}.Cross(NewCandidate([]float64{1}), NewCandidate([]float64{1}), rng)
	assert.ErrorIs(t, err, ErrParam)

	_, err = OrderCrossover{}.Cross(NewCandidate([]float64{1, 2}), NewCandidate([]float64{1}), rng)
	assert.ErrorIs(t, err, ErrParam)
}
