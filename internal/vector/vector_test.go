package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "zero vector yields zero",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "both zero vectors",
			a:        []float32{0, 0},
			b:        []float32{0, 0},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Cosine(tc.a, tc.b), 1e-9)
		})
	}
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2}
	scaled := []float32{0.6, -1.4, 0.4}
	assert.InDelta(t, 1.0, Cosine(a, scaled), 1e-6)
}

func TestCosine_NeverNaN(t *testing.T) {
	score := Cosine([]float32{0}, []float32{0})
	assert.False(t, score != score, "cosine must not return NaN")
}

func TestTopK_DescendingOrder(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{
		{0, 1},   // orthogonal
		{1, 0},   // identical
		{1, 1},   // in between
		{-1, 0},  // opposite
	}

	hits := TopK(query, candidates, 4)
	require.Len(t, hits, 4)
	assert.Equal(t, 1, hits[0].Index)
	assert.Equal(t, 2, hits[1].Index)
	assert.Equal(t, 0, hits[2].Index)
	assert.Equal(t, 3, hits[3].Index)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestTopK_TiesKeepInsertionOrder(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{
		{2, 0},
		{3, 0},
		{1, 0},
	}

	hits := TopK(query, candidates, 3)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{hits[0].Index, hits[1].Index, hits[2].Index}, []int{0, 1, 2})
}

func TestTopK_LimitsToK(t *testing.T) {
	query := []float32{1}
	candidates := [][]float32{{1}, {2}, {3}, {4}, {5}}

	hits := TopK(query, candidates, 2)
	assert.Len(t, hits, 2)
}

func TestTopK_KLargerThanCorpus(t *testing.T) {
	query := []float32{1}
	candidates := [][]float32{{1}, {2}}

	hits := TopK(query, candidates, 10)
	assert.Len(t, hits, 2)
}

func TestTopK_EmptyCorpus(t *testing.T) {
	hits := TopK([]float32{1}, nil, 5)
	assert.Empty(t, hits)
}
