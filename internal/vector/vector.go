// Package vector provides the similarity math for exact nearest
// neighbour retrieval. The corpus of a single reference set is small
// enough that a linear scan beats maintaining an approximate index.
package vector

import (
	"math"
	"sort"
)

// Cosine returns the cosine similarity of two vectors. A zero-norm
// vector yields 0.0, never NaN or an error. Vectors of different
// lengths are compared over their common prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Hit pairs a candidate index with its similarity score.
type Hit struct {
	// Index is the candidate's position in the scanned corpus.
	Index int

	// Score is the cosine similarity against the query.
	Score float64
}

// TopK scans candidates against the query and returns the k best hits in
// descending score order. Ties keep insertion order (stable sort); an
// empty corpus returns an empty slice.
func TopK(query []float32, candidates [][]float32, k int) []Hit {
	hits := make([]Hit, 0, len(candidates))
	for i, candidate := range candidates {
		hits = append(hits, Hit{Index: i, Score: Cosine(query, candidate)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k >= 0 && k < len(hits) {
		hits = hits[:k]
	}
	return hits
}
