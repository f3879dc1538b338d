package encoding

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths compare over the shorter prefix; if either vector has
// zero magnitude the similarity is 0.
func CosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	for i := n; i < len(a); i++ {
		normA += float64(a[i]) * float64(a[i])
	}
	for i := n; i < len(b); i++ {
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / math.Sqrt(normA*normB))
}
