package util

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched or empty
// vectors score 0 rather than erroring: a missing embedding is treated as
// "no semantic signal", which is the degradation the pipeline expects.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize returns a unit-length copy of v. Zero vectors are returned as-is.
func Normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}

	inv := 1.0 / math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

// Round3 rounds to three decimal places, matching the precision reported
// for classification confidence.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
