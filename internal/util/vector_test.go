package util

import (
	"math"
	"testing"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	v := []float32{1, 2, 3}

	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected cosine 1.0 for identical vectors, got %f", got)
	}
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}

	got := Cosine(a, b)
	if math.Abs(got) > 1e-9 {
		t.Errorf("Expected cosine 0.0 for orthogonal vectors, got %f", got)
	}
}

func TestCosine_MismatchedLengths(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Expected 0 for mismatched lengths, got %f", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("Expected 0 for empty vectors, got %f", got)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Expected 0 against zero vector, got %f", got)
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Errorf("Expected unit length after Normalize, got %f", math.Sqrt(norm))
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("Expected [0.6 0.8], got %v", v)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := []float32{0, 0}
	got := Normalize(v)

	if got[0] != 0 || got[1] != 0 {
		t.Errorf("Expected zero vector unchanged, got %v", got)
	}
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.12345, 0.123},
		{0.9996, 1.0},
		{7.0 / 6.0, 1.167},
		{0, 0},
	}

	for _, c := range cases {
		if got := Round3(c.in); got != c.want {
			t.Errorf("Round3(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
