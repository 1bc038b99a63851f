package cst

import (
	"fmt"
	"math"
)

// CosineStations generates n chord stations on [0,1] with half-cosine
// clustering: density is biased toward both the leading and trailing
// edges, where airfoil curvature concentrates.
//
// Construction:
//
//	θ_i = π + i·π/(n−1),  i = 0..n−1   (uniform sweep π → 2π)
//	x_i = (cos θ_i + 1) / 2
//
// Guarantees:
//
//   - x_0 == 0 and x_{n−1} == 1 exactly (endpoint-exact).
//   - Strictly increasing (cos is strictly increasing on [π, 2π]).
//
// Returns ErrTooFewStations for n < 2.
//
// Complexity: O(n) time, O(n) memory.
func CosineStations(n int) ([]float64, error) {
	// Validate: a chord needs at least its two endpoints.
	if n < 2 {
		return nil, fmt.Errorf("%w: need n >= 2, got %d", ErrTooFewStations, n)
	}

	stations := make([]float64, n)
	step := math.Pi / float64(n-1) // uniform θ increment over [π, 2π]
	for i := 0; i < n; i++ {
		theta := math.Pi + float64(i)*step
		stations[i] = (math.Cos(theta) + 1) / 2
	}

	// Pin the endpoints: cos(π) and cos(2π) are exact in theory, but the
	// accumulated θ rounding may leave residue on the order of 1e-17.
	stations[0] = 0
	stations[n-1] = 1

	return stations, nil
}

// validateStations checks that every station is finite and within [0,1].
// Shared by Basis, DerivativeBasis, Fit and Evaluate.
func validateStations(stations []float64) error {
	if len(stations) == 0 {
		return ErrNoStations
	}
	var x float64
	for _, x = range stations {
		if math.IsNaN(x) || x < 0 || x > 1 {
			return fmt.Errorf("%w: got %v", ErrStationRange, x)
		}
	}

	return nil
}
