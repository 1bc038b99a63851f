package cst_test

import (
	"testing"

	"github.com/katalvlaran/aerofoil/cst"
)

// benchmarkFit runs a joint fit on an n-station synthetic loop.
// It resets the timer after setup and fails on unexpected errors.
func benchmarkFit(b *testing.B, n, degree int) {
	stations, err := cst.CosineStations(n)
	if err != nil {
		b.Fatalf("CosineStations failed: %v", err)
	}

	// Synthetic loop: parabolic-ish thickness, small TE gap.
	loop := make([]float64, 2*n-1)
	for i := 0; i < n; i++ {
		x := stations[n-1-i]
		loop[i] = 0.3*x*(1-x) + 0.001*x // upper, TE→LE
	}
	for j := 1; j < n; j++ {
		x := stations[j]
		loop[n-1+j] = -0.3*x*(1-x) - 0.001*x // lower, LE→TE
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err = cst.Fit(stations, loop, cst.Both, cst.WithDegree(degree)); err != nil {
			b.Fatalf("Fit failed: %v", err)
		}
	}
}

// BenchmarkFit_129x12 benchmarks the canonical 129-station, degree-12 fit.
func BenchmarkFit_129x12(b *testing.B) {
	benchmarkFit(b, 129, 12)
}

// BenchmarkFit_257x12 benchmarks a denser 257-station fit.
func BenchmarkFit_257x12(b *testing.B) {
	benchmarkFit(b, 257, 12)
}

// BenchmarkBasis_Reconstruction benchmarks the dense 10001-point basis
// used by feature extraction.
func BenchmarkBasis_Reconstruction(b *testing.B) {
	grid := make([]float64, 10001)
	for i := range grid {
		grid[i] = float64(i) / 10000
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cst.Basis(grid); err != nil {
			b.Fatalf("Basis failed: %v", err)
		}
	}
}
