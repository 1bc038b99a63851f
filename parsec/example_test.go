package parsec_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/aerofoil/cst"
	"github.com/katalvlaran/aerofoil/parsec"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleExtract
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Extract PARSEC-N15 features from a symmetric NACA0012-like loop of
//	257 points (129 per surface, cosine-clustered, closed trailing edge).
//
// Use case:
//
//	Turning a coordinate file into reproducible scalar labels for a
//	downstream generative model.
//
// Complexity: dominated by the 10001-point dense reconstruction.
func ExampleExtract() {
	raw := func(x float64) float64 {
		return 0.6 * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x +
			0.2843*x*x*x - 0.1036*x*x*x*x)
	}
	// Close the trailing edge exactly so te comes out +0.
	thickness := func(x float64) float64 {
		return raw(x) - x*raw(1)
	}

	stations, _ := cst.CosineStations(129)
	points := make([][2]float64, 0, 257)
	for i := 128; i >= 0; i-- { // upper surface, TE → LE
		points = append(points, [2]float64{stations[i], thickness(stations[i])})
	}
	for j := 1; j < 129; j++ { // lower surface, LE → TE
		points = append(points, [2]float64{stations[j], -thickness(stations[j])})
	}

	features, err := parsec.Extract(points)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	vec := features.Vector()
	fmt.Printf("features=%d\n", len(vec))
	fmt.Printf("te=%.4f\n", features.TEHalfThickness)
	fmt.Printf("max thickness: x=%.1f y=%.3f\n", features.XUpMax, features.YUpMax)
	fmt.Printf("circle converged=%v\n", features.CircleConverged)
	// Output:
	// features=15
	// te=0.0000
	// max thickness: x=0.3 y=0.060
	// circle converged=true
}
