package parsec_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/aerofoil/cst"
	"github.com/katalvlaran/aerofoil/parsec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naca0012Thickness is the closed-trailing-edge NACA0012 half-thickness
// polynomial (the -0.1036 variant, so yt(1) == 0).
func naca0012Thickness(x float64) float64 {
	return 0.6 * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x +
		0.2843*x*x*x - 0.1036*x*x*x*x)
}

// symmetricSample builds a 2n−1 point NACA0012-like loop on cosine
// stations: upper TE→LE, shared LE point, lower LE→TE, mirrored x grids.
func symmetricSample(t *testing.T, n int) [][2]float64 {
	t.Helper()

	stations, err := cst.CosineStations(n)
	require.NoError(t, err)

	points := make([][2]float64, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		points = append(points, [2]float64{stations[i], naca0012Thickness(stations[i])})
	}
	for j := 1; j < n; j++ {
		points = append(points, [2]float64{stations[j], -naca0012Thickness(stations[j])})
	}

	return points
}

// TestExtract_SymmetricAirfoil checks the zero-camber symmetry
// properties on a NACA0012-like 257-point sample.
func TestExtract_SymmetricAirfoil(t *testing.T) {
	points := symmetricSample(t, 129)

	f, err := parsec.Extract(points)
	require.NoError(t, err)

	// Mirrored thickness samples and a closed trailing edge.
	assert.InDelta(t, -f.T4Lower, f.T4Upper, 1e-9, "t4u ≈ −t4l")
	assert.InDelta(t, -f.T25Lower, f.T25Upper, 1e-9, "t25u ≈ −t25l")
	assert.InDelta(t, -f.T60Lower, f.T60Upper, 1e-9, "t60u ≈ −t60l")
	assert.InDelta(t, 0, f.TEHalfThickness, 1e-12, "te ≈ 0")

	// Extrema mirror each other.
	assert.InDelta(t, -f.YLoMax, f.YUpMax, 1e-9, "yumax ≈ −ylmax")
	assert.InDelta(t, f.XLoMax, f.XUpMax, 2e-4, "xumax ≈ xlmax")

	// NACA0012 maximum thickness: 6% per surface near 30% chord.
	assert.InDelta(t, 0.06, f.YUpMax, 2e-3)
	assert.InDelta(t, 0.30, f.XUpMax, 2e-2)

	// Camber proxy: the lower surface never rises above the chord line.
	assert.InDelta(t, 0, f.YCamber, 1e-4, "yr ≈ 0 for zero camber")

	// Raw trailing-edge slope of the closed NACA0012: atan(yt'(1)) ≈ −8.3°.
	assert.InDelta(t, -8.3, f.LEAngleDeg, 0.5)

	// Leading-edge radius: classic NACA value 1.1019·t² ≈ 0.0159.
	assert.True(t, f.CircleConverged, "LE circle fit should converge on clean data")
	assert.InDelta(t, 0.0159, f.LERadius, 5e-3)

	// Thickness at 4% chord should match the generator closely.
	assert.InDelta(t, naca0012Thickness(0.04), f.T4Upper, 1e-4)
}

// TestExtract_VectorOrder pins the immutable 15-element label order.
func TestExtract_VectorOrder(t *testing.T) {
	f := &parsec.Features{
		LERadius: 1, T4Upper: 2, T4Lower: 3, XUpMax: 4, YUpMax: 5,
		XLoMax: 6, YLoMax: 7, T25Upper: 8, T25Lower: 9, LEAngleDeg: 10,
		TEHalfThickness: 11, XCamber: 12, YCamber: 13, T60Upper: 14, T60Lower: 15,
	}

	want := [15]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	assert.Equal(t, want, f.Vector())
}

// TestExtract_PointCount rejects truncated samples up front.
func TestExtract_PointCount(t *testing.T) {
	points := symmetricSample(t, 129)

	_, err := parsec.Extract(points[:200])
	assert.ErrorIs(t, err, parsec.ErrPointCount)
}

// TestExtract_BadPointCount rejects per-surface counts below the
// 5-point circle window.
func TestExtract_BadPointCount(t *testing.T) {
	_, err := parsec.Extract(nil, parsec.WithPointsPerSurface(4))
	assert.ErrorIs(t, err, parsec.ErrBadPointCount)
}

// TestExtract_AsymmetricGrid rejects non-mirrored x stations.
func TestExtract_AsymmetricGrid(t *testing.T) {
	points := symmetricSample(t, 129)
	points[10][0] += 1e-3 // shift one upper station off its mirror

	_, err := parsec.Extract(points)
	assert.ErrorIs(t, err, parsec.ErrAsymmetricGrid)
}

// TestExtract_VerticalLE rejects a vertical first segment, where the
// slope-angle denominator vanishes. Both mirrored stations move so the
// mirror check still passes and the slope check is reached.
func TestExtract_VerticalLE(t *testing.T) {
	points := symmetricSample(t, 129)
	points[1][0] = points[0][0]
	points[len(points)-2][0] = points[0][0]

	_, err := parsec.Extract(points)
	assert.ErrorIs(t, err, parsec.ErrVerticalLE)
}

// TestExtract_SmallSurface runs the generalized convention at n=65,
// exercising the parameterized circle window away from the 129 default.
func TestExtract_SmallSurface(t *testing.T) {
	points := symmetricSample(t, 65)

	f, err := parsec.Extract(points, parsec.WithPointsPerSurface(65))
	require.NoError(t, err)

	assert.InDelta(t, -f.T25Lower, f.T25Upper, 1e-9)
	assert.InDelta(t, 0, f.TEHalfThickness, 1e-12)
}
