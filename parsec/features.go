// Package parsec - the PARSEC-N15 extraction pipeline.
//
// Extract turns one ordered airfoil point cloud into the 15-feature
// descriptor. The stages run in a fixed order, each with a precise
// contract; see the step comments in Extract.
//
// Input convention (shared with package cst):
//
//	index 0 .. n−1      upper surface, trailing edge → leading edge
//	index n−1           leading edge (shared midpoint)
//	index n−1 .. 2n−2   lower surface, leading edge → trailing edge
//
// with upper and lower surfaces sampled at mirrored x stations — a hard
// precondition of the CST fitting formulas, validated up front.
package parsec

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/aerofoil/cst"
)

// mirrorTol is the absolute tolerance for the mirrored-grid precondition.
// Grids generated by one cosine sweep match exactly; the tolerance only
// absorbs decimal-formatting noise from coordinate files.
const mirrorTol = 1e-9

// Extract computes the PARSEC-N15 features of one airfoil sample.
//
// Preconditions and validation (in order):
//  1. Options valid (ErrBadPointCount on PointsPerSurface < 5).
//  2. len(points) == 2·n−1 (ErrPointCount).
//  3. Upper/lower x grids mirrored within 1e−9 (ErrAsymmetricGrid).
//  4. First two raw points not vertically aligned (ErrVerticalLE).
//
// Pipeline, in order:
//
//	 1. Slope angle of the first raw segment, in degrees (the loop starts
//	    at the upper trailing edge, so this is the raw TE slope).
//	 2. CST fit at the configured degree on the reversed upper-half x
//	    coordinates (leading→trailing station order).
//	 3. Dense reconstruction of both surfaces on the uniform GridLen-point
//	    grid (step GridStep, endpoints inclusive).
//	 4. Thickness samples at 4%, 25% and 60% chord on each surface.
//	 5. Per-surface extrema: upper maximum, lower minimum, with stations.
//	 6. Lower-surface camber proxy: the lower maximum (closest approach to
//	    the chord line), distinct from the lower minimum of step 5.
//	 7. Leading-edge osculating circle through the 5 raw points centered
//	    on the LE midpoint, seeded at (0.0025, 0, σ) where σ is the
//	    population standard deviation of the window coordinates.
//	    Non-convergence is soft: best iterate + CircleConverged=false.
//
// The result is immutable by convention: Extract allocates a fresh
// Features per call and never retains the input.
//
// Complexity: dominated by the dense reconstruction, O(GridLen·deg).
func Extract(points [][2]float64, opts ...Option) (*Features, error) {
	// 1) Options.
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	// 2) Shape.
	n := cfg.PointsPerSurface
	if len(points) != 2*n-1 {
		return nil, fmt.Errorf("%w: got %d points for n=%d (want %d)",
			ErrPointCount, len(points), n, 2*n-1)
	}

	// 3) Mirrored grids: x[n−1−j] must equal x[n−1+j].
	for j := 1; j < n; j++ {
		if math.Abs(points[n-1-j][0]-points[n-1+j][0]) > mirrorTol {
			return nil, fmt.Errorf("%w: station %d differs by %g",
				ErrAsymmetricGrid, j, points[n-1-j][0]-points[n-1+j][0])
		}
	}

	// 4) Slope angle of the first raw segment.
	dx := points[0][0] - points[1][0]
	if dx == 0 {
		return nil, ErrVerticalLE
	}
	angle := math.Atan((points[0][1]-points[1][1])/dx) * 180 / math.Pi

	// Stations: reversed upper-half x coordinates, leading→trailing.
	stations := make([]float64, n)
	ys := make([]float64, 2*n-1)
	for i := 0; i < n; i++ {
		stations[i] = points[n-1-i][0]
	}
	for i, p := range points {
		ys[i] = p[1]
	}

	// CST fit on the raw stations.
	coeffs, err := cst.Fit(stations, ys, cst.Both, cst.WithDegree(cfg.Degree))
	if err != nil {
		return nil, err
	}

	// Dense reconstruction on the uniform grid.
	grid := make([]float64, GridLen)
	for i := range grid {
		grid[i] = float64(i) / float64(GridLen-1)
	}
	yu, yl, err := cst.Evaluate(coeffs, grid, cst.WithDegree(cfg.Degree))
	if err != nil {
		return nil, err
	}

	// Extrema and camber proxy.
	iu := floats.MaxIdx(yu)
	il := floats.MinIdx(yl)
	ir := floats.MaxIdx(yl)

	// Leading-edge circle through the raw window centered on the LE point.
	window := points[n-3 : n+2]
	flat := make([]float64, 0, 2*circleWindow)
	for _, p := range window {
		flat = append(flat, p[0])
	}
	for _, p := range window {
		flat = append(flat, p[1])
	}
	sigma, err := stats.StandardDeviation(flat) // population estimator
	if err != nil {
		return nil, fmt.Errorf("parsec: circle seed: %w", err)
	}
	circle, converged, err := FitCircle(window, Circle{X: 0.0025, Y: 0, R: sigma}, cfg.MaxCircleIters)
	if err != nil {
		return nil, err
	}

	return &Features{
		LERadius:        circle.R,
		T4Upper:         yu[gridIndex(chordT4)],
		T4Lower:         yl[gridIndex(chordT4)],
		XUpMax:          grid[iu],
		YUpMax:          yu[iu],
		XLoMax:          grid[il],
		YLoMax:          yl[il],
		T25Upper:        yu[gridIndex(chordT25)],
		T25Lower:        yl[gridIndex(chordT25)],
		LEAngleDeg:      angle,
		TEHalfThickness: coeffs.TE,
		XCamber:         grid[ir],
		YCamber:         yl[ir],
		T60Upper:        yu[gridIndex(chordT60)],
		T60Lower:        yl[gridIndex(chordT60)],
		CircleConverged: converged,
	}, nil
}
