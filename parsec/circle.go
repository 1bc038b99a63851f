// Package parsec - leading-edge osculating-circle fit.
//
// FitCircle recovers the circle (xc, yc, r) minimizing the sum of squared
// deviations of point-to-center distances from r:
//
//	F(xc, yc, r) = Σ_i ( √((x_i−xc)² + (y_i−yc)²) − r )²
//
// The objective is smooth but non-convex; it is minimized with the
// derivative-free Nelder–Mead simplex, seeded by the caller. There is no
// global-optimum guarantee — the result is sensitive to the initial
// guess, and callers must honor the returned convergence flag.
package parsec

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// circleConvergeTol is the absolute function-value stagnation tolerance
// that declares the simplex converged.
const circleConvergeTol = 1e-14

// Initial-simplex perturbations: each non-zero coordinate of the guess
// is stepped by 5% of its own magnitude, zero coordinates by a small
// absolute step. A leading-edge window spans ~1e-3 chord, so the simplex
// must start at the guess's scale — a fixed-size simplex overshoots the
// whole basin and stagnates on a degenerate far-away circle that a
// stagnation-based converger then blesses.
const (
	simplexRelStep  = 0.05
	simplexZeroStep = 0.00025
)

// circleResidualFrac bounds the final objective accepted as a genuine
// fit, as a fraction of len(points)·diag² where diag is the bounding-box
// diagonal of the input window. An optimizer can stagnate (and so report
// convergence) on a circle whose residual is large at the window's own
// scale; such a minimum is a fit-quality failure, not a radius.
const circleResidualFrac = 1e-4

// FitCircle fits a circle to points by Nelder–Mead least squares.
//
// Inputs:
//
//   - points:   at least 3 (x,y) pairs (3 unknowns). ErrCirclePoints otherwise.
//   - guess:    initial simplex seed; quality matters, see package doc.
//   - maxIters: iteration cap; values <= 0 fall back to DefaultMaxCircleIters.
//
// The initial simplex is built around the guess with per-coordinate
// relative steps, so windows of any scale (full chord or a ~1e-3
// leading-edge neighborhood) start inside their own basin.
//
// Returns the best circle found and a convergence flag. The flag requires
// both optimizer convergence and a final residual that is small relative
// to the window extent; non-convergence (iteration cap hit, optimizer
// failure, or a degenerate stagnation point) is a soft error: the best
// iterate is still returned, flagged false, and err stays nil. err is
// reserved for invalid input.
//
// Complexity: O(maxIters · len(points)) objective evaluations.
func FitCircle(points [][2]float64, guess Circle, maxIters int) (Circle, bool, error) {
	// Validate: 3 unknowns need at least 3 points.
	if len(points) < 3 {
		return Circle{}, false, ErrCirclePoints
	}
	if maxIters <= 0 {
		maxIters = DefaultMaxCircleIters
	}

	// Objective: Σ (distance-to-center − r)².
	objective := func(p []float64) float64 {
		var sum, d float64
		var pt [2]float64
		for _, pt = range points {
			d = math.Hypot(pt[0]-p[0], pt[1]-p[1]) - p[2]
			sum += d * d
		}

		return sum
	}

	// Initial simplex at the guess's own scale (see constants above).
	x0 := []float64{guess.X, guess.Y, guess.R}
	vertices := make([][]float64, 0, len(x0)+1)
	vertices = append(vertices, x0)
	for i := range x0 {
		v := make([]float64, len(x0))
		copy(v, x0)
		if v[i] != 0 {
			v[i] *= 1 + simplexRelStep
		} else {
			v[i] = simplexZeroStep
		}
		vertices = append(vertices, v)
	}
	values := make([]float64, len(vertices))
	for i, v := range vertices {
		values[i] = objective(v)
	}

	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{
		MajorIterations: maxIters,
		Converger: &optimize.FunctionConverge{
			Absolute:   circleConvergeTol,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{
		InitialVertices: vertices,
		InitialValues:   values,
	})

	// Best iterate, whatever the termination reason.
	best := guess
	if result != nil && len(result.X) == 3 {
		best = Circle{X: result.X[0], Y: result.X[1], R: result.X[2]}
	}

	converged := err == nil && result != nil &&
		(result.Status == optimize.FunctionConvergence ||
			result.Status == optimize.MethodConverge ||
			result.Status == optimize.Success) &&
		result.F <= residualTol(points)

	return best, converged, nil
}

// residualTol is the largest final objective accepted as a genuine fit
// for this window: circleResidualFrac of len(points) times the squared
// bounding-box diagonal.
func residualTol(points [][2]float64) float64 {
	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	var pt [2]float64
	for _, pt = range points[1:] {
		minX = math.Min(minX, pt[0])
		maxX = math.Max(maxX, pt[0])
		minY = math.Min(minY, pt[1])
		maxY = math.Max(maxY, pt[1])
	}
	dx := maxX - minX
	dy := maxY - minY

	return circleResidualFrac * float64(len(points)) * (dx*dx + dy*dy)
}
