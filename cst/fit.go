// Package cst - least-squares CST surface fitting and reconstruction.
//
// Fit recovers the Bernstein shape weights for one or both surfaces of a
// closed airfoil loop via an SVD least-squares solve; Evaluate rebuilds
// dense surface ordinates from fitted Coefficients on any station grid;
// SlopeCurvature assembles slope, second derivative and curvature on
// interior stations.
//
// Loop convention (shared with package parsec):
//
//	index 0 .. n−1      upper surface, trailing edge → leading edge
//	index n−1           leading edge (shared midpoint)
//	index n−1 .. 2n−2   lower surface, leading edge → trailing edge
//
// The trailing-edge half-thickness te = (yu[n−1] − yl[n−1])/2 is not a
// fitted quantity: it is read off the loop, subtracted from each surface
// as the linear ramp x·y_surface[last] before the solve, and re-added
// (sign-flipped on the lower surface) during evaluation.
package cst

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// lstsqRcond is the relative singular-value cutoff for the least-squares
// rank decision: singular values below lstsqRcond·σ_max are treated as
// zero and the minimum-norm solution is returned in their null space.
const lstsqRcond = 1e-15

// lstsqMinNorm solves min ‖A·x − b‖₂ via thin SVD, returning the
// minimum-norm solution when A is rank deficient. It never errors on
// rank deficiency; ErrSingularBasis is reserved for an outright
// factorization failure (non-finite entries and the like).
//
// Complexity: O(N·m²) time for an N×m basis.
func lstsqMinNorm(a *mat.Dense, b []float64) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrSingularBasis
	}

	// Effective rank: count singular values above the relative cutoff.
	values := svd.Values(nil)
	rank := 0
	if len(values) > 0 {
		tol := lstsqRcond * values[0]
		var sv float64
		for _, sv = range values {
			if sv > tol {
				rank++
			}
		}
	}

	_, cols := a.Dims()
	if rank == 0 {
		// A is numerically zero: the minimum-norm solution is the zero vector.
		return make([]float64, cols), nil
	}

	var x mat.VecDense
	svd.SolveVecTo(&x, mat.NewVecDense(len(b), b), rank)

	// Copy out of the receiver-owned backing slice.
	out := make([]float64, cols)
	copy(out, x.RawVector().Data)

	return out, nil
}

// splitLoop splits a closed loop y (length 2n−1) into station-ordered
// upper and lower halves. The upper half arrives trailing→leading and is
// reversed so both surfaces run leading→trailing, matching the stations.
func splitLoop(y []float64, n int) (yu, yl []float64) {
	yu = make([]float64, n)
	for i := 0; i < n; i++ {
		yu[i] = y[n-1-i] // reverse upper half: TE→LE becomes LE→TE
	}
	yl = y[n-1:] // lower half is already LE→TE

	return yu, yl
}

// Fit solves the CST least-squares problem for the selected surface(s).
//
// Inputs:
//
//   - stations: n chord stations, leading→trailing order, within [0,1].
//   - y:        closed loop of 2n−1 ordinates (see package doc for order).
//   - surface:  Both, Upper or Lower — one routine, selector-parameterized;
//     the math is identical per side, only the number of solves differs.
//
// Per selected surface s with station-ordered ordinates ys:
//
//	solve  A0·a ≈ ys − stations·ys[n−1]   (minimum ‖residual‖₂)
//
// where the subtracted term is the linear trailing-edge ramp. Rank
// deficiency is tolerated: the solver returns the minimum-norm solution
// and never errors for it; callers needing a quality signal should
// Evaluate the fit and inspect the residual themselves.
//
// Preconditions and validation (in order):
//  1. Options valid (ErrBadDegree, ErrBadExponent).
//  2. Stations non-empty, within [0,1], at least 2 (ErrNoStations,
//     ErrStationRange, ErrTooFewStations).
//  3. len(y) == 2·len(stations)−1 (ErrPointCount).
//  4. surface is a known selector (ErrBadSurface).
//
// Complexity: O(N·deg²) per solved surface (thin SVD of the N×(deg+1) basis).
func Fit(stations, y []float64, surface Surface, opts ...Option) (*Coefficients, error) {
	// 1) Options. Basis re-derives its own config from opts; the early
	// gate only fixes the validation order.
	if _, err := buildOptions(opts); err != nil {
		return nil, err
	}

	// 2) Stations.
	if err := validateStations(stations); err != nil {
		return nil, err
	}
	n := len(stations)
	if n < 2 {
		return nil, fmt.Errorf("%w: need n >= 2, got %d", ErrTooFewStations, n)
	}

	// 3) Loop length.
	if len(y) != 2*n-1 {
		return nil, fmt.Errorf("%w: got %d ordinates for %d stations (want %d)",
			ErrPointCount, len(y), n, 2*n-1)
	}

	// 4) Selector.
	if surface != Both && surface != Upper && surface != Lower {
		return nil, fmt.Errorf("%w: %d", ErrBadSurface, int(surface))
	}

	// Split the loop and read off the trailing-edge half-thickness.
	yu, yl := splitLoop(y, n)
	coeffs := &Coefficients{TE: (yu[n-1] - yl[n-1]) / 2}

	// One basis serves both solves.
	a0, err := Basis(stations, opts...)
	if err != nil {
		return nil, err
	}

	// solveSurface subtracts the TE ramp and runs the least-squares solve.
	solveSurface := func(ys []float64) ([]float64, error) {
		rhs := make([]float64, n)
		last := ys[n-1]
		for i := 0; i < n; i++ {
			rhs[i] = ys[i] - stations[i]*last
		}

		return lstsqMinNorm(a0, rhs)
	}

	if surface == Both || surface == Upper {
		if coeffs.Upper, err = solveSurface(yu); err != nil {
			return nil, err
		}
	}
	if surface == Both || surface == Lower {
		if coeffs.Lower, err = solveSurface(yl); err != nil {
			return nil, err
		}
	}

	return coeffs, nil
}

// Evaluate reconstructs surface ordinates from fitted Coefficients on an
// arbitrary station grid (typically far denser than the fitting grid):
//
//	yu = A0·Upper + stations·TE
//	yl = A0·Lower − stations·TE
//
// A nil coefficient slice skips that surface (its output stays nil), so
// Upper-only and Lower-only fits evaluate naturally.
//
// Returns ErrNilCoefficients, ErrDegreeMismatch, or the Basis validation
// errors.
//
// Complexity: O(N·deg) time.
func Evaluate(c *Coefficients, stations []float64, opts ...Option) (yu, yl []float64, err error) {
	if c == nil {
		return nil, nil, ErrNilCoefficients
	}

	var cfg Options
	if cfg, err = buildOptions(opts); err != nil {
		return nil, nil, err
	}
	if c.Upper != nil && len(c.Upper) != cfg.Degree+1 {
		return nil, nil, fmt.Errorf("%w: upper has %d weights, want %d",
			ErrDegreeMismatch, len(c.Upper), cfg.Degree+1)
	}
	if c.Lower != nil && len(c.Lower) != cfg.Degree+1 {
		return nil, nil, fmt.Errorf("%w: lower has %d weights, want %d",
			ErrDegreeMismatch, len(c.Lower), cfg.Degree+1)
	}

	var a0 *mat.Dense
	if a0, err = Basis(stations, opts...); err != nil {
		return nil, nil, err
	}

	// evalSurface computes A0·a + sign·stations·TE into a fresh slice.
	evalSurface := func(a []float64, sign float64) []float64 {
		var v mat.VecDense
		v.MulVec(a0, mat.NewVecDense(len(a), a))

		out := make([]float64, len(stations))
		copy(out, v.RawVector().Data)
		floats.AddScaled(out, sign*c.TE, stations) // out += sign·TE·x

		return out
	}

	if c.Upper != nil {
		yu = evalSurface(c.Upper, +1)
	}
	if c.Lower != nil {
		yl = evalSurface(c.Lower, -1)
	}

	return yu, yl, nil
}

// SlopeCurvature assembles the slope, second derivative and curvature of
// one CST surface on the interior stations stations[1 : len−1]:
//
//	y1[i] = (A1·a)[i] + 0.5·te          surface slope
//	y2[i] = (A2·a)[i]                   second derivative (ramp is linear)
//	k[i]  = (1 + y1[i]²)^{3/2} / y2[i]  signed curvature radius proxy
//
// Here te is the full trailing-edge gap (twice Coefficients.TE), so its
// ramp x·te/2 contributes 0.5·te to the slope and nothing to y2. Pass the
// upper weights with te, or the lower weights with −te, matching the sign
// convention of Evaluate. A zero y2 entry yields ±Inf in k — an
// inflection point, not an error.
//
// Returns ErrDegreeMismatch or the DerivativeBasis validation errors.
//
// Complexity: O(N·deg) time.
func SlopeCurvature(a []float64, te float64, stations []float64, opts ...Option) (y1, y2, k []float64, err error) {
	var cfg Options
	if cfg, err = buildOptions(opts); err != nil {
		return nil, nil, nil, err
	}
	if len(a) != cfg.Degree+1 {
		return nil, nil, nil, fmt.Errorf("%w: got %d weights, want %d",
			ErrDegreeMismatch, len(a), cfg.Degree+1)
	}

	var a1, a2 *mat.Dense
	if a1, a2, err = DerivativeBasis(stations, opts...); err != nil {
		return nil, nil, nil, err
	}

	av := mat.NewVecDense(len(a), a)
	var v1, v2 mat.VecDense
	v1.MulVec(a1, av)
	v2.MulVec(a2, av)

	m := len(stations) - 2
	y1 = make([]float64, m)
	y2 = make([]float64, m)
	k = make([]float64, m)
	copy(y1, v1.RawVector().Data)
	copy(y2, v2.RawVector().Data)

	var w float64
	for i := 0; i < m; i++ {
		y1[i] += 0.5 * te
		w = 1 + y1[i]*y1[i]
		k[i] = w * math.Sqrt(w) / y2[i] // (1+y1²)^{3/2} without math.Pow
	}

	return y1, y2, k, nil
}
