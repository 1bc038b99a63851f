// Package cst - CST basis matrix construction.
//
// Basis builds the N×(deg+1) matrix A0 whose column r holds the r-th
// Bernstein-weighted shape function evaluated at every chord station:
//
//	A0[i][r] = C(deg,r) · x_i^(n1+r) · (1−x_i)^(deg+n2−r)
//
// so that a surface evaluates as y = A0·a ± x·te (see Evaluate).
//
// DerivativeBasis builds the exact algebraic first and second derivative
// matrices of the same shape functions, evaluated on interior stations
// only: at x=0 and x=1 the fractional exponents n1−1, n1−2, n2−1, n2−2
// turn negative and the closed forms are singular.
//
// Design notes:
//
//   - Basis is a pure function of (stations, Options); it is deliberately
//     not tied to any fitting instance, so the same coefficients can be
//     re-evaluated on an arbitrarily dense reconstruction grid.
//   - Binomial weights come from a running product C(n,r) = C(n,r−1)·(n−r+1)/r,
//     keeping the closed-form derivation visible next to the formula it
//     weights; float64 holds C(n,⌊n/2⌋) exactly for every practical degree.
//
// Complexity: O(N·deg) time, O(N·deg) memory per matrix.
package cst

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// binomials returns [C(n,0), C(n,1), …, C(n,n)] via the running product.
// Exact in float64 up to n = 56 (C(56,28) < 2^53); airfoil degrees stay
// far below that.
func binomials(n int) []float64 {
	k := make([]float64, n+1)
	k[0] = 1
	for r := 1; r <= n; r++ {
		k[r] = k[r-1] * float64(n-r+1) / float64(r)
	}

	return k
}

// Basis constructs the CST basis matrix A0 for the given stations.
//
// Stage 1 (Validate): options via buildOptions, stations within [0,1].
// Stage 2 (Prepare):  binomial weights for the configured degree.
// Stage 3 (Execute):  fill A0 row by row.
//
// Every entry is finite for stations in [0,1] and n1,n2 ≥ 0: the only
// delicate spots are x=0 and x=1, where terms evaluate to 0^positive = 0
// (or 0^0 = 1 when an exponent cancels). Interior entries lie in [0,1]
// by Bernstein positivity, since the class factor x^n1·(1−x)^n2 ≤ 1.
//
// Returns ErrBadDegree, ErrBadExponent, ErrNoStations or ErrStationRange.
func Basis(stations []float64, opts ...Option) (*mat.Dense, error) {
	// 1) Build and validate Options.
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	// 2) Validate stations.
	if err = validateStations(stations); err != nil {
		return nil, err
	}

	// 3) Fill the matrix.
	n := cfg.Degree
	k := binomials(n)
	a0 := mat.NewDense(len(stations), n+1, nil)

	var (
		i, r int
		x    float64
	)
	for i, x = range stations {
		for r = 0; r <= n; r++ {
			a0.Set(i, r, k[r]*
				math.Pow(x, cfg.N1+float64(r))*
				math.Pow(1-x, float64(n)+cfg.N2-float64(r)))
		}
	}

	return a0, nil
}

// DerivativeBasis constructs the first- and second-derivative basis
// matrices A1, A2 on the interior stations stations[1 : len−1].
//
// With a = n1+r and b = deg+n2−r, the shape function k·x^a·(1−x)^b has
// the exact derivatives
//
//	d/dx:   k · x^(a−1)·(1−x)^(b−1) · (a·(1−x) − b·x)
//	d²/dx²: k · x^(a−2)·(1−x)^(b−2) ·
//	        (a(a−1)·(1−x)² − 2ab·x(1−x) + b(b−1)·x²)
//
// Callers assemble the full surface slope and curvature as
//
//	y1 = A1·a + 0.5·te        (te the full TE gap: the ramp x·te/2)
//	y2 = A2·a                 (the ramp is linear: zero second derivative)
//	K  = (1 + y1²)^{3/2} / y2
//
// see SlopeCurvature for the assembled form.
//
// Returns the same validation errors as Basis, plus ErrTooFewStations
// when fewer than 3 stations leave no interior to evaluate on.
//
// Complexity: O(N·deg) time per matrix.
func DerivativeBasis(stations []float64, opts ...Option) (a1, a2 *mat.Dense, err error) {
	// 1) Build and validate Options.
	var cfg Options
	if cfg, err = buildOptions(opts); err != nil {
		return nil, nil, err
	}

	// 2) Validate stations; interior must be non-empty.
	if err = validateStations(stations); err != nil {
		return nil, nil, err
	}
	if len(stations) < 3 {
		return nil, nil, ErrTooFewStations
	}
	interior := stations[1 : len(stations)-1]

	// 3) Fill both matrices in one pass.
	n := cfg.Degree
	k := binomials(n)
	a1 = mat.NewDense(len(interior), n+1, nil)
	a2 = mat.NewDense(len(interior), n+1, nil)

	var (
		i, r int
		x    float64
		a, b float64 // per-column exponents a = n1+r, b = n+n2−r
	)
	for i, x = range interior {
		for r = 0; r <= n; r++ {
			a = cfg.N1 + float64(r)
			b = float64(n) + cfg.N2 - float64(r)

			// First derivative: k·x^(a−1)·(1−x)^(b−1)·(a(1−x) − bx).
			a1.Set(i, r, k[r]*
				math.Pow(x, a-1)*
				math.Pow(1-x, b-1)*
				(a*(1-x)-b*x))

			// Second derivative: k·x^(a−2)·(1−x)^(b−2)·(a(a−1)(1−x)² − 2abx(1−x) + b(b−1)x²).
			a2.Set(i, r, k[r]*
				math.Pow(x, a-2)*
				math.Pow(1-x, b-2)*
				(a*(a-1)*(1-x)*(1-x)-2*a*b*x*(1-x)+b*(b-1)*x*x))
		}
	}

	return a1, a2, nil
}
