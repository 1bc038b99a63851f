// Package cst fits airfoil surfaces with the Class-Shape-Transformation
// parameterization: a Bernstein-polynomial shape function multiplied by a
// class function x^n1·(1−x)^n2, plus a linear trailing-edge thickness ramp.
//
// 🚀 What is CST?
//
//	CST represents a surface as y(x) = Σ C(deg,r)·a_r·x^(n1+r)·(1−x)^(deg+n2−r) ± x·te.
//	With n1=0.5, n2=1.0 this family spans round-nosed, sharp-tailed airfoils
//	with a handful of weights — ideal as a compact descriptor for:
//	  • Surface smoothing & re-sampling of noisy coordinate files
//	  • Shape optimization over a low-dimensional design vector
//	  • Feature extraction pipelines (see package parsec)
//	  • Conditioning labels for generative models (see package diffusion)
//
// ✨ Key features:
//   - basis construction decoupled from fitting: evaluate fitted weights
//     on any grid, from 65 fitting stations to a 10001-point reconstruction
//   - exact algebraic first/second derivative matrices (interior stations)
//   - SVD least squares: rank-deficiency returns the minimum-norm solution,
//     never an error
//   - one fit routine for Both/Upper/Lower via a Surface selector
//   - half-cosine station generator biasing density toward both edges
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/aerofoil/cst"
//
//	stations, _ := cst.CosineStations(129)
//	coeffs, err := cst.Fit(stations, loopY, cst.Both) // loopY: upper TE→LE→lower TE
//	if err != nil { ... }
//	grid := ...                                       // any [0,1] station set
//	yu, yl, err := cst.Evaluate(coeffs, grid)
//
// Numerical contract:
//
//   - All arithmetic is float64.
//   - Basis entries on interior stations lie in [0,1] (Bernstein positivity).
//   - Derivative matrices exclude the endpoints x=0, x=1, where fractional
//     class exponents make the closed forms singular.
//
// See examples in example_test.go.
package cst
