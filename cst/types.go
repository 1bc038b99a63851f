// Package cst defines core types, configuration options and sentinel
// errors for the Class-Shape-Transformation (CST) airfoil representation.
//
// A CST surface is the product of a "class" function x^n1·(1−x)^n2 and a
// Bernstein-polynomial "shape" function of a given degree, plus a linear
// trailing-edge thickness ramp:
//
//	y(x) = Σ_r C(deg,r)·a_r·x^(n1+r)·(1−x)^(deg+n2−r) ± x·te
//
// with x the normalized chord station in [0,1], a_r the shape weights,
// and te the trailing-edge half-thickness (added on the upper surface,
// subtracted on the lower).
//
// Shape exponents:
//
//	– N1 = 0.5 (default) imposes a round leading edge (infinite slope at x=0).
//	– N2 = 1.0 (default) imposes a sharp, closure-friendly trailing edge.
//
// Errors (sentinel):
//
//	– ErrBadDegree      if Degree < 1.
//	– ErrBadExponent    if N1 < 0 or N2 < 0.
//	– ErrNoStations     if the station slice is empty.
//	– ErrTooFewStations if an operation needs more stations than provided.
//	– ErrStationRange   if any station lies outside [0,1] or is NaN.
//	– ErrPointCount     if a surface loop does not hold 2·n−1 ordinates.
//	– ErrBadSurface     if the Surface selector is unknown.
//	– ErrNilCoefficients / ErrDegreeMismatch on malformed Coefficients.
//	– ErrSingularBasis  if the SVD factorization itself fails (pathological
//	  input such as non-finite basis entries); rank deficiency alone never
//	  errors — the solver returns the minimum-norm solution.
package cst

import "errors"

// Sentinel errors returned by the cst package.
var (
	// ErrBadDegree indicates a non-positive Bernstein degree.
	ErrBadDegree = errors.New("cst: degree must be >= 1")

	// ErrBadExponent indicates a negative class exponent N1 or N2.
	ErrBadExponent = errors.New("cst: class exponents N1, N2 must be non-negative")

	// ErrNoStations indicates an empty chord-station slice.
	ErrNoStations = errors.New("cst: station set must be non-empty")

	// ErrTooFewStations indicates the operation requires more stations
	// than were supplied (e.g. derivative matrices need >= 3 stations,
	// since only interior stations are differentiable).
	ErrTooFewStations = errors.New("cst: too few stations for this operation")

	// ErrStationRange indicates a station outside [0,1] or NaN.
	// Fractional powers of negative numbers are undefined in the reals,
	// so out-of-range stations would silently poison the basis with NaN.
	ErrStationRange = errors.New("cst: stations must lie within [0,1]")

	// ErrPointCount indicates a surface loop whose length is not 2·n−1
	// for n chord stations (upper TE→LE→lower TE with a shared LE point).
	ErrPointCount = errors.New("cst: surface loop must hold 2*n-1 ordinates")

	// ErrBadSurface indicates an unknown Surface selector value.
	ErrBadSurface = errors.New("cst: unknown surface selector")

	// ErrNilCoefficients indicates a nil *Coefficients argument.
	ErrNilCoefficients = errors.New("cst: coefficients must be non-nil")

	// ErrDegreeMismatch indicates a coefficient vector whose length does
	// not equal Degree+1.
	ErrDegreeMismatch = errors.New("cst: coefficient length must equal degree+1")

	// ErrSingularBasis indicates that the SVD factorization of the basis
	// failed outright. This is distinct from rank deficiency, which is
	// handled by returning the minimum-norm least-squares solution.
	ErrSingularBasis = errors.New("cst: basis factorization failed")
)

// Surface selects which side(s) of the airfoil a fit should solve for.
//
// The fitting math is identical for both sides; the selector only controls
// how many least-squares solves run and which Coefficients fields are set.
type Surface int

const (
	// Both fits the upper and lower surfaces (two solves, both fields set).
	Both Surface = iota

	// Upper fits the upper surface only (Coefficients.Lower stays nil).
	Upper

	// Lower fits the lower surface only (Coefficients.Upper stays nil).
	Lower
)

// String returns a human-readable selector name, for error context.
func (s Surface) String() string {
	switch s {
	case Both:
		return "Both"
	case Upper:
		return "Upper"
	case Lower:
		return "Lower"
	default:
		return "Surface(?)"
	}
}

// Coefficients holds the result of a CST fit.
//
// Upper and Lower are the Bernstein shape weights (length Degree+1) for
// the respective surface; a surface not requested by the fit stays nil.
// TE is the trailing-edge half-thickness: half the gap between the upper
// and lower trailing-edge ordinates, subtracted as a linear ramp before
// the fit and re-added (sign-flipped for the lower surface) on evaluation.
type Coefficients struct {
	Upper []float64 // upper-surface shape weights, or nil
	Lower []float64 // lower-surface shape weights, or nil
	TE    float64   // trailing-edge half-thickness
}

// Options configures basis construction and fitting.
//
// Degree – Bernstein polynomial degree (columns = Degree+1). Default 12.
// N1     – leading-edge class exponent. Default 0.5 (round nose).
// N2     – trailing-edge class exponent. Default 1.0 (sharp closure).
type Options struct {
	Degree int     // Bernstein degree of the shape function
	N1     float64 // leading-edge class exponent
	N2     float64 // trailing-edge class exponent
}

// Option represents a functional option for configuring CST operations.
type Option func(*Options)

// WithDegree sets the Bernstein degree of the shape function.
// Values < 1 are rejected later by validation (ErrBadDegree).
func WithDegree(degree int) Option {
	return func(o *Options) {
		o.Degree = degree
	}
}

// WithN1 sets the leading-edge class exponent.
// Negative values are rejected later by validation (ErrBadExponent).
func WithN1(n1 float64) Option {
	return func(o *Options) {
		o.N1 = n1
	}
}

// WithN2 sets the trailing-edge class exponent.
// Negative values are rejected later by validation (ErrBadExponent).
func WithN2(n2 float64) Option {
	return func(o *Options) {
		o.N2 = n2
	}
}

// DefaultOptions returns an Options struct initialized with the canonical
// airfoil defaults. Use this as a starting point for further overrides.
//
// Defaults:
//   - Degree: 12  (13 shape weights per surface)
//   - N1:     0.5 (round leading edge)
//   - N2:     1.0 (sharp trailing edge)
func DefaultOptions() Options {
	return Options{
		Degree: 12,
		N1:     0.5,
		N2:     1.0,
	}
}

// buildOptions folds functional options over DefaultOptions and validates
// the result. Every exported entry point goes through this single gate.
func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts { // apply each functional option
		opt(&cfg)
	}
	if cfg.Degree < 1 {
		return cfg, ErrBadDegree
	}
	if cfg.N1 < 0 || cfg.N2 < 0 {
		return cfg, ErrBadExponent
	}

	return cfg, nil
}
