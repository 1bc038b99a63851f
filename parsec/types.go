// Package parsec defines core types, configuration options and sentinel
// errors for PARSEC-N15 feature extraction.
//
// A PARSEC-N15 vector is a fixed-order set of 15 geometrically meaningful
// scalars describing one airfoil: leading-edge radius, thickness samples
// at 4%, 25% and 60% chord on each surface, per-surface extrema with
// their chord locations, the raw trailing-edge slope angle, the
// trailing-edge half-thickness, and a lower-surface camber proxy.
//
// Errors (sentinel):
//
//	– ErrBadPointCount  if PointsPerSurface < MinPointsPerSurface.
//	– ErrPointCount     if a sample does not hold 2·n−1 points.
//	– ErrAsymmetricGrid if upper/lower x grids are not mirrored.
//	– ErrVerticalLE     if the first two raw points share an x-coordinate.
//	– ErrCirclePoints   if the circle fit receives fewer than 3 points.
//	– ErrNoSamples      if a batch call receives an empty sample set.
package parsec

import "errors"

// Reconstruction-grid constants. The dense grid is uniform on [0,1] with
// step GridStep; chord fractions map to indices via gridIndex, so the
// classic magic numbers 400/2500/6000 are derived, not hard-coded.
const (
	// GridStep is the reconstruction-grid resolution (fraction of chord).
	GridStep = 1e-4

	// GridLen is the number of reconstruction stations on [0,1] inclusive.
	GridLen = 10001

	// DefaultPointsPerSurface is the canonical per-surface point count of
	// the input sampling convention (257-point closed loop).
	DefaultPointsPerSurface = 129

	// DefaultDegree is the Bernstein degree used by the internal CST fit.
	DefaultDegree = 12

	// DefaultMaxCircleIters caps the Nelder–Mead iterations of the
	// leading-edge circle fit.
	DefaultMaxCircleIters = 400

	// MinPointsPerSurface is the smallest per-surface count that still
	// leaves the 5-point leading-edge circle window inside the sample.
	MinPointsPerSurface = 5

	// circleWindow is the number of consecutive raw points straddling the
	// leading edge that feed the osculating-circle fit.
	circleWindow = 5
)

// Sampled chord fractions for the thickness features.
const (
	chordT4  = 0.04
	chordT25 = 0.25
	chordT60 = 0.60
)

// Sentinel errors returned by the parsec package.
var (
	// ErrBadPointCount indicates PointsPerSurface below MinPointsPerSurface.
	// The leading-edge circle window needs 5 raw points centered on the LE
	// midpoint; the behavior for smaller samples is undefined, so they are
	// rejected rather than mis-indexed.
	ErrBadPointCount = errors.New("parsec: PointsPerSurface must be >= 5")

	// ErrPointCount indicates a sample whose length is not 2·n−1.
	ErrPointCount = errors.New("parsec: sample must hold 2*n-1 points")

	// ErrAsymmetricGrid indicates upper/lower surfaces sampled at
	// different x stations; the fitting formulas assume mirrored grids.
	ErrAsymmetricGrid = errors.New("parsec: upper and lower x grids must mirror")

	// ErrVerticalLE indicates a vertical segment between the first two raw
	// points: the slope-angle denominator is zero and arctangent undefined.
	ErrVerticalLE = errors.New("parsec: first two points share an x coordinate")

	// ErrCirclePoints indicates too few points for a circle fit.
	ErrCirclePoints = errors.New("parsec: circle fit needs at least 3 points")

	// ErrNoSamples indicates an empty batch.
	ErrNoSamples = errors.New("parsec: batch must hold at least one sample")
)

// gridIndex maps a chord fraction to its reconstruction-grid index.
func gridIndex(fraction float64) int {
	return int(fraction/GridStep + 0.5)
}

// Circle is a circle in the airfoil plane, used by the leading-edge
// osculating-circle fit.
type Circle struct {
	X float64 // center abscissa
	Y float64 // center ordinate
	R float64 // radius
}

// Features is the PARSEC-N15 descriptor of one airfoil.
//
// CircleConverged is a fit-quality flag, not part of the 15-vector: the
// leading-edge circle fit is a local nonlinear optimization with no
// global-optimum guarantee, and a non-converged fit still yields the best
// iterate found. Callers must treat CircleConverged==false as a soft
// quality failure, never as an exact radius.
type Features struct {
	LERadius        float64 // rf:    leading-edge osculating-circle radius
	T4Upper         float64 // t4u:   upper ordinate at 4% chord
	T4Lower         float64 // t4l:   lower ordinate at 4% chord
	XUpMax          float64 // xumax: chord station of the upper maximum
	YUpMax          float64 // yumax: upper-surface maximum ordinate
	XLoMax          float64 // xlmax: chord station of the lower minimum
	YLoMax          float64 // ylmax: lower-surface minimum ordinate
	T25Upper        float64 // t25u:  upper ordinate at 25% chord
	T25Lower        float64 // t25l:  lower ordinate at 25% chord
	LEAngleDeg      float64 // angle: slope angle (degrees) of the first raw segment
	TEHalfThickness float64 // te:    trailing-edge half-thickness
	XCamber         float64 // xr:    chord station where the lower surface peaks
	YCamber         float64 // yr:    lower-surface maximum (camber proxy)
	T60Upper        float64 // t60u:  upper ordinate at 60% chord
	T60Lower        float64 // t60l:  lower ordinate at 60% chord

	CircleConverged bool // quality flag for LERadius
}

// Vector returns the features in the fixed N15 order:
//
//	[rf, t4u, t4l, xumax, yumax, xlmax, ylmax, t25u, t25l, angle, te, xr, yr, t60u, t60l]
//
// This ordering is the downstream-label contract; it never changes.
func (f *Features) Vector() [15]float64 {
	return [15]float64{
		f.LERadius,
		f.T4Upper,
		f.T4Lower,
		f.XUpMax,
		f.YUpMax,
		f.XLoMax,
		f.YLoMax,
		f.T25Upper,
		f.T25Lower,
		f.LEAngleDeg,
		f.TEHalfThickness,
		f.XCamber,
		f.YCamber,
		f.T60Upper,
		f.T60Lower,
	}
}

// Options configures feature extraction.
//
// PointsPerSurface – per-surface point count n of the input convention;
//
//	samples must hold exactly 2·n−1 points. Default 129.
//
// Degree           – Bernstein degree of the internal CST fit. Default 12.
// MaxCircleIters   – iteration cap for the LE circle fit. Default 400.
type Options struct {
	PointsPerSurface int
	Degree           int
	MaxCircleIters   int
}

// Option represents a functional option for configuring extraction.
type Option func(*Options)

// WithPointsPerSurface sets the per-surface point count of the input
// convention. Values below MinPointsPerSurface are rejected later by
// validation (ErrBadPointCount).
func WithPointsPerSurface(n int) Option {
	return func(o *Options) {
		o.PointsPerSurface = n
	}
}

// WithDegree sets the Bernstein degree of the internal CST fit.
func WithDegree(degree int) Option {
	return func(o *Options) {
		o.Degree = degree
	}
}

// WithMaxCircleIters caps the Nelder–Mead iterations of the circle fit.
func WithMaxCircleIters(iters int) Option {
	return func(o *Options) {
		o.MaxCircleIters = iters
	}
}

// DefaultOptions returns an Options struct initialized with the canonical
// 129-points-per-surface, degree-12 convention.
func DefaultOptions() Options {
	return Options{
		PointsPerSurface: DefaultPointsPerSurface,
		Degree:           DefaultDegree,
		MaxCircleIters:   DefaultMaxCircleIters,
	}
}

// buildOptions folds functional options over DefaultOptions and validates
// the result.
func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}
	if cfg.PointsPerSurface < MinPointsPerSurface {
		return cfg, ErrBadPointCount
	}
	if cfg.MaxCircleIters <= 0 {
		cfg.MaxCircleIters = DefaultMaxCircleIters
	}

	return cfg, nil
}
