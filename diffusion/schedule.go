// Package diffusion - variance (β) schedule generators.
//
// A schedule is a slice of T noise variances β_t, each strictly within
// (0,1). Two generators are provided:
//
//   - LinearSchedule: β linearly interpolated between low and high —
//     the classic DDPM ramp. Callers typically rescale the endpoints by
//     1000/T so that total noise stays comparable across T.
//   - CosineSchedule: β derived from the squared-cosine ᾱ curve with
//     offset s=0.008 and a hard 0.999 ceiling per value. Not necessarily
//     monotone, but bounded by construction.
package diffusion

import "math"

// cosineScheduleOffset is the small offset s preventing β_0 from
// vanishing at t=0.
const cosineScheduleOffset = 0.008

// cosineBetaCeiling caps each cosine β to keep log(1−β) finite near t=T.
const cosineBetaCeiling = 0.999

// LinearSchedule returns T betas linearly spaced from low to high,
// endpoints inclusive (for T == 1, the single value is low).
//
// Validation: T ≥ 1 (ErrBadTimesteps); 0 < low ≤ high < 1 (ErrBadRange).
//
// Complexity: O(T).
func LinearSchedule(T int, low, high float64) ([]float64, error) {
	if T < 1 {
		return nil, ErrBadTimesteps
	}
	if low <= 0 || high >= 1 || low > high {
		return nil, ErrBadRange
	}

	betas := make([]float64, T)
	if T == 1 {
		betas[0] = low

		return betas, nil
	}

	step := (high - low) / float64(T-1)
	for t := 0; t < T; t++ {
		betas[t] = low + float64(t)*step
	}

	return betas, nil
}

// CosineSchedule returns T betas from the squared-cosine ᾱ curve:
//
//	f(t) = cos²( (t/T + s)/(1 + s) · π/2 )
//	α_t  = f(t)/f(0)
//	β_t  = min(1 − α_t/α_{t−1}, 0.999),  t = 1..T
//
// Every value lies strictly within (0, 0.999]: the cosine curve is
// strictly decreasing on the swept quarter-period, so 1 − α_t/α_{t−1}
// is strictly positive, and the ceiling clamps the blow-up near t=T.
// Monotonicity is NOT guaranteed and not required.
//
// Validation: T ≥ 1 (ErrBadTimesteps).
//
// Complexity: O(T).
func CosineSchedule(T int) ([]float64, error) {
	if T < 1 {
		return nil, ErrBadTimesteps
	}

	f := func(t int) float64 {
		c := math.Cos((float64(t)/float64(T) + cosineScheduleOffset) /
			(1 + cosineScheduleOffset) * math.Pi / 2)

		return c * c
	}

	f0 := f(0)
	betas := make([]float64, T)
	prev := f0 / f0 // α_0 = 1 by normalization
	for t := 1; t <= T; t++ {
		alpha := f(t) / f0
		betas[t-1] = math.Min(1-alpha/prev, cosineBetaCeiling)
		prev = alpha
	}

	return betas, nil
}

// validateBetas checks the (0,1) bound required by NewSampler.
func validateBetas(betas []float64) error {
	if len(betas) == 0 {
		return ErrBadSchedule
	}
	var b float64
	for _, b = range betas {
		if !(b > 0 && b < 1) { // also rejects NaN
			return ErrBadSchedule
		}
	}

	return nil
}
