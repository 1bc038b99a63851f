// Package diffusion - exponential moving average of model parameters.
//
// Diffusion sampling is markedly more stable against a slowly-moving
// average of the training parameters than against the live ones. EMA
// captures that policy as an explicit struct over caller-owned parameter
// slices: the live parameters, the shadow copy, the step counter and the
// warm-up/stride policy are all visible state — nothing is hidden inside
// the sampler.
//
// Update policy per training step:
//
//	step < Start          → shadow is hard-copied from live (warm-up)
//	step ≥ Start          → shadow = Decay·shadow + (1−Decay)·live
//	step % UpdateRate ≠ 0 → no-op (stride)
//
// Concurrency: Update mutates the shadow slice and the step counter and
// is NOT safe to call concurrently with itself or with a predictor that
// reads the shadow parameters. Sampling runs that only read parameters
// may proceed concurrently with each other.
package diffusion

// EMA maintains an exponential moving average of a parameter vector.
type EMA struct {
	// Decay is the shadow retention per blended update, typically 0.9999.
	Decay float64

	// Start is the step count before which updates hard-copy instead of
	// blending (the shadow tracks the live model exactly during warm-up).
	Start int

	// UpdateRate applies the update only every UpdateRate-th step.
	UpdateRate int

	step int // training steps seen so far
}

// NewEMA constructs an EMA policy.
//
// Validation: Decay strictly within (0,1) (ErrBadDecay); UpdateRate ≥ 1
// (ErrBadUpdateRate). Start may be 0 (blend from the first step).
func NewEMA(decay float64, start, updateRate int) (*EMA, error) {
	if !(decay > 0 && decay < 1) {
		return nil, ErrBadDecay
	}
	if updateRate < 1 {
		return nil, ErrBadUpdateRate
	}
	if start < 0 {
		start = 0
	}

	return &EMA{Decay: decay, Start: start, UpdateRate: updateRate}, nil
}

// Step returns the number of training steps recorded so far.
func (e *EMA) Step() int {
	return e.step
}

// Update records one training step and refreshes shadow from live
// according to the warm-up/stride policy. Both slices are caller-owned;
// shadow is mutated in place.
//
// Returns ErrShapeMismatch when the slices disagree in length.
//
// Complexity: O(len(live)) on applied updates, O(1) on strided no-ops.
func (e *EMA) Update(shadow, live []float64) error {
	if len(shadow) != len(live) {
		return ErrShapeMismatch
	}

	e.step++
	if e.step%e.UpdateRate != 0 {
		return nil
	}

	if e.step < e.Start {
		copy(shadow, live) // warm-up: track the live model exactly
		return nil
	}

	d := e.Decay
	for i := range shadow {
		shadow[i] = shadow[i]*d + (1-d)*live[i]
	}

	return nil
}
