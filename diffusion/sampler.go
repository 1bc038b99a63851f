// Package diffusion - the discrete-time diffusion sampler.
//
// Sampler wraps a caller-supplied NoisePredictor with the exact
// arithmetic of a discrete-time denoising-diffusion model:
//
//	forward:  x_t = √ᾱ_t·x_0 + √(1−ᾱ_t)·ε                (PerturbX)
//	training: predict ε from (x_t, t, cond), L1/L2 loss    (Loss)
//	reverse:  full-T ancestral chain                       (Sample*)
//	          strided DDIM chain, η-parameterized          (SampleDDIM*)
//
// All schedule-derived tables are precomputed once at construction. The
// reverse process is a strictly sequential state-threading computation —
// each step consumes the previous state — so both the result-only and
// full-trajectory entry points drive one shared step engine with an
// observer hook instead of duplicating the loop.
//
// Concurrency: sampling reads the Sampler and the predictor parameters
// only; concurrent sampling runs are safe provided each run has its own
// *rand.Rand and the predictor's parameters are not being updated
// concurrently (see EMA).
package diffusion

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler is a discrete-time denoising-diffusion sampler around a
// noise-predicting model.
type Sampler struct {
	model NoisePredictor // live model
	ema   NoisePredictor // optional EMA shadow model (SetEMAModel)

	latentSize int
	channels   int
	loss       LossType

	T int // schedule length

	// Precomputed schedule tables, all length T and 0-based in t.
	betas                     []float64
	alphas                    []float64 // 1 − β_t
	alphasCumprod             []float64 // ᾱ_t = Π α_s
	sqrtAlphasCumprod         []float64 // √ᾱ_t
	sqrtOneMinusAlphasCumprod []float64 // √(1−ᾱ_t)
	reciprocalSqrtAlphas      []float64 // 1/√α_t
	removeNoiseCoeff          []float64 // β_t/√(1−ᾱ_t)
	sigma                     []float64 // √β_t
}

// NewSampler validates the schedule and precomputes every table.
//
// Preconditions and validation (in order):
//  1. model non-nil (ErrNilModel).
//  2. betas non-empty, each strictly within (0,1) (ErrBadSchedule).
//  3. Options valid (ErrShapeMismatch, ErrBadLossType).
//
// Complexity: O(T) time and memory.
func NewSampler(model NoisePredictor, betas []float64, opts ...Option) (*Sampler, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if err := validateBetas(betas); err != nil {
		return nil, err
	}
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	T := len(betas)
	s := &Sampler{
		model:                     model,
		latentSize:                cfg.LatentSize,
		channels:                  cfg.Channels,
		loss:                      cfg.Loss,
		T:                         T,
		betas:                     make([]float64, T),
		alphas:                    make([]float64, T),
		alphasCumprod:             make([]float64, T),
		sqrtAlphasCumprod:         make([]float64, T),
		sqrtOneMinusAlphasCumprod: make([]float64, T),
		reciprocalSqrtAlphas:      make([]float64, T),
		removeNoiseCoeff:          make([]float64, T),
		sigma:                     make([]float64, T),
	}
	copy(s.betas, betas)

	cumprod := 1.0
	for t := 0; t < T; t++ {
		s.alphas[t] = 1 - s.betas[t]
		cumprod *= s.alphas[t]
		s.alphasCumprod[t] = cumprod
		s.sqrtAlphasCumprod[t] = math.Sqrt(cumprod)
		s.sqrtOneMinusAlphasCumprod[t] = math.Sqrt(1 - cumprod)
		s.reciprocalSqrtAlphas[t] = math.Sqrt(1 / s.alphas[t])
		s.removeNoiseCoeff[t] = s.betas[t] / s.sqrtOneMinusAlphasCumprod[t]
		s.sigma[t] = math.Sqrt(s.betas[t])
	}

	return s, nil
}

// SetEMAModel registers the shadow predictor used by WithEMA sampling.
// Not safe to call concurrently with in-flight sampling runs.
func (s *Sampler) SetEMAModel(m NoisePredictor) {
	s.ema = m
}

// Timesteps returns the schedule length T.
func (s *Sampler) Timesteps() int {
	return s.T
}

// dim is the flattened per-row length.
func (s *Sampler) dim() int {
	return s.latentSize * s.channels
}

// validateBatch checks batch size, condition length and row shapes.
// cond may be nil (unconditioned); rows may be nil when the batch is
// generated internally.
func (s *Sampler) validateBatch(batch int, rows, cond [][]float64) error {
	if batch < 1 {
		return fmt.Errorf("%w: batch=%d", ErrBatchMismatch, batch)
	}
	if cond != nil && len(cond) != batch {
		return fmt.Errorf("%w: batch=%d cond=%d", ErrBatchMismatch, batch, len(cond))
	}
	if rows != nil {
		if len(rows) != batch {
			return fmt.Errorf("%w: batch=%d rows=%d", ErrBatchMismatch, batch, len(rows))
		}
		var row []float64
		for _, row = range rows {
			if len(row) != s.dim() {
				return fmt.Errorf("%w: row has %d values, want %d", ErrShapeMismatch, len(row), s.dim())
			}
		}
	}

	return nil
}

// predict dispatches to the live or EMA predictor and validates the
// returned shape, so downstream arithmetic can index freely.
func (s *Sampler) predict(x [][]float64, t []int, cond [][]float64, useEMA bool) ([][]float64, error) {
	model := s.model
	if useEMA {
		if s.ema == nil {
			return nil, ErrNoEMAModel
		}
		model = s.ema
	}

	pred, err := model(x, t, cond)
	if err != nil {
		return nil, fmt.Errorf("diffusion: predictor: %w", err)
	}
	if len(pred) != len(x) {
		return nil, fmt.Errorf("%w: predictor returned %d rows, want %d", ErrShapeMismatch, len(pred), len(x))
	}
	for i := range pred {
		if len(pred[i]) != s.dim() {
			return nil, fmt.Errorf("%w: predictor row %d has %d values, want %d",
				ErrShapeMismatch, i, len(pred[i]), s.dim())
		}
	}

	return pred, nil
}

// PerturbX draws one forward-process sample: √ᾱ_t·x0 + √(1−ᾱ_t)·noise.
//
// Returns ErrTimestepRange for t outside [0,T) and ErrShapeMismatch for
// mis-sized rows.
//
// Complexity: O(dim).
func (s *Sampler) PerturbX(x0 []float64, t int, noise []float64) ([]float64, error) {
	if t < 0 || t >= s.T {
		return nil, fmt.Errorf("%w: t=%d T=%d", ErrTimestepRange, t, s.T)
	}
	if len(x0) != s.dim() || len(noise) != s.dim() {
		return nil, fmt.Errorf("%w: got %d/%d values, want %d", ErrShapeMismatch, len(x0), len(noise), s.dim())
	}

	out := make([]float64, s.dim())
	s.perturbInto(out, x0, t, noise)

	return out, nil
}

// perturbInto is the unchecked kernel shared by PerturbX, Loss and the
// DDIM repaint path.
func (s *Sampler) perturbInto(dst, x0 []float64, t int, noise []float64) {
	a := s.sqrtAlphasCumprod[t]
	b := s.sqrtOneMinusAlphasCumprod[t]
	for j := range dst {
		dst[j] = a*x0[j] + b*noise[j]
	}
}

// Loss computes the noise-reconstruction training loss of one batch:
// each row is perturbed at an independently uniform timestep, the live
// model predicts the added noise, and the selected metric (L1 or L2)
// is averaged over every element.
//
// The loss always evaluates the live model; the EMA shadow exists for
// sampling stability, not for gradient estimation.
//
// Validation first: batch/cond/row shapes (ErrBatchMismatch,
// ErrShapeMismatch) before any computation.
//
// Complexity: O(batch·dim) plus one predictor call.
func (s *Sampler) Loss(x0, cond [][]float64, rng *rand.Rand) (float64, error) {
	if err := s.validateBatch(len(x0), x0, cond); err != nil {
		return 0, err
	}
	rng = orDefault(rng)

	batch := len(x0)
	ts := make([]int, batch)
	noise := make([][]float64, batch)
	perturbed := make([][]float64, batch)
	for i := 0; i < batch; i++ {
		ts[i] = rng.Intn(s.T)
		noise[i] = make([]float64, s.dim())
		normalFill(noise[i], rng)
		perturbed[i] = make([]float64, s.dim())
		s.perturbInto(perturbed[i], x0[i], ts[i], noise[i])
	}

	pred, err := s.predict(perturbed, ts, cond, false)
	if err != nil {
		return 0, err
	}

	var sum, d float64
	for i := 0; i < batch; i++ {
		for j := 0; j < s.dim(); j++ {
			d = pred[i][j] - noise[i][j]
			if s.loss == LossL1 {
				sum += math.Abs(d)
			} else {
				sum += d * d
			}
		}
	}

	return sum / float64(batch*s.dim()), nil
}

// cloneBatch deep-copies a batch, for trajectory observers.
func cloneBatch(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = make([]float64, len(x[i]))
		copy(out[i], x[i])
	}

	return out
}

// Sample runs the full-T ancestral reverse process from pure noise and
// returns the final batch.
//
// A nil rng falls back to the fixed default stream (reproducible runs).
// SampleOptions: WithEMA. Clip/η/repaint are DDIM-only and ignored here.
//
// Complexity: O(T·batch·dim) plus T predictor calls.
func (s *Sampler) Sample(batch int, cond [][]float64, rng *rand.Rand, opts ...SampleOption) ([][]float64, error) {
	return s.ancestral(batch, cond, rng, opts, nil)
}

// SampleSequence runs the ancestral reverse process and returns the full
// trajectory of T+1 states, initial noise first, final sample last.
// Use Sample when only the endpoint matters — the trajectory
// materializes T+1 full batches.
func (s *Sampler) SampleSequence(batch int, cond [][]float64, rng *rand.Rand, opts ...SampleOption) ([][][]float64, error) {
	trajectory := make([][][]float64, 0, s.T+1)
	observe := func(x [][]float64) {
		trajectory = append(trajectory, cloneBatch(x))
	}

	if _, err := s.ancestral(batch, cond, rng, opts, observe); err != nil {
		return nil, err
	}

	return trajectory, nil
}

// ancestral is the shared ancestral step engine. The observer, when
// non-nil, sees the initial noise and the state after every step.
func (s *Sampler) ancestral(batch int, cond [][]float64, rng *rand.Rand, opts []SampleOption, observe func([][]float64)) ([][]float64, error) {
	cfg := defaultSampleConfig()
	var opt SampleOption
	for _, opt = range opts {
		opt(&cfg)
	}

	if err := s.validateBatch(batch, nil, cond); err != nil {
		return nil, err
	}
	if cfg.useEMA && s.ema == nil {
		return nil, ErrNoEMAModel
	}
	rng = orDefault(rng)

	x := normalBatch(batch, s.dim(), rng)
	if observe != nil {
		observe(x)
	}

	ts := make([]int, batch)
	stepNoise := make([]float64, s.dim())
	for t := s.T - 1; t >= 0; t-- {
		for i := range ts {
			ts[i] = t
		}
		pred, err := s.predict(x, ts, cond, cfg.useEMA)
		if err != nil {
			return nil, err
		}

		// x ← (x − β_t/√(1−ᾱ_t)·ε̂) / √α_t, then add √β_t noise for t>0.
		c := s.removeNoiseCoeff[t]
		r := s.reciprocalSqrtAlphas[t]
		for i := 0; i < batch; i++ {
			row, p := x[i], pred[i]
			for j := range row {
				row[j] = (row[j] - c*p[j]) * r
			}
			if t > 0 {
				normalFill(stepNoise, rng)
				sg := s.sigma[t]
				for j := range row {
					row[j] += sg * stepNoise[j]
				}
			}
		}

		if observe != nil {
			observe(x)
		}
	}

	return x, nil
}

// alphaBar returns ᾱ at the DDIM subsequence convention: timesteps are
// shifted one past the fitted table (the "+1" of the strided sequence),
// so t indexes ᾱ_{t} with ᾱ_0 = 1 — the anchor that scales the final
// step straight onto the data manifold.
func (s *Sampler) alphaBar(t int) float64 {
	if t == 0 {
		return 1
	}

	return s.alphasCumprod[t-1]
}

// SampleDDIM runs the accelerated DDIM reverse process over a strided
// timestep subsequence and returns the final batch.
//
// The subsequence has stride T/steps, shifted by one:
//
//	seq  = [1, 1+c, 1+2c, …]          (length steps, c = T/steps)
//	prev = [0, seq[0], seq[1], …]
//
// Per step, with ᾱ_t and ᾱ_prev from the shifted convention:
//
//	ε̂      = model(x, t, cond)
//	x̂_0    = (x − √(1−ᾱ_t)·ε̂)/√ᾱ_t        (clamped to [−1,1] if WithClip)
//	σ_t    = η·√((1−ᾱ_prev)/(1−ᾱ_t)·(1−ᾱ_t/ᾱ_prev))
//	x_prev = √ᾱ_prev·x̂_0 + √(1−ᾱ_prev−σ_t²)·ε̂ + σ_t·z
//
// η=0 (default) gives the deterministic DDIM path; η=1 restores
// ancestral-like stochasticity. With WithRepaint, channel 0 of the fixed
// latent indices is overwritten each step by a forward-noised copy of
// the supplied ground truth (repainting).
//
// Validation: batch/cond shapes, steps within [1,T] (ErrBadDDIMSteps),
// repaint consistency (ErrBadRepaint) — all before any computation.
//
// Complexity: O(steps·batch·dim) plus steps predictor calls.
func (s *Sampler) SampleDDIM(batch int, cond [][]float64, steps int, rng *rand.Rand, opts ...SampleOption) ([][]float64, error) {
	return s.ddim(batch, cond, steps, rng, opts, nil)
}

// SampleDDIMSequence runs the DDIM reverse process and returns the full
// trajectory of steps+1 states, initial noise first.
func (s *Sampler) SampleDDIMSequence(batch int, cond [][]float64, steps int, rng *rand.Rand, opts ...SampleOption) ([][][]float64, error) {
	trajectory := make([][][]float64, 0, steps+1)
	observe := func(x [][]float64) {
		trajectory = append(trajectory, cloneBatch(x))
	}

	if _, err := s.ddim(batch, cond, steps, rng, opts, observe); err != nil {
		return nil, err
	}

	return trajectory, nil
}

// ddim is the shared DDIM step engine behind SampleDDIM and
// SampleDDIMSequence.
func (s *Sampler) ddim(batch int, cond [][]float64, steps int, rng *rand.Rand, opts []SampleOption, observe func([][]float64)) ([][]float64, error) {
	cfg := defaultSampleConfig()
	var opt SampleOption
	for _, opt = range opts {
		opt(&cfg)
	}

	// Validation, in declared order.
	if err := s.validateBatch(batch, nil, cond); err != nil {
		return nil, err
	}
	if steps < 1 || steps > s.T {
		return nil, fmt.Errorf("%w: steps=%d T=%d", ErrBadDDIMSteps, steps, s.T)
	}
	if cfg.useEMA && s.ema == nil {
		return nil, ErrNoEMAModel
	}
	if err := s.validateRepaint(batch, &cfg); err != nil {
		return nil, err
	}
	rng = orDefault(rng)

	// Strided subsequence, shifted by one; prev prepends the zero anchor.
	c := s.T / steps
	seq := make([]int, steps)
	prev := make([]int, steps)
	for i := 0; i < steps; i++ {
		seq[i] = i*c + 1
		if i > 0 {
			prev[i] = seq[i-1]
		}
	}

	x := normalBatch(batch, s.dim(), rng)
	if observe != nil {
		observe(x)
	}

	ts := make([]int, batch)
	stepNoise := make([]float64, s.dim())
	gtNoise := make([]float64, s.dim())
	gtRepaint := make([]float64, s.dim())
	for i := steps - 1; i >= 0; i-- {
		t, tp := seq[i], prev[i]
		at, ap := s.alphaBar(t), s.alphaBar(tp)

		for k := range ts {
			ts[k] = t
		}
		pred, err := s.predict(x, ts, cond, cfg.useEMA)
		if err != nil {
			return nil, err
		}

		sigmaT := cfg.eta * math.Sqrt((1-ap)/(1-at)*(1-at/ap))
		dirCoeff := math.Sqrt(math.Max(0, 1-ap-sigmaT*sigmaT))
		sqrtAt := math.Sqrt(at)
		sqrtAp := math.Sqrt(ap)
		sqrtOneMinusAt := math.Sqrt(1 - at)

		var px0 float64
		for b := 0; b < batch; b++ {
			row, p := x[b], pred[b]
			normalFill(stepNoise, rng)
			for j := range row {
				px0 = (row[j] - sqrtOneMinusAt*p[j]) / sqrtAt
				if cfg.clip {
					px0 = math.Max(-1, math.Min(1, px0))
				}
				row[j] = sqrtAp*px0 + dirCoeff*p[j] + sigmaT*stepNoise[j]
			}

			// Repaint: hold channel 0 of the fixed latent indices to a
			// forward-noised copy of the ground truth at t−1.
			if cfg.fixIndices != nil {
				normalFill(gtNoise, rng)
				s.perturbInto(gtRepaint, cfg.repaintGT[b], t-1, gtNoise)
				var idx int
				for _, idx = range cfg.fixIndices {
					row[idx*s.channels] = gtRepaint[idx*s.channels]
				}
			}
		}

		if observe != nil {
			observe(x)
		}
	}

	return x, nil
}

// validateRepaint checks the WithRepaint configuration against the run.
func (s *Sampler) validateRepaint(batch int, cfg *sampleConfig) error {
	if cfg.repaintGT == nil && cfg.fixIndices == nil {
		return nil
	}
	if cfg.repaintGT == nil || cfg.fixIndices == nil {
		return fmt.Errorf("%w: ground truth and indices must both be set", ErrBadRepaint)
	}
	if len(cfg.repaintGT) != batch {
		return fmt.Errorf("%w: ground truth has %d rows, batch is %d", ErrBadRepaint, len(cfg.repaintGT), batch)
	}
	var row []float64
	for _, row = range cfg.repaintGT {
		if len(row) != s.dim() {
			return fmt.Errorf("%w: ground-truth row has %d values, want %d", ErrBadRepaint, len(row), s.dim())
		}
	}
	var idx int
	for _, idx = range cfg.fixIndices {
		if idx < 0 || idx >= s.latentSize {
			return fmt.Errorf("%w: latent index %d outside [0,%d)", ErrBadRepaint, idx, s.latentSize)
		}
	}

	return nil
}
