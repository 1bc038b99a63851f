// Package diffusion defines the boundary types, configuration options
// and sentinel errors for the discrete-time denoising-diffusion sampler.
//
// The sampler is a thin, deterministic wrapper around a caller-supplied
// noise predictor: the neural network itself, its training loop and its
// persistence live outside this package. What lives here is the exact
// arithmetic of the forward perturbation, the reverse (ancestral and
// DDIM) processes, the β schedules, and the parameter EMA.
//
// Tensor layout:
//
//	A batch is [][]float64 of shape batch × (LatentSize·Channels), each
//	row a latent-major flattening: channel c of latent position i sits at
//	flat offset i·Channels + c.
//
// Errors (sentinel):
//
//	– ErrNilModel      if the noise predictor is nil.
//	– ErrBadSchedule   if any β lies outside (0,1) or the schedule is empty.
//	– ErrBadTimesteps  if a schedule generator receives T < 1.
//	– ErrBadRange      if a linear schedule receives an invalid (low, high).
//	– ErrBadLossType   if the loss selector is unknown.
//	– ErrBatchMismatch if batch size and condition length disagree.
//	– ErrShapeMismatch if a row length disagrees with LatentSize·Channels.
//	– ErrBadDDIMSteps  if the DDIM step count is outside [1, T].
//	– ErrBadRepaint    if repainting is requested with inconsistent
//	  ground truth or out-of-range latent indices.
//	– ErrNoEMAModel    if EMA sampling is requested before SetEMAModel.
//	– ErrBadDecay / ErrBadUpdateRate on invalid EMA construction.
package diffusion

import "errors"

// NoisePredictor is the caller-supplied denoiser contract: given a batch
// of perturbed samples x, their per-row timesteps t and an optional
// conditioning batch cond (nil when unconditioned), it returns the
// predicted noise with the same shape as x.
//
// Implementations must be read-only with respect to their parameters
// during prediction; the sampler may call them concurrently from
// different sampling runs, but never concurrently with a parameter
// update (see EMA).
type NoisePredictor func(x [][]float64, t []int, cond [][]float64) ([][]float64, error)

// Sentinel errors returned by the diffusion package.
var (
	// ErrNilModel indicates a nil NoisePredictor.
	ErrNilModel = errors.New("diffusion: noise predictor must be non-nil")

	// ErrBadSchedule indicates an empty β schedule or a β outside (0,1).
	ErrBadSchedule = errors.New("diffusion: betas must be non-empty and strictly within (0,1)")

	// ErrBadTimesteps indicates a schedule generator called with T < 1.
	ErrBadTimesteps = errors.New("diffusion: timestep count must be >= 1")

	// ErrBadRange indicates a linear schedule with low/high outside (0,1)
	// or low > high.
	ErrBadRange = errors.New("diffusion: schedule range must satisfy 0 < low <= high < 1")

	// ErrBadLossType indicates an unknown loss selector.
	ErrBadLossType = errors.New("diffusion: unknown loss type")

	// ErrBatchMismatch indicates a batch whose condition length differs
	// from its size, or an empty batch.
	ErrBatchMismatch = errors.New("diffusion: batch size and condition length must agree")

	// ErrShapeMismatch indicates a row whose length is not LatentSize·Channels.
	ErrShapeMismatch = errors.New("diffusion: row length must equal latent*channels")

	// ErrBadDDIMSteps indicates a DDIM step count outside [1, T].
	ErrBadDDIMSteps = errors.New("diffusion: DDIM steps must lie within [1, T]")

	// ErrTimestepRange indicates a timestep outside [0, T).
	ErrTimestepRange = errors.New("diffusion: timestep out of range")

	// ErrBadRepaint indicates inconsistent repaint ground truth or indices.
	ErrBadRepaint = errors.New("diffusion: repaint ground truth and indices must match the batch")

	// ErrNoEMAModel indicates EMA sampling without a registered EMA predictor.
	ErrNoEMAModel = errors.New("diffusion: no EMA model registered")

	// ErrBadDecay indicates an EMA decay outside (0,1).
	ErrBadDecay = errors.New("diffusion: EMA decay must lie within (0,1)")

	// ErrBadUpdateRate indicates a non-positive EMA update rate.
	ErrBadUpdateRate = errors.New("diffusion: EMA update rate must be >= 1")
)

// LossType selects the training-loss metric.
type LossType int

const (
	// LossL1 is mean absolute error between predicted and true noise.
	LossL1 LossType = iota

	// LossL2 is mean squared error between predicted and true noise.
	LossL2
)

// String returns the conventional lowercase name of the loss.
func (l LossType) String() string {
	switch l {
	case LossL1:
		return "l1"
	case LossL2:
		return "l2"
	default:
		return "loss(?)"
	}
}

// Defaults for the canonical airfoil point-cloud configuration.
const (
	// DefaultLatentSize is the per-sample latent length (one closed
	// 257-point airfoil loop).
	DefaultLatentSize = 257

	// DefaultChannels is the per-latent channel count (x and y).
	DefaultChannels = 2
)

// Options configures a Sampler.
//
// LatentSize – latent positions per sample. Default 257.
// Channels   – channels per latent position. Default 2.
// Loss       – training-loss metric. Default LossL1.
type Options struct {
	LatentSize int
	Channels   int
	Loss       LossType
}

// Option represents a functional option for configuring a Sampler.
type Option func(*Options)

// WithLatentSize sets the latent length per sample.
func WithLatentSize(n int) Option {
	return func(o *Options) {
		o.LatentSize = n
	}
}

// WithChannels sets the channel count per latent position.
func WithChannels(c int) Option {
	return func(o *Options) {
		o.Channels = c
	}
}

// WithLoss selects the training-loss metric.
func WithLoss(l LossType) Option {
	return func(o *Options) {
		o.Loss = l
	}
}

// DefaultOptions returns the canonical airfoil configuration.
func DefaultOptions() Options {
	return Options{
		LatentSize: DefaultLatentSize,
		Channels:   DefaultChannels,
		Loss:       LossL1,
	}
}

// buildOptions folds functional options over DefaultOptions and
// validates the result.
func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}
	if cfg.LatentSize < 1 || cfg.Channels < 1 {
		return cfg, ErrShapeMismatch
	}
	if cfg.Loss != LossL1 && cfg.Loss != LossL2 {
		return cfg, ErrBadLossType
	}

	return cfg, nil
}

// SampleOption tunes one sampling run without touching Sampler state.
type SampleOption func(*sampleConfig)

// sampleConfig is the per-run sampling configuration.
type sampleConfig struct {
	useEMA     bool        // predict with the registered EMA model
	clip       bool        // clamp pred-x0 to [−1,1] during DDIM
	eta        float64     // DDIM stochasticity: 0 deterministic, 1 ancestral-like
	repaintGT  [][]float64 // ground truth for repainting, or nil
	fixIndices []int       // latent indices held to the ground truth
}

// defaultSampleConfig: deterministic DDIM (η=0) with pred-x0 clamping
// enabled.
func defaultSampleConfig() sampleConfig {
	return sampleConfig{clip: true}
}

// WithEMA predicts with the registered EMA model for this run.
// Requires a prior SetEMAModel (ErrNoEMAModel otherwise).
func WithEMA() SampleOption {
	return func(c *sampleConfig) {
		c.useEMA = true
	}
}

// WithClip toggles the DDIM pred-x0 clamp to [−1,1]. On by default;
// disable when samples are not normalized into that range.
func WithClip(clip bool) SampleOption {
	return func(c *sampleConfig) {
		c.clip = clip
	}
}

// WithEta sets the DDIM stochasticity parameter η. η=0 (default) is the
// deterministic DDIM path; η=1 recovers ancestral-like variance.
func WithEta(eta float64) SampleOption {
	return func(c *sampleConfig) {
		c.eta = eta
	}
}

// WithRepaint holds the given latent indices to a noised copy of gt at
// every DDIM step (channel 0 of each index, per the layout note in the
// package doc). gt must match the run's batch and row shape.
func WithRepaint(gt [][]float64, fixIndices []int) SampleOption {
	return func(c *sampleConfig) {
		c.repaintGT = gt
		c.fixIndices = fixIndices
	}
}
