// Package diffusion implements a discrete-time denoising-diffusion
// sampler over flattened airfoil latents, decoupled from any particular
// neural network: the model enters as a NoisePredictor function value
// and everything else — β schedules, forward perturbation, ancestral and
// DDIM reverse processes, training loss, parameter EMA — is exact,
// deterministic float64 arithmetic.
//
// 🚀 What lives here?
//
//	LinearSchedule / CosineSchedule – β_t generators, each β ∈ (0,1)
//	Sampler.PerturbX                – forward q(x_t|x_0) sample
//	Sampler.Loss                    – L1/L2 noise-reconstruction loss
//	Sampler.Sample(+Sequence)       – full-T ancestral reverse chain
//	Sampler.SampleDDIM(+Sequence)   – strided DDIM chain, η-parameterized,
//	                                  with optional repainting of fixed
//	                                  latent indices (WithRepaint)
//	EMA                             – warm-up/stride/decay shadow updates
//
// ✨ Key properties:
//   - Determinism: all randomness flows through an explicit *rand.Rand;
//     nil selects a fixed default stream, so library behavior is
//     reproducible out of the box.
//   - The neural network is a boundary: train and persist it elsewhere,
//     hand its forward pass in as a NoisePredictor.
//   - Conditioning is opaque: cond batches (e.g. parsec feature vectors)
//     pass through to the predictor untouched; nil means unconditioned.
//   - Strict validation before computation: schedules, shapes, DDIM step
//     counts and repaint configuration each have a sentinel error.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/aerofoil/diffusion"
//
//	betas, _ := diffusion.CosineSchedule(1000)
//	s, err := diffusion.NewSampler(netForward, betas)   // 257×2 default
//	if err != nil { ... }
//	airfoils, err := s.SampleDDIM(16, condFeatures, 50, rng)
//
// Tensor layout: a batch is [][]float64 of shape batch × (LatentSize·
// Channels); channel c of latent position i sits at flat offset
// i·Channels + c. See package parsec for the conditioning features and
// package cst for the surface parameterization behind them.
package diffusion
