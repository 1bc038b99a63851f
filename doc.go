// Package aerofoil is your numerical toolbox for airfoil geometry —
// from Class-Shape-Transformation fitting to PARSEC feature extraction
// and a denoising-diffusion sampling contract for generative design.
//
// 🚀 What is aerofoil?
//
//	A focused, float64-only library that brings together:
//		• CST basis construction: Bernstein-weighted shape functions with
//		  closed-form first/second derivative matrices
//		• Least-squares surface fitting: SVD-based, rank-deficiency tolerant,
//		  with trailing-edge thickness handled as a linear ramp
//		• PARSEC-N15 features: 15 geometrically meaningful scalars per
//		  airfoil (leading-edge radius, thickness samples, extrema, angles)
//		• Diffusion sampling: ancestral and DDIM reverse processes around a
//		  caller-supplied noise predictor, plus β schedules and parameter EMA
//
// ✨ Why choose aerofoil?
//
//   - Reproducible – explicit seeds, deterministic pipelines, no hidden state
//   - Rock-solid guarantees – staged validation, sentinel errors, in-code docs
//   - Parallel-friendly – per-sample extraction is purely functional; a
//     bounded worker pool is one call away
//   - Extensible – every knob is a functional Option with sane defaults
//
// Under the hood, everything is organized under three subpackages:
//
//	cst/       — chord stations, CST basis & derivative matrices, surface fit
//	parsec/    — PARSEC-N15 feature extraction + batch driver
//	diffusion/ — β schedules, forward perturbation, ancestral & DDIM sampling, EMA
//
// Data flow at a glance:
//
//	point cloud ──▶ cst.Fit ──▶ cst.Evaluate ──▶ parsec.Extract ──▶ 15 features
//	                                              (conditioning) ──▶ diffusion.Sampler
//
// Dive into each package's doc.go for contracts, complexity notes and
// runnable examples.
//
//	go get github.com/katalvlaran/aerofoil
package aerofoil
