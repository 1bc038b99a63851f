// Package parsec extracts PARSEC-N15 feature vectors from discretized
// airfoil surfaces — 15 geometrically meaningful scalars per airfoil,
// reproducible enough to serve as training labels for generative models.
//
// 🚀 What is PARSEC-N15?
//
//	PARSEC is a family of airfoil parameterizations built from radii,
//	extrema and angles rather than raw coordinates. The N15 variant packs:
//	  • leading-edge osculating-circle radius
//	  • upper/lower ordinates at 4%, 25% and 60% chord
//	  • per-surface extrema with their chord stations
//	  • raw trailing-edge slope angle and trailing-edge half-thickness
//	  • a lower-surface camber proxy (location + value)
//
// ✨ Key features:
//   - one call per airfoil: Extract validates, fits, reconstructs, samples
//   - all magic indices derived from named constants (GridStep, GridLen),
//     so the 400/2500/6000 grid reads as 4%/25%/60% chord
//   - circle fit reports a convergence flag instead of silently trusting a
//     poor local minimum
//   - ExtractBatch: bounded errgroup worker pool over a dataset, order
//     preserving, first-error cancelling
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/aerofoil/parsec"
//
//	features, err := parsec.Extract(points) // points: 257×2, upper TE→LE→lower TE
//	if err != nil { ... }
//	vec := features.Vector()                // fixed 15-element label order
//
// Performance:
//
//   - Extract is dominated by the dense 10001-point reconstruction.
//   - Per-sample work is independent; use ExtractBatch for datasets.
//
// See examples in example_test.go.
package parsec
