// Package parsec - parallel batch extraction.
//
// Feature extraction is purely functional per sample, with no shared
// mutable state between invocations: a dataset is embarrassingly
// parallel. ExtractBatch fans samples out over a bounded worker pool
// with errgroup, preserving input order in the output and cancelling
// the whole batch on the first failure.
package parsec

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ExtractBatch extracts features for every sample concurrently.
//
// Inputs:
//
//   - ctx:     cancels in-flight work; a cancelled context aborts the batch.
//   - samples: one point cloud per airfoil, all under the same Options.
//   - workers: pool size; values <= 0 default to runtime.NumCPU().
//
// Returns features in sample order, or the first error annotated with the
// failing sample index. On error the remaining work is cancelled and the
// partial results are discarded — a batch either labels every sample or
// none, since downstream training data must stay aligned.
//
// Complexity: O(len(samples)/workers) wall-clock extractions.
func ExtractBatch(ctx context.Context, samples [][][2]float64, workers int, opts ...Option) ([]*Features, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)

	out := make([]*Features, len(samples))
	jobs := make(chan int)

	// Producer: feed sample indices until done or cancelled.
	g.Go(func() error {
		defer close(jobs)
		for i := range samples {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	// Workers: each slot in out is written by exactly one goroutine.
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				features, err := Extract(samples[i], opts...)
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				out[i] = features

				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
