package diffusion_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/aerofoil/diffusion"
)

// benchSampler: canonical 257×2 latents over the T=1000 cosine schedule.
func benchSampler(b *testing.B) *diffusion.Sampler {
	b.Helper()

	betas, err := diffusion.CosineSchedule(1000)
	if err != nil {
		b.Fatal(err)
	}
	s, err := diffusion.NewSampler(zeroPredictorB, betas)
	if err != nil {
		b.Fatal(err)
	}

	return s
}

func zeroPredictorB(x [][]float64, _ []int, _ [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = make([]float64, len(x[i]))
	}

	return out, nil
}

func BenchmarkSampleDDIM50(b *testing.B) {
	s := benchSampler(b)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.SampleDDIM(1, nil, 50, rng); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoss(b *testing.B) {
	s := benchSampler(b)
	rng := rand.New(rand.NewSource(1))

	x0 := make([][]float64, 16)
	for i := range x0 {
		x0[i] = make([]float64, 257*2)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Loss(x0, nil, rng); err != nil {
			b.Fatal(err)
		}
	}
}
