package diffusion_test

import (
	"testing"

	"github.com/katalvlaran/aerofoil/diffusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewEMA_Validation pins the constructor bounds.
func TestNewEMA_Validation(t *testing.T) {
	_, err := diffusion.NewEMA(0, 0, 1)
	assert.ErrorIs(t, err, diffusion.ErrBadDecay)

	_, err = diffusion.NewEMA(1, 0, 1)
	assert.ErrorIs(t, err, diffusion.ErrBadDecay)

	_, err = diffusion.NewEMA(0.999, 0, 0)
	assert.ErrorIs(t, err, diffusion.ErrBadUpdateRate)

	ema, err := diffusion.NewEMA(0.999, -5, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, ema.Start, "negative warm-up clamps to zero")
}

// TestEMA_WarmupHardCopy: before Start steps the shadow tracks the live
// parameters exactly, no blending.
func TestEMA_WarmupHardCopy(t *testing.T) {
	ema, err := diffusion.NewEMA(0.5, 3, 1)
	require.NoError(t, err)

	shadow := []float64{0, 0}
	live := []float64{2, 4}

	require.NoError(t, ema.Update(shadow, live)) // step 1 < 3
	assert.Equal(t, live, shadow)

	live[0], live[1] = 10, -10
	require.NoError(t, ema.Update(shadow, live)) // step 2 < 3
	assert.Equal(t, live, shadow)

	// Step 3 reaches Start: warm-up ends, blending begins.
	live[0], live[1] = 0, 0
	require.NoError(t, ema.Update(shadow, live))
	assert.InDelta(t, 5.0, shadow[0], 1e-15)
	assert.InDelta(t, -5.0, shadow[1], 1e-15)
	assert.Equal(t, 3, ema.Step())
}

// TestEMA_Blend checks the d·shadow + (1−d)·live arithmetic.
func TestEMA_Blend(t *testing.T) {
	ema, err := diffusion.NewEMA(0.9, 0, 1)
	require.NoError(t, err)

	shadow := []float64{1}
	require.NoError(t, ema.Update(shadow, []float64{2}))
	assert.InDelta(t, 1.1, shadow[0], 1e-15)

	require.NoError(t, ema.Update(shadow, []float64{2}))
	assert.InDelta(t, 1.19, shadow[0], 1e-15)
}

// TestEMA_Stride: off-stride steps advance the counter but leave the
// shadow untouched.
func TestEMA_Stride(t *testing.T) {
	ema, err := diffusion.NewEMA(0.5, 0, 2)
	require.NoError(t, err)

	shadow := []float64{1}
	live := []float64{3}

	require.NoError(t, ema.Update(shadow, live)) // step 1: no-op
	assert.Equal(t, 1.0, shadow[0])
	assert.Equal(t, 1, ema.Step())

	require.NoError(t, ema.Update(shadow, live)) // step 2: applied
	assert.InDelta(t, 2.0, shadow[0], 1e-15)
}

// TestEMA_ShapeMismatch rejects disagreeing parameter vectors.
func TestEMA_ShapeMismatch(t *testing.T) {
	ema, err := diffusion.NewEMA(0.9, 0, 1)
	require.NoError(t, err)

	err = ema.Update([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, diffusion.ErrShapeMismatch)
}
