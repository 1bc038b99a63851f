package parsec_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/aerofoil/parsec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractBatch_MatchesSingle verifies order preservation and
// agreement with single-sample extraction.
func TestExtractBatch_MatchesSingle(t *testing.T) {
	sample := symmetricSample(t, 129)
	samples := [][][2]float64{sample, sample, sample, sample}

	want, err := parsec.Extract(sample)
	require.NoError(t, err)

	got, err := parsec.ExtractBatch(context.Background(), samples, 2)
	require.NoError(t, err)
	require.Len(t, got, len(samples))

	for i, f := range got {
		require.NotNil(t, f, "slot %d", i)
		assert.Equal(t, want.Vector(), f.Vector(), "slot %d", i)
	}
}

// TestExtractBatch_FirstErrorWins annotates the failing sample index and
// discards partial results.
func TestExtractBatch_FirstErrorWins(t *testing.T) {
	sample := symmetricSample(t, 129)
	bad := sample[:100] // truncated: fails the 2n−1 shape check
	samples := [][][2]float64{sample, sample, bad}

	got, err := parsec.ExtractBatch(context.Background(), samples, 2)
	assert.ErrorIs(t, err, parsec.ErrPointCount)
	assert.ErrorContains(t, err, "sample 2")
	assert.Nil(t, got, "a failed batch returns no partial results")
}

// TestExtractBatch_CancelledContext aborts before doing the work.
func TestExtractBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples := [][][2]float64{symmetricSample(t, 129)}
	_, err := parsec.ExtractBatch(ctx, samples, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestExtractBatch_Empty rejects an empty batch.
func TestExtractBatch_Empty(t *testing.T) {
	_, err := parsec.ExtractBatch(context.Background(), nil, 2)
	assert.ErrorIs(t, err, parsec.ErrNoSamples)
}

// TestExtractBatch_DefaultWorkers accepts workers <= 0.
func TestExtractBatch_DefaultWorkers(t *testing.T) {
	samples := [][][2]float64{symmetricSample(t, 129)}

	got, err := parsec.ExtractBatch(context.Background(), samples, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
