package mock_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain-dev/brain/memory/embedder/mock"
)

func TestEmbedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	embedder := mock.New()

	first, err := embedder.Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)
	second, err := embedder.Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A fresh instance produces the same vector for the same text.
	other, err := mock.New().Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)
	assert.Equal(t, first, other)
}

func TestEmbedDifferentTextsDiffer(t *testing.T) {
	ctx := context.Background()
	embedder := mock.New()

	a, err := embedder.Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)
	b, err := embedder.Embed(ctx, "wallet on the counter")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEmbedReturnsUnitVector(t *testing.T) {
	ctx := context.Background()
	embedder := mock.New()

	for _, text := range []string{"", "x", "a much longer piece of text to embed"} {
		vec, err := embedder.Embed(ctx, text)
		require.NoError(t, err)
		require.Len(t, vec, embedder.Dimensions())

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4, "text %q", text)
	}
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, 384, mock.New().Dimensions())
	assert.Equal(t, "mock", mock.New().Model())

	small := mock.NewWithDimensions(8)
	assert.Equal(t, 8, small.Dimensions())

	vec, err := small.Embed(context.Background(), "tiny")
	require.NoError(t, err)
	assert.Len(t, vec, 8)
}
