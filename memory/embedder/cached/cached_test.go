package cached_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain-dev/brain/memory"
	"github.com/secondbrain-dev/brain/memory/embedder/cached"
	"github.com/secondbrain-dev/brain/memory/embedder/mock"
)

// countingEmbedder records how many times the model was actually hit.
type countingEmbedder struct {
	memory.Embedder
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.Embedder.Embed(ctx, text)
}

func TestEmbedHitsModelOncePerText(t *testing.T) {
	ctx := context.Background()
	inner := &countingEmbedder{Embedder: mock.New()}
	embedder, err := cached.New(inner)
	require.NoError(t, err)

	first, err := embedder.Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)
	embedder.Wait()

	second, err := embedder.Embed(ctx, "passport in blue suitcase")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestEmbedDistinctTextsMiss(t *testing.T) {
	ctx := context.Background()
	inner := &countingEmbedder{Embedder: mock.New()}
	embedder, err := cached.New(inner)
	require.NoError(t, err)

	_, err = embedder.Embed(ctx, "one")
	require.NoError(t, err)
	embedder.Wait()
	_, err = embedder.Embed(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestPassthroughMetadata(t *testing.T) {
	embedder, err := cached.New(mock.New())
	require.NoError(t, err)

	assert.Equal(t, 384, embedder.Dimensions())
	assert.Equal(t, "mock", embedder.Model())
}
