// Package cached wraps any embedder with a ristretto read-through
// cache. Encoding is deterministic per model version, so a cached
// vector is always identical to a fresh one; repeated queries and
// re-added phrasings skip the model entirely.
package cached

import (
	"context"

	"github.com/dgraph-io/ristretto"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secondbrain-dev/brain/memory"
)

// Embedder is a caching decorator around another memory.Embedder.
type Embedder struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

// New wraps inner with a cache sized for a personal note collection
// (a few thousand distinct texts).
func New(inner memory.Embedder) (*Embedder, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     32 << 20, // ~32 MiB of float32 vectors
		BufferItems: 64,
	})
	if err != nil {
		return nil, goerr.Wrap(memory.ErrEncoding, "initialize embedding cache", goerr.V("cause", err))
	}
	return &Embedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, encoding on miss. Cache
// admission is best-effort; a rejected entry just means the next call
// encodes again.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.cache.Get(text); ok {
		return v.([]float32), nil
	}

	vec, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Set(text, vec, int64(len(vec))*4)
	return vec, nil
}

// Dimensions returns the wrapped embedder's vector size.
func (e *Embedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Model returns the wrapped embedder's model identifier.
func (e *Embedder) Model() string {
	return e.inner.Model()
}

// Wait blocks until buffered cache writes are applied. Only needed
// when a caller must observe a warm cache, e.g. benchmarks and tests.
func (e *Embedder) Wait() {
	e.cache.Wait()
}
