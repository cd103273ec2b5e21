// Package mock provides a deterministic embedder for tests. Vectors
// are seeded from a hash of the text, so identical texts always embed
// identically and different texts land in effectively unrelated
// directions. There is no semantic structure beyond that.
package mock

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

const defaultDimensions = 384 // match all-MiniLM-L6-v2

// Embedder generates hash-seeded embeddings.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder with the default dimensions.
func New() *Embedder {
	return &Embedder{dimensions: defaultDimensions}
}

// NewWithDimensions creates a mock embedder with a custom vector size.
func NewWithDimensions(dims int) *Embedder {
	return &Embedder{dimensions: dims}
}

// Embed creates a deterministic unit vector from the text hash.
// Empty input is embedded like any other string.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	// Gaussian components make the normalized vector uniform on the
	// sphere, so unrelated texts land near-orthogonal at high
	// dimension.
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		embedding[i] = float32(rng.NormFloat64())
	}

	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}

// Model identifies this embedder in stats output.
func (m *Embedder) Model() string {
	return "mock"
}

// normalize converts the embedding to a unit vector.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = v / norm
	}
	return normalized
}
