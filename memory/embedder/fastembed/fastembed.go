// Package fastembed wraps anush008/fastembed-go, which runs small
// sentence-transformer models locally through ONNX Runtime. The model
// is downloaded to the cache directory on first use and loaded once
// per process.
package fastembed

import (
	"context"

	fastembed "github.com/anush008/fastembed-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secondbrain-dev/brain/memory"
)

// DefaultModel matches the model the memory collection was designed
// around: 384 dimensions, fast on CPU.
const DefaultModel = "all-MiniLM-L6-v2"

// models maps config identifiers to fastembed models and their
// embedding dimensions.
var models = map[string]struct {
	model fastembed.EmbeddingModel
	dims  int
}{
	"all-MiniLM-L6-v2":  {fastembed.AllMiniLML6V2, 384},
	"bge-small-en-v1.5": {fastembed.BGESmallENV15, 384},
	"bge-base-en-v1.5":  {fastembed.BGEBaseENV15, 768},
}

// Config configures the embedder.
type Config struct {
	// Model selects the embedding model. Default DefaultModel.
	Model string

	// CacheDir is where model files are downloaded and cached.
	CacheDir string

	// MaxLength is the token limit per input, 0 for the library
	// default.
	MaxLength int
}

// Embedder implements memory.Embedder with a local fastembed model.
type Embedder struct {
	flag *fastembed.FlagEmbedding
	name string
	dims int
}

// New loads the model. This is the one-time initialization; a failure
// here (missing or undownloadable model artifact) is fatal to the
// caller.
func New(cfg Config) (*Embedder, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	entry, ok := models[cfg.Model]
	if !ok {
		return nil, goerr.Wrap(memory.ErrEncoding, "unknown embedding model", goerr.V("model", cfg.Model))
	}

	flag, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:     entry.model,
		CacheDir:  cfg.CacheDir,
		MaxLength: cfg.MaxLength,
	})
	if err != nil {
		return nil, goerr.Wrap(memory.ErrEncoding, "initialize embedding model",
			goerr.V("model", cfg.Model), goerr.V("cause", err))
	}

	return &Embedder{flag: flag, name: cfg.Model, dims: entry.dims}, nil
}

// Embed converts text to a normalized embedding vector.
//
// The plain Embed call is used for both stored notes and queries: the
// query/passage prefixing some models support would make the two
// encodings of the same text diverge, breaking the determinism
// contract and verbatim round-trips.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.flag.Embed([]string{text}, 1)
	if err != nil {
		return nil, goerr.Wrap(memory.ErrEncoding, "embed text",
			goerr.V("model", e.name), goerr.V("cause", err))
	}
	if len(vecs) != 1 || len(vecs[0]) != e.dims {
		return nil, goerr.Wrap(memory.ErrEncoding, "unexpected embedding shape",
			goerr.V("model", e.name), goerr.V("vectors", len(vecs)))
	}
	return vecs[0], nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Model returns the configured model identifier.
func (e *Embedder) Model() string {
	return e.name
}

// Close releases the underlying ONNX session.
func (e *Embedder) Close() error {
	if e.flag != nil {
		e.flag.Destroy()
	}
	return nil
}
