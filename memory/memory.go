package memory

import (
	"context"
	"time"
)

// DisplayIDLength is the number of leading id characters shown to the
// user. Display ids are a presentation affordance only; collisions are
// accepted at personal scale and the full id stays the storage key.
const DisplayIDLength = 4

// Record is a single stored memory.
//
// All fields are immutable after creation. The embedding is computed
// from Text exactly once, at creation time, so record and vector can
// never drift apart.
type Record struct {
	// ID is a UUID assigned at creation, unique for the lifetime of
	// the store and never reused.
	ID string

	// Text is the original user-supplied note.
	Text string

	// Embedding is the fixed-dimension vector derived from Text.
	Embedding []float32

	// CreatedAt is the creation timestamp and the sole basis for
	// recency scoring.
	CreatedAt time.Time

	// Metadata is an open key-value bag, not interpreted by the core.
	Metadata map[string]string
}

// DisplayID returns the short human-facing prefix of the record id.
func (r *Record) DisplayID() string {
	if len(r.ID) <= DisplayIDLength {
		return r.ID
	}
	return r.ID[:DisplayIDLength]
}

// SearchHit pairs a stored record with its raw cosine similarity to a
// query vector, as reported by the store.
type SearchHit struct {
	Record     *Record
	Similarity float64
}

// ScoredMemory is a recall result annotated with its component scores
// for debug and inspection use.
type ScoredMemory struct {
	Record *Record

	// Similarity is the cosine similarity clamped into [0,1].
	Similarity float64

	// Recency is exp(-decay * ageDays), in [0,1].
	Recency float64

	// Final is the weighted blend the result set is ranked by.
	Final float64
}

// Embedder converts text to vector embeddings.
// Implementations: mock (testing), fastembed (default local model),
// onnx (build tag "onnx"), cached (ristretto wrapper over any of them).
//
// Embed must be deterministic for a given model version: the same text
// always yields the same vector. Empty or whitespace-only input embeds
// without error. Model initialization happens once, in the
// implementation's constructor; a failed init is fatal to the caller
// and never retried silently.
type Embedder interface {
	// Embed converts a single text to an embedding vector of length
	// Dimensions.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// Model identifies the underlying model version.
	Model() string
}

// Store is the durable vector storage backend.
// Implementation: chromem (embedded, persistent). The store owns the
// on-disk layout; records survive process restarts.
type Store interface {
	// Add persists a new record. Fails with ErrDuplicateID if the id
	// already exists and ErrStoreUnavailable if the persistence medium
	// is unreachable or corrupted.
	Add(ctx context.Context, rec *Record) error

	// Search returns up to k records ordered by descending cosine
	// similarity to the query vector, ties broken by CreatedAt
	// descending. Returns fewer than k when fewer exist, never padded.
	Search(ctx context.Context, embedding []float32, k int) ([]SearchHit, error)

	// GetAll returns stored records ordered by CreatedAt descending,
	// optionally filtered by case-insensitive substring match on Text
	// and capped at limit (limit <= 0 means no cap).
	GetAll(ctx context.Context, filterText string, limit int) ([]*Record, error)

	// Delete removes a record permanently. Fails with ErrNotFound if
	// the id does not exist.
	Delete(ctx context.Context, id string) error

	// Clear removes all records and reports how many were removed.
	// Idempotent.
	Clear(ctx context.Context) (int, error)

	// Count returns the number of stored records.
	Count() int

	// Location describes where the store persists its data.
	Location() string

	// Close releases resources.
	Close() error
}
