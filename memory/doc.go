// Package memory implements a personal semantic-memory store: short
// natural-language notes are embedded into vectors, persisted, and
// later recalled with free-form queries.
//
// Architecture:
//   - Embedder: text-to-vector conversion (fastembed for real use,
//     ONNX behind a build tag, mock for tests)
//   - Store: durable vector storage with similarity search
//     (chromem-go, an embedded pure-Go vector database)
//   - Manager: orchestrates add/recall/list/delete and implements
//     hybrid scoring (semantic similarity blended with recency)
//
// Memories are immutable, append-only facts. There is no update
// operation: superseding information is recorded as a new, more
// recent memory, and recency weighting surfaces it first. The only
// lifecycle events are create and delete.
//
// The package assumes a single process with exclusive access to the
// storage directory. Concurrent access from multiple processes is
// undefined behavior.
package memory
