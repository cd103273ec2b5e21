// Package chromem persists memory records in chromem-go, an embedded
// pure-Go vector database. Documents live in a single collection under
// the configured directory and survive process restarts.
//
// chromem-go has no public way to enumerate a collection, so the store
// keeps an in-memory id index alongside it. The index is rebuilt at
// open time (by querying the collection for its full document count)
// and maintained on every mutation; chromem stays the source of truth
// for vectors and similarity search.
package chromem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/m-mizutani/goerr/v2"
	chromem "github.com/philippgille/chromem-go"

	"github.com/secondbrain-dev/brain/memory"
)

// metadata key reserved by the store; user metadata keeps every
// other key.
const createdAtKey = "created_at"

// Config configures the store.
type Config struct {
	// Path is the directory chromem persists to.
	Path string

	// Collection names the document collection. Default "memories".
	Collection string

	// Dimensions is the embedding vector size, needed to probe the
	// collection when rebuilding the index. Default 384.
	Dimensions int
}

// Store implements memory.Store on top of chromem-go.
type Store struct {
	db   *chromem.DB
	col  *chromem.Collection
	path string
	dims int

	mu      sync.RWMutex
	records map[string]*memory.Record
}

// New opens (or creates) the persistent database at cfg.Path and
// loads the id index. Any failure to open or read the on-disk state
// surfaces as ErrStoreUnavailable; corruption is not recovered from
// in-process.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		cfg.Collection = "memories"
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 384
	}

	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, goerr.Wrap(memory.ErrStoreUnavailable, "open persistent database",
			goerr.V("path", cfg.Path), goerr.V("cause", err))
	}

	col, err := db.GetOrCreateCollection(cfg.Collection, map[string]string{
		"description": "semantic memory storage",
	}, nil)
	if err != nil {
		return nil, goerr.Wrap(memory.ErrStoreUnavailable, "open collection",
			goerr.V("collection", cfg.Collection), goerr.V("cause", err))
	}

	s := &Store{
		db:      db,
		col:     col,
		path:    cfg.Path,
		dims:    cfg.Dimensions,
		records: make(map[string]*memory.Record),
	}
	if err := s.loadIndex(ctx); err != nil {
		return nil, err
	}

	log.Debug("vector store ready", "path", cfg.Path, "collection", cfg.Collection, "count", len(s.records))
	return s, nil
}

// loadIndex rebuilds the in-memory index from the collection. A unit
// probe vector with nResults equal to the document count returns
// every document.
func (s *Store) loadIndex(ctx context.Context) error {
	n := s.col.Count()
	if n == 0 {
		return nil
	}

	probe := make([]float32, s.dims)
	probe[0] = 1

	results, err := s.col.QueryEmbedding(ctx, probe, n, nil, nil)
	if err != nil {
		return goerr.Wrap(memory.ErrStoreUnavailable, "enumerate collection", goerr.V("cause", err))
	}

	for _, result := range results {
		rec, err := recordFromResult(result)
		if err != nil {
			log.Warn("skipping unreadable record", "id", result.ID, "error", err)
			continue
		}
		s.records[rec.ID] = rec
	}
	return nil
}

// Add persists a new record.
func (s *Store) Add(ctx context.Context, rec *memory.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return goerr.Wrap(memory.ErrDuplicateID, "record already stored", goerr.V("id", rec.ID))
	}

	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Embedding: rec.Embedding,
		Metadata:  metadataForStorage(rec),
	}
	if err := s.col.AddDocument(ctx, doc); err != nil {
		return goerr.Wrap(memory.ErrStoreUnavailable, "add document",
			goerr.V("id", rec.ID), goerr.V("cause", err))
	}

	s.records[rec.ID] = rec
	return nil
}

// Search returns up to k records by descending cosine similarity,
// ties broken by CreatedAt descending. The tie-break applies within
// the k results chromem returns; an equal-similarity record that fell
// outside the top k is already gone and cannot be recovered by it.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]memory.SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k > len(s.records) {
		k = len(s.records)
	}
	if k <= 0 {
		return nil, nil
	}

	results, err := s.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, goerr.Wrap(memory.ErrStoreUnavailable, "similarity query", goerr.V("cause", err))
	}

	hits := make([]memory.SearchHit, 0, len(results))
	for _, result := range results {
		rec, ok := s.records[result.ID]
		if !ok {
			// Index and collection disagree; treat as corruption
			// rather than fabricating a record.
			return nil, goerr.Wrap(memory.ErrStoreUnavailable, "document missing from index",
				goerr.V("id", result.ID))
		}
		hits = append(hits, memory.SearchHit{
			Record:     rec,
			Similarity: float64(result.Similarity),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Record.CreatedAt.After(hits[j].Record.CreatedAt)
	})
	return hits, nil
}

// GetAll returns records by CreatedAt descending, optionally filtered
// by case-insensitive substring and capped at limit.
func (s *Store) GetAll(ctx context.Context, filterText string, limit int) ([]*memory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filterText)
	records := make([]*memory.Record, 0, len(s.records))
	for _, rec := range s.records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Text), needle) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Delete removes a record permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return goerr.Wrap(memory.ErrNotFound, "no record with this id", goerr.V("id", id))
	}

	if err := s.col.Delete(ctx, nil, nil, id); err != nil {
		return goerr.Wrap(memory.ErrStoreUnavailable, "delete document",
			goerr.V("id", id), goerr.V("cause", err))
	}

	delete(s.records, id)
	return nil
}

// Clear removes every record. Idempotent.
func (s *Store) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	if err := s.col.Delete(ctx, nil, nil, ids...); err != nil {
		return 0, goerr.Wrap(memory.ErrStoreUnavailable, "clear collection", goerr.V("cause", err))
	}

	removed := len(s.records)
	s.records = make(map[string]*memory.Record)
	return removed, nil
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Location returns the persistence directory.
func (s *Store) Location() string {
	return s.path
}

// Close releases resources. chromem-go flushes on every write, so
// there is nothing to tear down.
func (s *Store) Close() error {
	return nil
}

// metadataForStorage flattens a record's metadata for chromem,
// reserving the created_at key for the store.
func metadataForStorage(rec *memory.Record) map[string]string {
	metadata := make(map[string]string, len(rec.Metadata)+1)
	for k, v := range rec.Metadata {
		if k == createdAtKey {
			continue
		}
		metadata[k] = v
	}
	metadata[createdAtKey] = rec.CreatedAt.Format(time.RFC3339Nano)
	return metadata
}

// recordFromResult rebuilds a record from a stored document.
func recordFromResult(result chromem.Result) (*memory.Record, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, result.Metadata[createdAtKey])
	if err != nil {
		return nil, goerr.Wrap(err, "parse created_at", goerr.V("id", result.ID))
	}

	var metadata map[string]string
	if len(result.Metadata) > 1 {
		metadata = make(map[string]string, len(result.Metadata)-1)
		for k, v := range result.Metadata {
			if k == createdAtKey {
				continue
			}
			metadata[k] = v
		}
	}

	return &memory.Record{
		ID:        result.ID,
		Text:      result.Content,
		Embedding: result.Embedding,
		CreatedAt: createdAt,
		Metadata:  metadata,
	}, nil
}
