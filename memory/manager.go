package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// neutralRecency is used when a record carries no usable timestamp.
const neutralRecency = 0.5

// Manager is the high-level interface over the store and the
// embedder. It owns the hybrid scoring engine: recall candidates are
// fetched by vector similarity, then re-ranked by a weighted blend of
// similarity and recency so that fresher memories win near-ties.
//
// The embedder handle is constructed once by the caller and shared
// read-only across all operations; Manager never re-initializes it.
type Manager struct {
	store    Store
	embedder Embedder
	config   *Config

	// now is replaceable in tests; recall time anchors recency.
	now func() time.Time
}

// Stats summarizes the state of the store for display.
type Stats struct {
	Count      int
	MostRecent time.Time
	Location   string
	Model      string
	Dimensions int
}

// NewManager creates a Manager. A nil config selects DefaultConfig.
func NewManager(store Store, embedder Embedder, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	return &Manager{
		store:    store,
		embedder: embedder,
		config:   config,
		now:      time.Now,
	}
}

// Add stores a new memory. The text is embedded, wrapped in a Record
// with a fresh id and the current timestamp, and persisted. Rejects
// empty or whitespace-only text with ErrInvalidInput.
func (m *Manager) Add(ctx context.Context, text string, metadata map[string]string) (*Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "refusing to store blank memory")
	}

	embedding, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:        uuid.New().String(),
		Text:      text,
		Embedding: embedding,
		CreatedAt: m.now(),
		Metadata:  metadata,
	}

	if err := m.store.Add(ctx, rec); err != nil {
		return nil, err
	}

	log.Debug("memory stored", "id", rec.DisplayID(), "text", truncateLog(text, 50))
	return rec, nil
}

// Recall finds memories matching the query and ranks them by hybrid
// score. limit <= 0 selects the configured TopNResults; threshold is
// the minimum final score, where 0 admits everything.
//
// An empty result set means "no confident match" and is a normal
// outcome, distinct from store or encoding failure.
func (m *Manager) Recall(ctx context.Context, query string, limit int, threshold float64) ([]ScoredMemory, error) {
	if limit <= 0 {
		limit = m.config.TopNResults
	}

	queryEmbedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	// Over-fetch so re-ranking by recency has candidates to work
	// with beyond the raw similarity order.
	k := m.config.TopKRetrieval
	if k < limit {
		k = limit
	}

	hits, err := m.store.Search(ctx, queryEmbedding, k)
	if err != nil {
		return nil, err
	}

	now := m.now()
	scored := make([]ScoredMemory, 0, len(hits))
	for _, hit := range hits {
		similarity := clamp01(hit.Similarity)
		recency := m.recencyScore(hit.Record.CreatedAt, now)
		final := m.config.SimilarityWeight*similarity + m.config.RecencyWeight*recency
		if final < threshold {
			continue
		}
		scored = append(scored, ScoredMemory{
			Record:     hit.Record,
			Similarity: similarity,
			Recency:    recency,
			Final:      final,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Final != scored[j].Final {
			return scored[i].Final > scored[j].Final
		}
		return scored[i].Record.CreatedAt.After(scored[j].Record.CreatedAt)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	log.Debug("recall complete",
		"query", truncateLog(query, 50),
		"candidates", len(hits),
		"returned", len(scored))
	return scored, nil
}

// List returns memories in reverse chronological order, optionally
// filtered by substring and capped at limit. No scoring is applied.
func (m *Manager) List(ctx context.Context, filter string, limit int) ([]*Record, error) {
	return m.store.GetAll(ctx, filter, limit)
}

// Get looks up a single memory by full id or unambiguous display-id
// prefix.
func (m *Manager) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := m.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a memory by full id or unambiguous display-id
// prefix. Deletion is permanent; a second delete of the same id fails
// with ErrNotFound.
func (m *Manager) Delete(ctx context.Context, id string) error {
	rec, err := m.resolve(ctx, id)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, rec.ID)
}

// Clear removes all memories and reports how many were removed.
func (m *Manager) Clear(ctx context.Context) (int, error) {
	return m.store.Clear(ctx)
}

// Stats reports the store size, the newest memory's timestamp, and
// where and with which model the memories live.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Count:      m.store.Count(),
		Location:   m.store.Location(),
		Model:      m.embedder.Model(),
		Dimensions: m.embedder.Dimensions(),
	}
	if stats.Count > 0 {
		newest, err := m.store.GetAll(ctx, "", 1)
		if err != nil {
			return nil, err
		}
		if len(newest) > 0 {
			stats.MostRecent = newest[0].CreatedAt
		}
	}
	return stats, nil
}

// resolve maps a user-supplied id to its record. Full ids hit the
// store directly via GetAll; shorter inputs are treated as display-id
// prefixes and must match exactly one record.
func (m *Manager) resolve(ctx context.Context, id string) (*Record, error) {
	if len(id) < DisplayIDLength {
		return nil, goerr.Wrap(ErrNotFound, "id too short to resolve", goerr.V("id", id))
	}

	records, err := m.store.GetAll(ctx, "", 0)
	if err != nil {
		return nil, err
	}

	var match *Record
	for _, rec := range records {
		if !strings.HasPrefix(rec.ID, id) {
			continue
		}
		if match != nil {
			return nil, goerr.Wrap(ErrNotFound, "ambiguous memory id prefix", goerr.V("id", id))
		}
		match = rec
	}
	if match == nil {
		return nil, goerr.Wrap(ErrNotFound, "no memory with this id", goerr.V("id", id))
	}
	return match, nil
}

// recencyScore maps a creation timestamp to [0,1] via exponential
// decay. Age is clamped to zero so future-dated records (clock skew,
// imported fixtures) score exactly 1, never more. A zero timestamp
// has no age to decay from and scores neutral.
func (m *Manager) recencyScore(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return neutralRecency
	}
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays * m.config.RecencyDecayRate)
}

// clamp01 pins a similarity value into [0,1]. Cosine similarity of
// unit vectors lies in [-1,1]; anything negative counts as unrelated.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// truncateLog shortens text for log lines.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
