package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain-dev/brain/memory"
	"github.com/secondbrain-dev/brain/memory/embedder/mock"
	chromemstore "github.com/secondbrain-dev/brain/memory/store/chromem"
)

func newTestManager(t *testing.T) (*memory.Manager, memory.Store, memory.Embedder) {
	t.Helper()

	store, err := chromemstore.New(context.Background(), chromemstore.Config{
		Path:       t.TempDir(),
		Collection: "memories",
		Dimensions: 384,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	embedder := mock.New()
	return memory.NewManager(store, embedder, nil), store, embedder
}

// storeRecord inserts a record with a controlled timestamp, bypassing
// the manager's "created_at = now" behavior.
func storeRecord(t *testing.T, store memory.Store, embedder memory.Embedder, text string, createdAt time.Time) *memory.Record {
	t.Helper()

	embedding, err := embedder.Embed(context.Background(), text)
	require.NoError(t, err)

	rec := &memory.Record{
		ID:        uuid.New().String(),
		Text:      text,
		Embedding: embedding,
		CreatedAt: createdAt,
	}
	require.NoError(t, store.Add(context.Background(), rec))
	return rec
}

func TestAddRecallRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	text := "passport in blue suitcase"
	rec, err := manager.Add(ctx, text, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Len(t, rec.DisplayID(), memory.DisplayIDLength)
	assert.False(t, rec.CreatedAt.IsZero())

	results, err := manager.Recall(ctx, text, 5, 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, rec.ID, results[0].Record.ID)
	assert.GreaterOrEqual(t, results[0].Similarity, 0.9, "verbatim query should score near 1")
	assert.LessOrEqual(t, results[0].Final, 1.0)
}

func TestAddRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	manager, store, _ := newTestManager(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := manager.Add(ctx, text, nil)
		assert.ErrorIs(t, err, memory.ErrInvalidInput, "text %q", text)
	}
	assert.Equal(t, 0, store.Count())
}

func TestAddKeepsMetadata(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	_, err := manager.Add(ctx, "wifi password is on the router", map[string]string{"source": "cli"})
	require.NoError(t, err)

	records, err := manager.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cli", records[0].Metadata["source"])
}

func TestRecallEmptyStore(t *testing.T) {
	manager, _, _ := newTestManager(t)

	results, err := manager.Recall(context.Background(), "anything at all", 3, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecallThresholdFiltering(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	for _, text := range []string{
		"passport in blue suitcase",
		"wallet on the kitchen counter",
		"keys in my jacket pocket",
	} {
		_, err := manager.Add(ctx, text, nil)
		require.NoError(t, err)
	}

	// Mock embeddings of unrelated texts are effectively orthogonal,
	// so every final score stays well under 0.9. An over-strict
	// threshold yields an empty result, not an error.
	results, err := manager.Recall(ctx, "favorite pizza topping", 5, 0.9)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The same query passes a permissive threshold.
	results, err = manager.Recall(ctx, "favorite pizza topping", 5, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestRecallPrefersRecentOnEqualSimilarity(t *testing.T) {
	ctx := context.Background()
	manager, store, embedder := newTestManager(t)

	// Same text embeds identically, so similarity ties exactly and
	// only recency separates the two.
	text := "wallet on the kitchen counter"
	stale := storeRecord(t, store, embedder, text, time.Now().AddDate(0, 0, -30))
	fresh := storeRecord(t, store, embedder, text, time.Now().AddDate(0, 0, -1))

	results, err := manager.Recall(ctx, text, 5, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, fresh.ID, results[0].Record.ID)
	assert.Equal(t, stale.ID, results[1].Record.ID)
	assert.Greater(t, results[0].Recency, results[1].Recency)
	assert.Greater(t, results[0].Final, results[1].Final)
	assert.InDelta(t, results[0].Similarity, results[1].Similarity, 1e-6)
}

func TestRecallClampsFutureTimestamps(t *testing.T) {
	ctx := context.Background()
	manager, store, embedder := newTestManager(t)

	text := "dentist appointment on thursday"
	storeRecord(t, store, embedder, text, time.Now().Add(48*time.Hour))

	results, err := manager.Recall(ctx, text, 1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.LessOrEqual(t, results[0].Recency, 1.0)
	assert.LessOrEqual(t, results[0].Final, 1.0)
}

func TestRecallHonorsLimit(t *testing.T) {
	ctx := context.Background()
	manager, store, embedder := newTestManager(t)

	text := "spare key under the flowerpot"
	for i := 0; i < 5; i++ {
		storeRecord(t, store, embedder, text, time.Now().AddDate(0, 0, -i))
	}

	results, err := manager.Recall(ctx, text, 2, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDeleteRemovesFromRecallAndList(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	keep, err := manager.Add(ctx, "passport in blue suitcase", nil)
	require.NoError(t, err)
	doomed, err := manager.Add(ctx, "old passport in the drawer", nil)
	require.NoError(t, err)

	require.NoError(t, manager.Delete(ctx, doomed.ID))

	results, err := manager.Recall(ctx, doomed.Text, 10, 0)
	require.NoError(t, err)
	for _, result := range results {
		assert.NotEqual(t, doomed.ID, result.Record.ID)
	}

	records, err := manager.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keep.ID, records[0].ID)

	// Deletion is permanent; a second delete is NotFound.
	assert.ErrorIs(t, manager.Delete(ctx, doomed.ID), memory.ErrNotFound)
}

func TestDeleteByDisplayIDPrefix(t *testing.T) {
	ctx := context.Background()
	manager, store, _ := newTestManager(t)

	rec, err := manager.Add(ctx, "bike lock code 4821", nil)
	require.NoError(t, err)

	require.NoError(t, manager.Delete(ctx, rec.DisplayID()))
	assert.Equal(t, 0, store.Count())
}

func TestDeleteUnknownAndShortIDs(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	_, err := manager.Add(ctx, "passport in blue suitcase", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, manager.Delete(ctx, uuid.New().String()), memory.ErrNotFound)
	assert.ErrorIs(t, manager.Delete(ctx, "ab"), memory.ErrNotFound)
}

func TestGetResolvesPrefix(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	rec, err := manager.Add(ctx, "meter reading 48213", nil)
	require.NoError(t, err)

	got, err := manager.Get(ctx, rec.DisplayID())
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = manager.Get(ctx, "ffff")
	if err == nil {
		// A real uuid starting with ffff is possible, just absurdly
		// unlikely; only assert the error kind when it fired.
		t.Skip("generated id collided with probe prefix")
	}
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestClearCountsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	for _, text := range []string{"one", "two", "three"} {
		_, err := manager.Add(ctx, text, nil)
		require.NoError(t, err)
	}

	removed, err := manager.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	removed, err = manager.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	records, err := manager.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListFilterLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	manager, store, embedder := newTestManager(t)

	oldest := storeRecord(t, store, embedder, "passport in blue suitcase", time.Now().AddDate(0, 0, -3))
	middle := storeRecord(t, store, embedder, "wallet on kitchen counter", time.Now().AddDate(0, 0, -2))
	newest := storeRecord(t, store, embedder, "spare Passport photos in desk", time.Now().AddDate(0, 0, -1))

	records, err := manager.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID},
		[]string{records[0].ID, records[1].ID, records[2].ID})

	// Substring filter is case-insensitive and unscored.
	records, err = manager.List(ctx, "passport", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newest.ID, records[0].ID)
	assert.Equal(t, oldest.ID, records[1].ID)

	records, err = manager.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, newest.ID, records[0].ID)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	manager, store, _ := newTestManager(t)

	stats, err := manager.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.True(t, stats.MostRecent.IsZero())
	assert.Equal(t, "mock", stats.Model)
	assert.Equal(t, 384, stats.Dimensions)
	assert.Equal(t, store.Location(), stats.Location)

	before := time.Now()
	_, err = manager.Add(ctx, "passport in blue suitcase", nil)
	require.NoError(t, err)

	stats, err = manager.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.False(t, stats.MostRecent.Before(before))
}
