package memory

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHybridScoreWorkedExample(t *testing.T) {
	// Two near-identical notes, one 1 day old with similarity 0.92,
	// one 30 days old with similarity 0.95. Recency must flip the
	// ranking despite the older note's higher raw similarity.
	cfg := &Config{
		SimilarityWeight: 0.7,
		RecencyWeight:    0.3,
		RecencyDecayRate: 0.1,
	}
	m := NewManager(nil, nil, cfg)
	now := time.Now()

	recencyFresh := m.recencyScore(now.Add(-24*time.Hour), now)
	recencyStale := m.recencyScore(now.Add(-30*24*time.Hour), now)
	assert.InDelta(t, 0.9048, recencyFresh, 0.001)
	assert.InDelta(t, 0.0498, recencyStale, 0.001)

	finalFresh := cfg.SimilarityWeight*0.92 + cfg.RecencyWeight*recencyFresh
	finalStale := cfg.SimilarityWeight*0.95 + cfg.RecencyWeight*recencyStale
	assert.InDelta(t, 0.9155, finalFresh, 0.001)
	assert.InDelta(t, 0.6799, finalStale, 0.001)
	assert.Greater(t, finalFresh, finalStale)
}

func TestRecencyScoreBounds(t *testing.T) {
	m := NewManager(nil, nil, DefaultConfig)
	now := time.Now()

	t.Run("age zero scores one", func(t *testing.T) {
		assert.InDelta(t, 1.0, m.recencyScore(now, now), 1e-9)
	})

	t.Run("future timestamps clamp to one", func(t *testing.T) {
		// Clock skew or imported fixtures must not inflate the
		// score above 1.
		score := m.recencyScore(now.Add(72*time.Hour), now)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("monotonically decreasing in age", func(t *testing.T) {
		prev := 1.1
		for days := 0; days <= 365; days += 7 {
			score := m.recencyScore(now.AddDate(0, 0, -days), now)
			assert.Less(t, score, prev, "age %d days", days)
			assert.GreaterOrEqual(t, score, 0.0)
			prev = score
		}
	})

	t.Run("zero timestamp scores neutral", func(t *testing.T) {
		assert.Equal(t, neutralRecency, m.recencyScore(time.Time{}, now))
	})

	t.Run("zero decay rate never fades", func(t *testing.T) {
		flat := NewManager(nil, nil, &Config{RecencyDecayRate: 0})
		score := flat.recencyScore(now.AddDate(-1, 0, 0), now)
		assert.InDelta(t, 1.0, score, 1e-9)
	})
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 0.0, clamp01(math.Inf(-1)))
	assert.Equal(t, 0.5, clamp01(0.5))
	assert.Equal(t, 1.0, clamp01(1.0000001))
	assert.Equal(t, 1.0, clamp01(math.Inf(1)))
}
