package memory

// Config holds the scoring and search tunables. The Manager treats a
// Config as immutable for the duration of a process run.
type Config struct {
	// SimilarityWeight scales the semantic similarity component of
	// the hybrid score. By convention SimilarityWeight and
	// RecencyWeight sum to 1, but this is not enforced.
	SimilarityWeight float64

	// RecencyWeight scales the recency component.
	RecencyWeight float64

	// RecencyDecayRate controls how fast memories fade:
	// recency = exp(-RecencyDecayRate * ageDays). Must be >= 0.
	// At 0.1, a week-old memory scores ~0.5.
	RecencyDecayRate float64

	// TopKRetrieval is how many candidates to over-fetch from the
	// store before re-ranking. Raised to the requested result limit
	// when that is larger.
	TopKRetrieval int

	// TopNResults is the default number of results returned by
	// Recall when the caller does not specify a limit.
	TopNResults int

	// ConfidenceThreshold is the default minimum hybrid score for a
	// candidate to be returned.
	ConfidenceThreshold float64
}

// DefaultConfig mirrors the tuning that works well for a personal
// note collection with a small local embedding model.
var DefaultConfig = &Config{
	SimilarityWeight:    0.7,
	RecencyWeight:       0.3,
	RecencyDecayRate:    0.1,
	TopKRetrieval:       10,
	TopNResults:         3,
	ConfidenceThreshold: 0.3,
}
