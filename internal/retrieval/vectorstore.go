package retrieval

import "errors"

// ErrDimensionMismatch is returned when a vector's length disagrees with the
// index's established dimensionality. This is a configuration error: it
// means the index was built with a different embedding model than the one
// now in use, and the index must be rebuilt.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Entry is one (document, vector) pair stored in a VectorIndex. Entries are
// created by the ingestor and never mutated afterwards.
type Entry struct {
	ID     string
	ItemID string
	Text   string
	Vector []float32
}

// ScoredMatch is an Entry with its similarity to a query vector attached.
// Higher scores mean more similar; cosine similarity yields [-1, 1].
type ScoredMatch struct {
	Entry
	Score float32
}

// VectorIndex stores embedded documents and answers nearest-neighbor queries.
// The default implementation is the in-memory flat scan; alternate backends
// must preserve the same ranking contract: results ordered by descending
// cosine similarity, ties broken by insertion order.
type VectorIndex interface {
	// Add appends entries. The first added vector establishes the index
	// dimensionality; any later disagreement fails with ErrDimensionMismatch
	// and leaves the index unchanged.
	Add(entries []Entry) error

	// Query returns up to k entries ranked by descending similarity to the
	// given vector. Fewer than k results are returned only when the index
	// holds fewer than k entries.
	Query(vector []float32, k int) ([]ScoredMatch, error)

	// Size returns the number of entries currently stored.
	Size() int
}
