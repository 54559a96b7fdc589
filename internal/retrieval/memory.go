package retrieval

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Compile-time check that MemoryIndex implements VectorIndex.
var _ VectorIndex = (*MemoryIndex)(nil)

// MemoryIndex is the in-memory flat-scan implementation of VectorIndex.
// Writes happen once during ingestion; after that the index serves unbounded
// concurrent reads. The RWMutex covers the deployment where ingestion and
// queries could ever overlap.
type MemoryIndex struct {
	mu      sync.RWMutex
	dim     int
	entries []Entry
}

// NewMemoryIndex creates an empty index. Dimensionality is established by
// the first Add.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add appends entries to the index. All vectors are validated against the
// established dimensionality before anything is appended, so a mismatch
// leaves the index unchanged.
func (ix *MemoryIndex) Add(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	dim := ix.dim
	if dim == 0 {
		dim = len(entries[0].Vector)
	}
	for _, e := range entries {
		if len(e.Vector) != dim {
			return fmt.Errorf("entry %s has dimension %d, index expects %d: %w",
				e.ID, len(e.Vector), dim, ErrDimensionMismatch)
		}
	}

	ix.dim = dim
	ix.entries = append(ix.entries, entries...)
	return nil
}

// Query scans all entries and returns the k most similar to vector, ordered
// by descending cosine similarity. Ties keep insertion order.
func (ix *MemoryIndex) Query(vector []float32, k int) ([]ScoredMatch, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.dim != 0 && len(vector) != ix.dim {
		return nil, fmt.Errorf("query vector has dimension %d, index expects %d: %w",
			len(vector), ix.dim, ErrDimensionMismatch)
	}

	queryNorm := norm(vector)
	matches := make([]ScoredMatch, len(ix.entries))
	for i, e := range ix.entries {
		matches[i] = ScoredMatch{Entry: e, Score: cosine(vector, e.Vector, queryNorm)}
	}

	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Size returns the number of stored entries.
func (ix *MemoryIndex) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// norm returns the L2 norm of a vector.
func norm(v []float32) float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	return float32(math.Sqrt(sum))
}

// cosine computes cosine similarity as dot(a,b) / (aNorm * bNorm).
// aNorm is the precomputed L2 norm of vector a. A zero-magnitude vector on
// either side yields 0.
func cosine(a, b []float32, aNorm float32) float32 {
	if len(a) != len(b) || aNorm == 0 {
		return 0
	}
	var dot float64
	var bNormSq float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		bNormSq += float64(b[i]) * float64(b[i])
	}
	bNorm := math.Sqrt(bNormSq)
	if bNorm == 0 {
		return 0
	}
	return float32(dot / (float64(aNorm) * bNorm))
}
