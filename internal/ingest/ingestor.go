package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brewkit/brewkit/internal/catalog"
	"github.com/brewkit/brewkit/internal/retrieval"
)

// Embedder generates embeddings for document batches.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Index receives the ingested entries.
type Index interface {
	Add(entries []retrieval.Entry) error
}

// Ingestor converts a menu snapshot into embedded documents and populates
// the vector index. It runs exactly once at startup, before any chat traffic
// is served; any failure aborts startup so a partial index is never queried.
// Re-running against a non-fresh index duplicates entries; callers must
// ingest into a fresh index only.
type Ingestor struct {
	embedder Embedder
	index    Index
	logger   *slog.Logger
}

// NewIngestor creates an Ingestor with the given dependencies.
func NewIngestor(embedder Embedder, index Index) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		index:    index,
		logger:   slog.Default(),
	}
}

// Run encodes every item, embeds the documents as one batch, and submits all
// entries to the index in a single Add call. Returns the indexed count.
func (in *Ingestor) Run(ctx context.Context, items []catalog.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	docs := make([]catalog.Document, len(items))
	texts := make([]string, len(items))
	for i, item := range items {
		docs[i] = catalog.Encode(item)
		texts[i] = docs[i].Text
	}

	vectors, err := in.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding menu documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedding count mismatch: got %d vectors for %d documents", len(vectors), len(docs))
	}

	entries := make([]retrieval.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = retrieval.Entry{
			ID:     uuid.New().String(),
			ItemID: doc.ItemID,
			Text:   doc.Text,
			Vector: vectors[i],
		}
	}

	if err := in.index.Add(entries); err != nil {
		return 0, fmt.Errorf("indexing menu documents: %w", err)
	}

	in.logger.Info("menu ingested", "items", len(entries))
	return len(entries), nil
}
