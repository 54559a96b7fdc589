package retrieval

import "context"

// Retriever combines embedding and vector search to find menu context
// relevant to a user query.
type Retriever struct {
	embedder *Embedder
	index    VectorIndex
}

// NewRetriever creates a Retriever backed by the given Embedder and VectorIndex.
func NewRetriever(embedder *Embedder, index VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve embeds the query and returns the top-K most similar entries.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]ScoredMatch, error) {
	if topK <= 0 {
		topK = 5
	}
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.index.Query(vec, topK)
}
