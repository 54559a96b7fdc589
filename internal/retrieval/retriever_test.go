package retrieval

import (
	"context"
	"testing"
)

func TestRetrieve(t *testing.T) {
	embedCalls := 0
	client := &mockEmbedClient{
		embedFn: func(_ context.Context, _, _ string) ([]float32, error) {
			embedCalls++
			return []float32{1, 0}, nil
		},
	}

	ix := NewMemoryIndex()
	if err := ix.Add([]Entry{
		{ID: "latte", Text: "Latte: espresso with milk", Vector: []float32{1, 0}},
		{ID: "tea", Text: "Iced Tea: chilled black tea", Vector: []float32{0, 1}},
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r := NewRetriever(NewEmbedder(client, "nomic-embed-text"), ix)

	matches, err := r.Retrieve(context.Background(), "milky coffee", 1)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if embedCalls != 1 {
		t.Errorf("embed called %d times, want 1", embedCalls)
	}
	if len(matches) != 1 || matches[0].ID != "latte" {
		t.Errorf("got %+v, want single latte match", matches)
	}
}

func TestRetrieveDefaultTopK(t *testing.T) {
	client := &mockEmbedClient{
		embedFn: func(_ context.Context, _, _ string) ([]float32, error) {
			return []float32{1}, nil
		},
	}

	ix := NewMemoryIndex()
	var entries []Entry
	for i := 0; i < 8; i++ {
		entries = append(entries, Entry{ID: string(rune('a' + i)), Vector: []float32{float32(i + 1)}})
	}
	if err := ix.Add(entries); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r := NewRetriever(NewEmbedder(client, "nomic-embed-text"), ix)
	matches, err := r.Retrieve(context.Background(), "anything", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(matches) != 5 {
		t.Errorf("got %d matches, want default top-5", len(matches))
	}
}
