package retrieval

import (
	"context"
	"errors"
	"testing"

	"docchat-be/pkg/rag/lexical"
	"docchat-be/pkg/store"
)

type fakeVectorSearcher struct {
	chunks []store.Chunk
	err    error
	calls  int
}

func (f *fakeVectorSearcher) Search(ctx context.Context, query string, k int) ([]store.Chunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.chunks) > k {
		return f.chunks[:k], nil
	}
	return f.chunks, nil
}

func TestRetrieveDelegatesToVectorByDefault(t *testing.T) {
	vector := &fakeVectorSearcher{chunks: []store.Chunk{{Text: "from the vector corpus"}}}
	router := NewRouter(lexical.NewIndex(), vector)

	chunks, err := router.Retrieve(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if vector.calls != 1 {
		t.Errorf("vector searcher called %d times, want 1", vector.calls)
	}
	if len(chunks) != 1 || chunks[0].Text != "from the vector corpus" {
		t.Errorf("unexpected chunks: %v", chunks)
	}
	if router.UsingUploadedCorpus() {
		t.Error("router should report default corpus with no upload")
	}
}

func TestRetrievePrefersUploadedCorpus(t *testing.T) {
	vector := &fakeVectorSearcher{chunks: []store.Chunk{{Text: "vector result"}}}
	idx := lexical.NewIndex()
	idx.Index([]store.Chunk{
		{Text: "The warranty lasts two years."},
		{Text: "Unrelated shipping details."},
	})
	router := NewRouter(idx, vector)

	chunks, err := router.Retrieve(context.Background(), "How long is the warranty?", 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if vector.calls != 0 {
		t.Error("vector searcher must not be called while an uploaded corpus is active")
	}
	if len(chunks) == 0 || chunks[0].Text != "The warranty lasts two years." {
		t.Errorf("top chunk = %+v, want the warranty sentence", chunks)
	}
	if !router.UsingUploadedCorpus() {
		t.Error("router should report uploaded corpus as active")
	}
}

func TestRetrievePropagatesVectorErrors(t *testing.T) {
	backendErr := errors.New("index unavailable")
	router := NewRouter(lexical.NewIndex(), &fakeVectorSearcher{err: backendErr})

	_, err := router.Retrieve(context.Background(), "q", 5)
	if !errors.Is(err, backendErr) {
		t.Errorf("expected wrapped backend error, got %v", err)
	}
}

func TestRetrieveRevertsAfterReset(t *testing.T) {
	vector := &fakeVectorSearcher{chunks: []store.Chunk{{Text: "vector result"}}}
	idx := lexical.NewIndex()
	idx.Index([]store.Chunk{{Text: "uploaded"}})
	router := NewRouter(idx, vector)

	idx.Reset()
	chunks, err := router.Retrieve(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if vector.calls != 1 || len(chunks) != 1 || chunks[0].Text != "vector result" {
		t.Errorf("retrieval did not revert to the vector corpus: %v", chunks)
	}
}
