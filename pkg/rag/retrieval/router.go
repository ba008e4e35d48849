package retrieval

import (
	"context"
	"fmt"

	"docchat-be/pkg/rag/lexical"
	"docchat-be/pkg/store"
)

// VectorSearcher is the default-corpus retrieval backend: a semantic
// similarity query over the precomputed vector index.
type VectorSearcher interface {
	Search(ctx context.Context, query string, k int) ([]store.Chunk, error)
}

// Router decides, per query, whether to serve chunks from the uploaded
// document's lexical index or delegate to the vector corpus. It owns no
// state of its own and is safe for concurrent use.
type Router struct {
	lexical *lexical.Index
	vector  VectorSearcher
}

func NewRouter(lexicalIndex *lexical.Index, vector VectorSearcher) *Router {
	return &Router{
		lexical: lexicalIndex,
		vector:  vector,
	}
}

// UsingUploadedCorpus reports which corpus the next query would hit.
func (r *Router) UsingUploadedCorpus() bool {
	return r.lexical.Active()
}

// Retrieve returns the top-k chunks for the question. With an uploaded corpus
// active it returns the lexical index's top-k with scores stripped; otherwise
// it returns the vector searcher's result verbatim, in the order the backend
// ranked it. Vector backend failures propagate to the caller unchanged: no
// local fallback, no retry.
func (r *Router) Retrieve(ctx context.Context, question string, k int) ([]store.Chunk, error) {
	if r.lexical.Active() {
		scored := r.lexical.Query(question, k)
		chunks := make([]store.Chunk, len(scored))
		for i, s := range scored {
			chunks[i] = s.Chunk
		}
		return chunks, nil
	}

	chunks, err := r.vector.Search(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return chunks, nil
}
