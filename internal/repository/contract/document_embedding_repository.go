package contract

import (
	"context"

	"docchat-be/internal/entity"
)

// DocumentEmbeddingRepository stores the default corpus in pgvector.
type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error

	// SearchSimilar returns the k embeddings closest to the query vector by
	// cosine distance, best first.
	SearchSimilar(ctx context.Context, vector []float32, k int) ([]*entity.DocumentEmbedding, error)

	// DeleteBySource removes every chunk ingested from one source document.
	DeleteBySource(ctx context.Context, source string) error

	Count(ctx context.Context) (int64, error)
}
