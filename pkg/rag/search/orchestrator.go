package search

import (
	"context"
	"fmt"
	"strconv"

	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/store"
)

// Orchestrator serves default-corpus retrieval: it embeds the question and
// runs a cosine-similarity query against the pgvector store. It implements
// retrieval.VectorSearcher.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	embeddings        contract.DocumentEmbeddingRepository
	logger            logger.ILogger
}

func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	embeddings contract.DocumentEmbeddingRepository,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		embeddings:        embeddings,
		logger:            log,
	}
}

// Search returns the k chunks closest to the query, in the order the vector
// backend ranked them. No local re-ranking happens here.
func (o *Orchestrator) Search(ctx context.Context, query string, k int) ([]store.Chunk, error) {
	embeddingRes, err := o.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	results, err := o.embeddings.SearchSimilar(ctx, embeddingRes.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	o.logger.Debug("search", "vector search completed", map[string]interface{}{
		"top_k":   k,
		"results": len(results),
	})

	chunks := make([]store.Chunk, len(results))
	for i, r := range results {
		chunks[i] = store.Chunk{
			Text: r.Content,
			Metadata: map[string]string{
				"source":      r.Source,
				"chunk_index": strconv.Itoa(r.ChunkIndex),
			},
		}
	}
	return chunks, nil
}
