package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docchat-be/internal/config"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/implementation"
	"docchat-be/pkg/database"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/utils"

	"github.com/google/uuid"
)

// Seeds the default corpus from a directory of plain-text files. Each file
// becomes one source; re-running replaces that source's chunks.
func main() {
	cfg := config.Load()

	dir := "corpus"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}
	repo := implementation.NewDocumentEmbeddingRepository(db)

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("Error: Failed to read corpus directory %s: %v", dir, err)
	}

	ctx := context.Background()
	total := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warn: Skipping %s: %v", entry.Name(), err)
			continue
		}

		source := strings.TrimSuffix(entry.Name(), ".txt")
		chunks, err := utils.SplitText(string(raw), cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)
		if err != nil {
			log.Fatalf("Error: Failed to chunk %s: %v", entry.Name(), err)
		}

		if err := repo.DeleteBySource(ctx, source); err != nil {
			log.Fatalf("Error: Failed to clear previous chunks for %s: %v", source, err)
		}

		for i, chunk := range chunks {
			res, err := provider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Fatalf("Error: Embedding failed for %s chunk %d: %v", source, i, err)
			}

			doc := &entity.DocumentEmbedding{
				Id:         uuid.New(),
				Source:     source,
				ChunkIndex: i,
				Content:    chunk,
				Embedding:  res.Embedding.Values,
			}
			if err := repo.Create(ctx, doc); err != nil {
				log.Fatalf("Error: Failed to store %s chunk %d: %v", source, i, err)
			}
		}

		log.Printf("Seeded %s (%d chunks)", source, len(chunks))
		total += len(chunks)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to count corpus: %v", err)
	}
	log.Printf("✅ Success: Seeded %d chunks. Corpus now holds %d embeddings.", total, count)
}
