package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one embedded chunk of the default corpus.
type DocumentEmbedding struct {
	Id         uuid.UUID
	Source     string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
