package mapper

import (
	"docchat-be/internal/entity"
	"docchat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &entity.DocumentEmbedding{
		Id:         e.Id,
		Source:     e.Source,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Embedding:  e.Embedding.Slice(),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}
	return &model.DocumentEmbedding{
		Id:         e.Id,
		Source:     e.Source,
		ChunkIndex: e.ChunkIndex,
		Content:    e.Content,
		Embedding:  pgvector.NewVector(e.Embedding),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntities(models []*model.DocumentEmbedding) []*entity.DocumentEmbedding {
	entities := make([]*entity.DocumentEmbedding, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
