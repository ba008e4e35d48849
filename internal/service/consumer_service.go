package service

import (
	"context"
	"encoding/json"

	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the embedding topic: each message is one chunk to
// embed and upsert into the default corpus.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddings        contract.DocumentEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddings contract.DocumentEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddings:        embeddings,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	embeddingRes, err := cs.embeddingProvider.Generate(ctx, payload.Content, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.logger.Error("consumer", "embedding generation failed", map[string]interface{}{
			"source":      payload.Source,
			"chunk_index": payload.ChunkIndex,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	doc := &entity.DocumentEmbedding{
		Id:         uuid.New(),
		Source:     payload.Source,
		ChunkIndex: payload.ChunkIndex,
		Content:    payload.Content,
		Embedding:  embeddingRes.Embedding.Values,
	}
	if err := cs.embeddings.Create(ctx, doc); err != nil {
		cs.logger.Error("consumer", "failed to store embedding", map[string]interface{}{
			"source":      payload.Source,
			"chunk_index": payload.ChunkIndex,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "embedded document chunk", map[string]interface{}{
		"source":      payload.Source,
		"chunk_index": payload.ChunkIndex,
	})
	msg.Ack()
}
