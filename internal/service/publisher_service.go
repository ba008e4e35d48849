package service

import (
	"context"
	"encoding/json"

	"docchat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService queues document chunks for background embedding.
type IPublisherService interface {
	PublishChunks(ctx context.Context, source string, chunks []string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// PublishChunks emits one embedding job per chunk. Jobs are independent; a
// failed chunk does not block its siblings.
func (ps *publisherService) PublishChunks(ctx context.Context, source string, chunks []string) error {
	for i, chunk := range chunks {
		payload, err := json.Marshal(dto.PublishEmbedChunkMessage{
			Source:     source,
			ChunkIndex: i,
			Content:    chunk,
		})
		if err != nil {
			return err
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
			return err
		}
	}
	return nil
}
