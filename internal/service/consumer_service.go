package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/model"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/websocket"
	"crop-advisor-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains forum events off the in-process bus and turns them
// into live notifications for connected clients.
type consumerService struct {
	subscriber message.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, hub *websocket.Hub, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, events.TypeForumPostCreated)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ForumPostCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("ConsumerService", "Forum post created", map[string]interface{}{
		"post_id": payload.PostId,
		"topic":   payload.Topic,
	})

	if cs.hub != nil {
		cs.hub.Broadcast(model.Notification{
			TypeCode: events.TypeForumPostCreated,
			Title:    "New forum discussion",
			Message:  fmt.Sprintf("%s started: %s", payload.Name, payload.Topic),
			Metadata: map[string]interface{}{
				"post_id": payload.PostId,
			},
			CreatedAt: time.Now(),
		})
	}

	msg.Ack()
}
