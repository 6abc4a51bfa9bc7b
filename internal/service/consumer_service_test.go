package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"

	"crop-advisor-be/internal/model"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/implementation"
	"crop-advisor-be/internal/websocket"
)

func TestForumPostNotificationChain(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := websocket.NewHub(nil, logger.NopLogger{})
	go hub.Run()

	client := &websocket.Client{Hub: hub, UserID: "user-1", Send: make(chan []byte, 4)}
	hub.Register(client)

	consumer := NewConsumerService(pubSub, hub, logger.NopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, consumer.Consume(ctx))

	repo := implementation.NewForumRepository(filepath.Join(t.TempDir(), "forum_data.json"), logger.NopLogger{})
	forumSvc := NewForumService(repo, pubSub, logger.NopLogger{}, 100)

	ok := forumSvc.AddPost("Anita", "Watering schedule", "How often should young mango trees be watered?")
	assert.True(t, ok)

	var raw []byte
	select {
	case raw = <-client.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification reached the websocket client")
	}

	var envelope struct {
		Type string             `json:"type"`
		Data model.Notification `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "notification", envelope.Type)
	assert.Equal(t, "FORUM_POST_CREATED", envelope.Data.TypeCode)
	assert.Equal(t, "New forum discussion", envelope.Data.Title)
	assert.Equal(t, "Anita started: Watering schedule", envelope.Data.Message)
	assert.Equal(t, float64(1), envelope.Data.Metadata["post_id"])
}

func TestConsumerIgnoresMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := websocket.NewHub(nil, logger.NopLogger{})
	go hub.Run()

	client := &websocket.Client{Hub: hub, UserID: "user-1", Send: make(chan []byte, 4)}
	hub.Register(client)

	consumer := NewConsumerService(pubSub, hub, logger.NopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, consumer.Consume(ctx))

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	assert.NoError(t, pubSub.Publish("FORUM_POST_CREATED", msg))

	select {
	case raw := <-client.Send:
		t.Fatalf("malformed event produced a notification: %s", raw)
	case <-time.After(300 * time.Millisecond):
	}
}
