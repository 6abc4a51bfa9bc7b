package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crop-advisor-be/internal/model"
	"crop-advisor-be/internal/pkg/logger"
)

func recvMessage(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a hub message")
		return nil
	}
}

func TestBroadcastDeliversToRegisteredClients(t *testing.T) {
	hub := NewHub(nil, logger.NopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, UserID: "user-1", Send: make(chan []byte, 4)}
	hub.Register(client)

	hub.Broadcast(model.Notification{
		TypeCode: "FORUM_POST_CREATED",
		Title:    "New forum discussion",
		Message:  "Anita started: Watering schedule",
	})

	var envelope struct {
		Type string             `json:"type"`
		Data model.Notification `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(recvMessage(t, client.Send), &envelope))
	assert.Equal(t, "notification", envelope.Type)
	assert.Equal(t, "FORUM_POST_CREATED", envelope.Data.TypeCode)
	assert.Equal(t, "Anita started: Watering schedule", envelope.Data.Message)
}

func TestBroadcastDropsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, logger.NopLogger{})
	go hub.Run()

	slow := &Client{Hub: hub, UserID: "slow-user", Send: make(chan []byte, 1)}
	slow.Send <- []byte("stale") // fills the buffer

	healthy := &Client{Hub: hub, UserID: "healthy-user", Send: make(chan []byte, 4)}

	hub.Register(slow)
	hub.Register(healthy)

	// The full buffer drops the slow client; a second broadcast right after
	// must neither panic the hub goroutine nor stall on the dropped client.
	hub.Broadcast(model.Notification{TypeCode: "FORUM_POST_CREATED", Title: "first"})
	hub.Broadcast(model.Notification{TypeCode: "FORUM_POST_CREATED", Title: "second"})

	assert.NotNil(t, recvMessage(t, healthy.Send))
	assert.NotNil(t, recvMessage(t, healthy.Send))

	// The slow client keeps its buffered message, then its channel closes.
	assert.Equal(t, "stale", string(recvMessage(t, slow.Send)))
	select {
	case _, open := <-slow.Send:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("slow client's channel was never closed")
	}
}

func TestSendTargetsSingleUser(t *testing.T) {
	hub := NewHub(nil, logger.NopLogger{})
	go hub.Run()

	target := &Client{Hub: hub, UserID: "user-1", Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, UserID: "user-2", Send: make(chan []byte, 4)}
	hub.Register(target)
	hub.Register(other)

	hub.Send("user-1", model.Notification{TypeCode: "FORUM_POST_CREATED", Title: "direct"})

	assert.NotNil(t, recvMessage(t, target.Send))
	select {
	case data := <-other.Send:
		t.Fatalf("unrelated user received %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}
