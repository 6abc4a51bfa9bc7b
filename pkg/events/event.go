package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FORUM_POST_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeForumPostCreated = "FORUM_POST_CREATED"

// NewForumPostCreated builds the event published after a forum post is
// persisted successfully.
func NewForumPostCreated(postID int, name, topic string) Event {
	return BaseEvent{
		Type: TypeForumPostCreated,
		Data: map[string]interface{}{
			"post_id": postID,
			"name":    name,
			"topic":   topic,
		},
		OccurredAt: time.Now(),
	}
}
