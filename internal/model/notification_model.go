package model

import "time"

// Notification is the payload pushed to connected websocket clients. There
// is no notification history store; delivery is fire-and-forget.
type Notification struct {
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
