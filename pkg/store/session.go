package store

import (
	"crop-advisor-be/pkg/llm"
	"crop-advisor-be/pkg/ml"
)

// AdvisorySession is the per-user chat state created when a recommendation
// succeeds. It pins the crop and the exact measurements the advice is about,
// so follow-up questions keep their grounding. Cleared on logout, replaced
// by the next recommendation, never shared across users.
type AdvisorySession struct {
	ID       string           `json:"id"`
	UserID   string           `json:"user_id"`
	Crop     string           `json:"crop"`
	Features ml.FeatureVector `json:"features"`
	Language string           `json:"language"` // "en" | "te"

	// Full conversation so far, newest last.
	History []llm.Message `json:"history"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
