package dto

import "crop-advisor-be/pkg/llm"

type SendChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

type SendChatResponse struct {
	Crop          string `json:"crop"`
	Reply         string `json:"reply"`
	HistoryLength int    `json:"history_length"`
}

type ChatHistoryResponse struct {
	Crop    string        `json:"crop"`
	History []llm.Message `json:"history"`
}
