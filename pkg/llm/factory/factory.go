package factory

import (
	"fmt"

	"crop-advisor-be/pkg/llm"
	"crop-advisor-be/pkg/llm/huggingface"
	"crop-advisor-be/pkg/llm/ollama"
)

func NewProvider(providerType, modelName, baseURL, apiToken string) (llm.Provider, error) {
	switch providerType {
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiToken, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
