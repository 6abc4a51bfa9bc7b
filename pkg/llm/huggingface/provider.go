package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crop-advisor-be/pkg/llm"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFaceProvider calls the Hugging Face text-generation inference API.
// The endpoint answers a raw prompt with a list of generated_text candidates.
type HuggingFaceProvider struct {
	apiToken string
	baseURL  string
	model    string
	client   *http.Client
}

type generateRequest struct {
	Inputs string `json:"inputs"`
}

type generateResult struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFaceProvider(apiToken, baseURL, model string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &HuggingFaceProvider{
		apiToken: apiToken,
		baseURL:  baseURL,
		model:    model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ensure HuggingFaceProvider implements Provider
var _ llm.Provider = &HuggingFaceProvider{}

func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Model: p.model,
	}
	for _, o := range options {
		o(opts)
	}

	jsonData, err := json.Marshal(generateRequest{Inputs: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, opts.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiToken))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// The inference API answers with a list of candidates; anything else is
	// treated as a malformed response.
	var results []generateResult
	if err := json.Unmarshal(bodyBytes, &results); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 || results[0].GeneratedText == "" {
		return "", fmt.Errorf("empty generation from huggingface api")
	}

	return results[0].GeneratedText, nil
}

// Chat flattens the history into a single prompt. The inference endpoint is
// prompt-in/text-out, so roles are rendered as labeled lines.
func (p *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var prompt strings.Builder
	for _, msg := range history {
		prompt.WriteString(msg.Role)
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	return p.Generate(ctx, prompt.String(), options...)
}
