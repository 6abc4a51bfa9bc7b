package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crop-advisor-be/pkg/llm"
)

func TestGenerate(t *testing.T) {
	t.Run("returns first candidate", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody generateRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			json.NewEncoder(w).Encode([]generateResult{
				{GeneratedText: "Rice grows best in flooded paddies."},
				{GeneratedText: "ignored second candidate"},
			})
		}))
		defer server.Close()

		p := NewHuggingFaceProvider("token-123", server.URL, "org/test-model")
		got, err := p.Generate(context.Background(), "tell me about rice")
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if got != "Rice grows best in flooded paddies." {
			t.Errorf("Generate = %q", got)
		}
		if gotPath != "/org/test-model" {
			t.Errorf("request path = %q, want /org/test-model", gotPath)
		}
		if gotAuth != "Bearer token-123" {
			t.Errorf("Authorization = %q", gotAuth)
		}
		if gotBody.Inputs != "tell me about rice" {
			t.Errorf("request inputs = %q", gotBody.Inputs)
		}
	})

	t.Run("model override option", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode([]generateResult{{GeneratedText: "ok"}})
		}))
		defer server.Close()

		p := NewHuggingFaceProvider("", server.URL, "default-model")
		if _, err := p.Generate(context.Background(), "hi", llm.WithModel("other-model")); err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if gotPath != "/other-model" {
			t.Errorf("request path = %q, want /other-model", gotPath)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		p := NewHuggingFaceProvider("", server.URL, "m")
		if _, err := p.Generate(context.Background(), "hi"); err == nil {
			t.Error("expected error for 503 response")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "not a list"}`))
		}))
		defer server.Close()

		p := NewHuggingFaceProvider("", server.URL, "m")
		if _, err := p.Generate(context.Background(), "hi"); err == nil {
			t.Error("expected error for non-list response")
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		p := NewHuggingFaceProvider("", server.URL, "m")
		if _, err := p.Generate(context.Background(), "hi"); err == nil {
			t.Error("expected error for empty candidate list")
		}
	})
}

func TestChatFlattensHistory(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode([]generateResult{{GeneratedText: "answer"}})
	}))
	defer server.Close()

	p := NewHuggingFaceProvider("", server.URL, "m")
	history := []llm.Message{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
	}
	if _, err := p.Chat(context.Background(), history); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}

	want := "user: first question\nassistant: first answer\n"
	if gotBody.Inputs != want {
		t.Errorf("flattened prompt = %q, want %q", gotBody.Inputs, want)
	}
}
