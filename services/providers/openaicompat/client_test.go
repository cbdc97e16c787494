package openaicompat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/probelabs/llm-probe/services/providers"
)

func newTestClient(baseURL string) *Client {
	return New(providers.ProviderOpenAI, "gpt-4o-mini", "https://api.openai.com/v1",
		providers.ProviderConfig{APIKey: "test-key", BaseURL: baseURL})
}

func TestNew_Defaults(t *testing.T) {
	client := New(providers.ProviderGroq, "llama-3.1-8b-instant", "https://api.groq.com/openai/v1",
		providers.ProviderConfig{APIKey: "k"})

	if client.Name() != providers.ProviderGroq {
		t.Errorf("Name() = %s, want groq", client.Name())
	}

	if client.Model() != "llama-3.1-8b-instant" {
		t.Errorf("Model() = %s", client.Model())
	}

	if client.config.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("BaseURL = %s, want default", client.config.BaseURL)
	}
}

func TestHello_MissingCredential(t *testing.T) {
	client := New(providers.ProviderOpenAI, "gpt-4o-mini", "https://api.openai.com/v1", providers.ProviderConfig{})

	_, err := client.Hello(context.Background())
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	if !providers.IsMissingCredential(err) {
		t.Errorf("Expected missing_credential error, got %v", err)
	}
}

func TestHello_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("Authorization header missing or invalid")
		}

		body, _ := io.ReadAll(r.Body)
		var req chatCompletionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("Failed to parse request body: %v", err)
		}

		if req.Model != "gpt-4o-mini" {
			t.Errorf("Model = %s, want gpt-4o-mini", req.Model)
		}

		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != providers.HelloPrompt {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		// temperature must be serialized explicitly as 0
		var raw map[string]json.RawMessage
		json.Unmarshal(body, &raw)
		if string(raw["temperature"]) != "0" {
			t.Errorf("temperature = %s, want 0", raw["temperature"])
		}

		resp := chatCompletionResponse{
			Choices: []chatChoice{
				{Message: chatMessage{Role: "assistant", Content: " Hi there! "}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	if result.Provider != providers.ProviderOpenAI {
		t.Errorf("Provider = %s, want openai", result.Provider)
	}

	if result.Message != "Hi there!" {
		t.Errorf("Message = %q, want trimmed greeting", result.Message)
	}
}

func TestHello_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Hello(context.Background())
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	provErr, ok := err.(*providers.ProviderError)
	if !ok {
		t.Fatalf("Expected ProviderError, got %T", err)
	}

	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", provErr.StatusCode)
	}
}

func TestHello_EmptyChoicesFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	if result.Message != providers.FallbackGreeting {
		t.Errorf("Message = %q, want %q", result.Message, providers.FallbackGreeting)
	}
}

func TestHello_MalformedBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	if result.Message != providers.FallbackGreeting {
		t.Errorf("Message = %q, want %q", result.Message, providers.FallbackGreeting)
	}
}
