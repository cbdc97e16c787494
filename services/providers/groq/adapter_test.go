package groq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/probelabs/llm-probe/services/providers"
)

func TestNew_Identity(t *testing.T) {
	adapter := New(providers.ProviderConfig{APIKey: "k"})

	if adapter.Name() != providers.ProviderGroq {
		t.Errorf("Name() = %s, want groq", adapter.Name())
	}

	if adapter.Model() != defaultModel {
		t.Errorf("Model() = %s, want %s", adapter.Model(), defaultModel)
	}
}

func TestHello_UsesChatCompletions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hey from Groq"}}]}`))
	}))
	defer server.Close()

	adapter := New(providers.ProviderConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := adapter.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() error = %v", err)
	}

	if result.Provider != providers.ProviderGroq {
		t.Errorf("Provider = %s, want groq", result.Provider)
	}

	if result.Message != "Hey from Groq" {
		t.Errorf("Message = %q", result.Message)
	}
}
