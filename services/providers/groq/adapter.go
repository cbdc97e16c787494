package groq

import (
	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/providers/openaicompat"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-8b-instant"
)

// Adapter implements the HelloProvider interface for Groq. Groq exposes
// an OpenAI-compatible chat completions API, so the adapter is the shared
// client bound to Groq's endpoint and model.
type Adapter struct {
	*openaicompat.Client
}

// New creates a new Groq adapter
func New(config providers.ProviderConfig) *Adapter {
	return &Adapter{
		Client: openaicompat.New(providers.ProviderGroq, defaultModel, defaultBaseURL, config),
	}
}
