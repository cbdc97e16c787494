package openai

import (
	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/providers/openaicompat"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Adapter implements the HelloProvider interface for OpenAI by binding
// the shared chat-completions client to OpenAI's endpoint and model.
type Adapter struct {
	*openaicompat.Client
}

// New creates a new OpenAI adapter
func New(config providers.ProviderConfig) *Adapter {
	return &Adapter{
		Client: openaicompat.New(providers.ProviderOpenAI, defaultModel, defaultBaseURL, config),
	}
}
