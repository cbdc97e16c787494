package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ProviderID identifies one of the supported text-generation vendors.
type ProviderID string

const (
	// ProviderGemini is the Google Generative Language API
	ProviderGemini ProviderID = "gemini"

	// ProviderOpenAI is the OpenAI chat completions API
	ProviderOpenAI ProviderID = "openai"

	// ProviderGroq is Groq's OpenAI-compatible chat completions API
	ProviderGroq ProviderID = "groq"
)

// String returns the provider identifier as a string
func (p ProviderID) String() string {
	return string(p)
}

// ParseProviderID resolves a case-insensitive provider name into a ProviderID.
// Anything outside the closed provider set fails with an unsupported_provider error.
func ParseProviderID(name string) (ProviderID, error) {
	switch ProviderID(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGroq:
		return ProviderGroq, nil
	default:
		return "", NewProviderError("", CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider %q (expected one of: gemini, openai, groq)", name), 0, nil)
	}
}

// HelloResult is the normalized response shape shared by all providers.
// Success is always true on any non-error return; failures are returned
// as errors, never as a success:false value.
type HelloResult struct {
	// Success is always true for a returned result
	Success bool `json:"success"`

	// Provider that produced this result
	Provider ProviderID `json:"provider"`

	// Model identifier the provider used
	Model string `json:"model"`

	// Message is the extracted greeting text, whitespace-trimmed
	Message string `json:"message"`
}

// NewHelloResult builds a HelloResult, trimming surrounding whitespace
// from the message.
func NewHelloResult(provider ProviderID, model, message string) *HelloResult {
	return &HelloResult{
		Success:  true,
		Provider: provider,
		Model:    model,
		Message:  strings.TrimSpace(message),
	}
}

// HelloPrompt is the fixed prompt sent to every provider.
const HelloPrompt = "Say a short hello"

// FallbackGreeting substitutes for responses whose expected text field is
// absent or unparseable. Malformed vendor responses degrade to this literal
// instead of erroring.
const FallbackGreeting = "Hello!"

// HelloProvider produces a HelloResult for its vendor, or fails.
type HelloProvider interface {
	// Name returns the provider identity
	Name() ProviderID

	// Model returns the hardcoded model identifier this provider calls
	Model() string

	// HasCredential reports whether the provider's credential is present.
	// Presence, not validity, gates auto-selection eligibility.
	HasCredential() bool

	// Hello sends the fixed prompt and returns the normalized result
	Hello(ctx context.Context) (*HelloResult, error)
}

// ProviderConfig holds explicit per-provider configuration. Credentials and
// endpoint overrides are resolved at construction, not read ambiently.
type ProviderConfig struct {
	// APIKey for authentication; empty means the provider is not credentialed
	APIKey string

	// BaseURL for the API (optional override)
	BaseURL string

	// Timeout for the single HTTP call
	Timeout time.Duration

	// HTTPClient overrides the default client (used in tests)
	HTTPClient *http.Client
}

// Client returns the HTTP client to use for requests, building a default
// one from Timeout when none was injected.
func (c ProviderConfig) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
