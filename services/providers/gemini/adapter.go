package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/probelabs/llm-probe/services/providers"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// Adapter implements the HelloProvider interface for the Google
// Generative Language API. Unlike the chat-completions vendors, Gemini
// authenticates with the API key in the query string.
type Adapter struct {
	config     providers.ProviderConfig
	httpClient *http.Client
}

// New creates a new Gemini adapter
func New(config providers.ProviderConfig) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	return &Adapter{
		config:     config,
		httpClient: config.Client(),
	}
}

// Name returns the provider identity
func (a *Adapter) Name() providers.ProviderID {
	return providers.ProviderGemini
}

// Model returns the hardcoded model identifier
func (a *Adapter) Model() string {
	return defaultModel
}

// HasCredential reports whether an API key was configured
func (a *Adapter) HasCredential() bool {
	return a.config.APIKey != ""
}

// Hello sends the fixed prompt and returns the normalized result.
// The credential is checked before any network call; transport errors
// from the HTTP client propagate unchanged.
func (a *Adapter) Hello(ctx context.Context) (*providers.HelloResult, error) {
	if !a.HasCredential() {
		return nil, providers.NewMissingCredentialError(a.Name(), providers.CredentialEnvVar(a.Name()))
	}

	reqBody, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: providers.HelloPrompt}}},
		},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		a.config.BaseURL, defaultModel, url.QueryEscape(a.config.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, providers.NewHTTPError(a.Name(), httpResp.StatusCode, string(respBody))
	}

	return providers.NewHelloResult(a.Name(), defaultModel, extractText(respBody)), nil
}

// extractText pulls candidates[0].content.parts[0].text from the response
// body. Absent fields and unparseable bodies degrade to the fallback
// greeting rather than erroring.
func extractText(body []byte) string {
	var parsed geminiGenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return providers.FallbackGreeting
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return providers.FallbackGreeting
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return providers.FallbackGreeting
	}

	return text
}

// Gemini-specific request/response types

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}
