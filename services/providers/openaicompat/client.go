// Package openaicompat implements the chat-completions flow shared by the
// OpenAI-compatible vendors. Each vendor package binds this client to its
// own identity, base URL and model, so the wire format lives in one place.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/probelabs/llm-probe/services/providers"
)

// Client performs a single chat completion against an OpenAI-compatible
// endpoint and maps the response into the normalized result shape.
type Client struct {
	name       providers.ProviderID
	model      string
	config     providers.ProviderConfig
	httpClient *http.Client
}

// New creates a client bound to a vendor identity, model and default
// base URL. The config's BaseURL, when set, overrides the default.
func New(name providers.ProviderID, model, defaultBaseURL string, config providers.ProviderConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	return &Client{
		name:       name,
		model:      model,
		config:     config,
		httpClient: config.Client(),
	}
}

// Name returns the bound provider identity
func (c *Client) Name() providers.ProviderID {
	return c.name
}

// Model returns the bound model identifier
func (c *Client) Model() string {
	return c.model
}

// HasCredential reports whether an API key was configured
func (c *Client) HasCredential() bool {
	return c.config.APIKey != ""
}

// Hello sends the fixed prompt as a single user message with temperature 0
// and returns the normalized result. The credential is checked before any
// network call; transport errors propagate unchanged.
func (c *Client) Hello(ctx context.Context) (*providers.HelloResult, error) {
	if !c.HasCredential() {
		return nil, providers.NewMissingCredentialError(c.name, providers.CredentialEnvVar(c.name))
	}

	reqBody, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: providers.HelloPrompt},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, providers.NewHTTPError(c.name, httpResp.StatusCode, string(respBody))
	}

	return providers.NewHelloResult(c.name, c.model, extractText(respBody)), nil
}

// extractText pulls choices[0].message.content from the response body.
// Absent fields and unparseable bodies degrade to the fallback greeting.
func extractText(body []byte) string {
	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return providers.FallbackGreeting
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return providers.FallbackGreeting
	}

	return parsed.Choices[0].Message.Content
}

// Chat completions wire types

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
