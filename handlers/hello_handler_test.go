package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeProvider is a scriptable HelloProvider for handler tests
type fakeProvider struct {
	id      providers.ProviderID
	hasCred bool
	err     error
	message string
}

func (f *fakeProvider) Name() providers.ProviderID { return f.id }

func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) HasCredential() bool { return f.hasCred }

func (f *fakeProvider) Hello(ctx context.Context) (*providers.HelloResult, error) {
	if !f.hasCred {
		return nil, providers.NewMissingCredentialError(f.id, providers.CredentialEnvVar(f.id))
	}
	if f.err != nil {
		return nil, f.err
	}
	return providers.NewHelloResult(f.id, f.Model(), f.message), nil
}

func newHelloHandler(t *testing.T, forced string, candidates ...providers.HelloProvider) *HelloHandler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	sel := selector.NewWithProviders(forced, logger, candidates...)
	return NewHelloHandler(sel, logger)
}

func doHello(h *HelloHandler, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/v1/hello", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/v1/hello", strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.Hello(w, req)
	return w
}

func TestHello_SuccessWithoutBody(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini, hasCred: true, message: "Hello!"},
		&fakeProvider{id: providers.ProviderGroq},
		&fakeProvider{id: providers.ProviderOpenAI},
	)

	w := doHello(h, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result providers.HelloResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, providers.ProviderGemini, result.Provider)
	assert.Equal(t, "Hello!", result.Message)
}

func TestHello_BodyForcesProvider(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini, hasCred: true, message: "from gemini"},
		&fakeProvider{id: providers.ProviderGroq, hasCred: true, message: "from groq"},
		&fakeProvider{id: providers.ProviderOpenAI, hasCred: true, message: "from openai"},
	)

	w := doHello(h, `{"provider":"openai"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result providers.HelloResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, providers.ProviderOpenAI, result.Provider)
}

func TestHello_UnknownProviderInBody(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini, hasCred: true},
		&fakeProvider{id: providers.ProviderGroq, hasCred: true},
		&fakeProvider{id: providers.ProviderOpenAI, hasCred: true},
	)

	w := doHello(h, `{"provider":"aws"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHello_InvalidJSONBody(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini, hasCred: true},
	)

	w := doHello(h, `{provider`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHello_ForcedProviderMissingCredential(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini},
		&fakeProvider{id: providers.ProviderGroq, hasCred: true, message: "ignored"},
		&fakeProvider{id: providers.ProviderOpenAI},
	)

	w := doHello(h, `{"provider":"gemini"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "GEMINI_API_KEY")
}

func TestHello_NoProviderAvailable(t *testing.T) {
	h := newHelloHandler(t, "",
		&fakeProvider{id: providers.ProviderGemini},
		&fakeProvider{id: providers.ProviderGroq},
		&fakeProvider{id: providers.ProviderOpenAI},
	)

	w := doHello(h, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHello_UpstreamHTTPError(t *testing.T) {
	h := newHelloHandler(t, "gemini",
		&fakeProvider{
			id:      providers.ProviderGemini,
			hasCred: true,
			err:     providers.NewHTTPError(providers.ProviderGemini, 429, "rate limited"),
		},
	)

	w := doHello(h, "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream_status")
}

func TestHello_TransportError(t *testing.T) {
	h := newHelloHandler(t, "gemini",
		&fakeProvider{
			id:      providers.ProviderGemini,
			hasCred: true,
			err:     errors.New("dial tcp: connection refused"),
		},
	)

	w := doHello(h, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
