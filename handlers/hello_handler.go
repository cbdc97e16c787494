package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/selector"
	"github.com/probelabs/llm-probe/utils"
	"go.uber.org/zap"
)

// HelloHandler exposes the provider selection operation over HTTP
type HelloHandler struct {
	selector *selector.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHelloHandler creates a new hello handler
func NewHelloHandler(sel *selector.Service, logger *zap.Logger) *HelloHandler {
	return &HelloHandler{
		selector: sel,
		validate: validator.New(),
		logger:   logger,
	}
}

// HelloRequest is the optional request body for POST /v1/hello
type HelloRequest struct {
	// Provider forces a specific provider for this request, bypassing the
	// configured directive and auto-selection.
	Provider string `json:"provider" validate:"omitempty,oneof=gemini openai groq"`
}

// Hello handles POST /v1/hello. The body is optional; when it names a
// provider, that provider is forced for this request only.
func (h *HelloHandler) Hello(w http.ResponseWriter, r *http.Request) {
	var req HelloRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "invalid JSON body", nil)
			return
		}
	}

	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	if err := h.validate.Struct(&req); err != nil {
		_ = utils.WriteBadRequest(w, "unsupported provider", map[string]interface{}{
			"provider": req.Provider,
			"expected": []string{"gemini", "openai", "groq"},
		})
		return
	}

	var (
		result *providers.HelloResult
		err    error
	)
	if req.Provider != "" {
		result, err = h.selector.HelloWithDirective(r.Context(), req.Provider)
	} else {
		result, err = h.selector.Hello(r.Context())
	}

	if err != nil {
		h.writeSelectionError(w, err)
		return
	}

	_ = utils.WriteOK(w, result)
}

// writeSelectionError maps the selection error taxonomy onto HTTP statuses:
// caller mistakes and missing credentials are 4xx, exhaustion is 503, and
// upstream failures (vendor status or transport) are 502.
func (h *HelloHandler) writeSelectionError(w http.ResponseWriter, err error) {
	switch providers.ErrorCodeOf(err) {
	case providers.CodeUnsupportedProvider, providers.CodeMissingCredential:
		_ = utils.WriteBadRequest(w, err.Error(), nil)
	case providers.CodeNoProviderAvailable:
		_ = utils.WriteServiceUnavailable(w, err.Error(), nil)
	case providers.CodeHTTPError:
		details := map[string]interface{}{}
		var provErr *providers.ProviderError
		if errors.As(err, &provErr) {
			details["provider"] = provErr.Provider.String()
			details["upstream_status"] = provErr.StatusCode
		}
		_ = utils.WriteBadGateway(w, err.Error(), details)
	default:
		h.logger.Error("provider transport failure", zap.Error(err))
		_ = utils.WriteBadGateway(w, "provider request failed", nil)
	}
}
