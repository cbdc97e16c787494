package handlers

import (
	"net/http"
	"time"

	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/selector"
	"github.com/probelabs/llm-probe/utils"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	selector  *selector.Service
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sel *selector.Service) *HealthHandler {
	return &HealthHandler{
		selector:  sel,
		startTime: time.Now(),
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ReadyResponse is the readiness payload
type ReadyResponse struct {
	Ready     bool     `json:"ready"`
	Providers []string `json:"providers"`
	Message   string   `json:"message,omitempty"`
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles GET /readyz. The service is ready when a selection could
// plausibly succeed: a forced directive is set or at least one candidate
// has a credential.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	candidates := h.selector.Candidates()
	names := make([]string, len(candidates))
	for i, id := range candidates {
		names[i] = id.String()
	}

	if !h.selector.Ready() {
		expected := make([]string, len(candidates))
		for i, id := range candidates {
			expected[i] = providers.CredentialEnvVar(id)
		}
		_ = utils.WriteServiceUnavailable(w, "no provider credential configured", map[string]interface{}{
			"providers": names,
			"expected":  expected,
		})
		return
	}

	_ = utils.WriteOK(w, ReadyResponse{
		Ready:     true,
		Providers: names,
	})
}
