package http_handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

// Pinger is a dependency probed by readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	// required deps fail readiness; optional ones are only reported
	required map[string]Pinger
	optional map[string]Pinger
	timeout  time.Duration
}

func NewHealthHandler(required, optional map[string]Pinger) *HealthHandler {
	return &HealthHandler{required: required, optional: optional, timeout: 2 * time.Second}
}

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.OK(w, healthBody{Status: "ok"})
}

// Readyz handles GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body := healthBody{Status: "ready", Checks: map[string]string{}}
	status := http.StatusOK

	for _, name := range sortedKeys(h.required) {
		if err := h.required[name].Ping(ctx); err != nil {
			body.Checks[name] = "unavailable"
			body.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		body.Checks[name] = "ok"
	}
	for _, name := range sortedKeys(h.optional) {
		if err := h.optional[name].Ping(ctx); err != nil {
			body.Checks[name] = "degraded"
			continue
		}
		body.Checks[name] = "ok"
	}

	response.WriteJSON(w, status, body)
}

func sortedKeys(m map[string]Pinger) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
