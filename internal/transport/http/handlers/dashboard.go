package http_handlers

import (
	"net/http"

	"github.com/baechuer/peoplehub/internal/application/dashboard"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Stats(r.Context(), a)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, s)
}
