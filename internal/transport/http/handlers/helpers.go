package http_handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/transport/http/dto"
	"github.com/baechuer/peoplehub/internal/transport/http/middleware"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

// decode reads the body into dst and runs its validation tags.
// On failure the error response is already written.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := response.DecodeJSON(w, r, dst); err != nil {
		response.WriteError(w, r, err)
		return false
	}
	if err := dto.Validate(dst); err != nil {
		response.WriteError(w, r, err)
		return false
	}
	return true
}

// actor returns the guard's actor or writes 401.
func actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.ActorFrom(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return domain.Actor{}, false
	}
	return a, true
}

func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		response.WriteError(w, r, domain.ErrMissingField(name))
		return "", false
	}
	return v, true
}

// pageRequest parses ?page and ?limit; junk falls back to defaults.
func pageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return domain.PageRequest{Page: page, Limit: limit}.Normalize()
}
