package response

import (
	"errors"
	"net/http"

	"github.com/baechuer/peoplehub/internal/domain"
	appCtx "github.com/baechuer/peoplehub/internal/pkg/context"
)

type ErrorBody struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
	Meta      map[string]string   `json:"meta,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// WriteError converts an error into the JSON error body.
// Infrastructure and internal failures never expose their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := appCtx.GetRequestID(r.Context())
	body := ErrorBody{
		Message:   "Server error",
		Code:      "internal_error",
		RequestID: reqID,
	}
	status := http.StatusInternalServerError

	var de *domain.Error
	if errors.As(err, &de) {
		status = StatusFromKind(de.Kind)
		body.Code = de.Code
		if status < http.StatusInternalServerError {
			body.Message = de.Message
			body.Errors = de.Fields
			body.Meta = de.Meta
		}
	}

	if status >= http.StatusInternalServerError {
		appCtx.Logger(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	if de != nil && de.Kind == domain.KindRateLimited {
		if ra := de.Meta["retry_after"]; ra != "" {
			w.Header().Set("Retry-After", ra)
		}
	}
	WriteJSON(w, status, body)
}

// StatusFromKind maps domain error kinds to HTTP status codes.
func StatusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation, domain.KindExpired, domain.KindState:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
