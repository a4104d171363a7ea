// Package context carries per-request values shared by middleware, handlers and the error writer.
package context

import (
	"context"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type contextKey int

const requestIDKey contextKey = iota

// WithRequestID stores id and attaches a logger that tags every entry with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	l := zlog.Logger.With().Str("request_id", id).Logger()
	return l.WithContext(ctx)
}

// GetRequestID extracts the id set by WithRequestID, or "".
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns the request logger, falling back to the global one outside a request.
func Logger(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &zlog.Logger
}
