package middleware

import (
	"context"
	"net/http"

	"github.com/baechuer/peoplehub/internal/domain"
)

type ctxKey string

const ctxActor ctxKey = "actor"

// WriteErrFunc renders an error response; response.WriteError in production.
type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, ctxActor, a)
}

// ActorFrom returns the actor attached by Guard.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(ctxActor).(domain.Actor)
	return a, ok && a.ID != ""
}
