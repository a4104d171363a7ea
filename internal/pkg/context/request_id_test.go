package context

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Fatalf("got %q", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	//nolint:staticcheck
	if got := GetRequestID(nil); got != "" {
		t.Fatalf("expected empty for nil ctx, got %q", got)
	}
}

func TestLogger_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	t.Cleanup(func() { zlog.Logger = prev })

	Logger(WithRequestID(context.Background(), "req-7")).Info().Msg("hello")
	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"req-7"`)) {
		t.Fatalf("expected request id in %s", buf.String())
	}

	buf.Reset()
	Logger(context.Background()).Info().Msg("plain")
	if bytes.Contains(buf.Bytes(), []byte("request_id")) {
		t.Fatalf("did not expect request id in %s", buf.String())
	}
}
