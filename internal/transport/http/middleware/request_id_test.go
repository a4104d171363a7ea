package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appCtx "github.com/baechuer/peoplehub/internal/pkg/context"
)

func TestRequestID(t *testing.T) {
	cases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"minted when absent", "", false},
		{"client id kept", "abc-123_x.y", true},
		{"header injection replaced", "abc\r\nX-Evil: 1", false},
		{"spaces replaced", "a b", false},
		{"too long replaced", strings.Repeat("a", maxRequestIDLen+1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = appCtx.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header[HeaderXRequestID] = []string{tc.incoming}
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if seen == "" || rr.Header().Get(HeaderXRequestID) != seen {
				t.Fatalf("context id %q, header %q", seen, rr.Header().Get(HeaderXRequestID))
			}
			if (seen == tc.incoming) != tc.keep {
				t.Fatalf("incoming %q -> %q", tc.incoming, seen)
			}
		})
	}
}
