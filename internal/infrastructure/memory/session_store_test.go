package memory

import (
	"context"
	"testing"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

func TestSessionStore_ConsumeOnce(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	ctx := context.Background()
	if err := s.Save(ctx, "sid", "u1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	uid, err := s.Consume(ctx, "sid")
	if err != nil || uid != "u1" {
		t.Fatalf("consume: uid=%q err=%v", uid, err)
	}
	if _, err := s.Consume(ctx, "sid"); !domain.Is(err, "session_revoked") {
		t.Fatalf("expected session_revoked, got %v", err)
	}
}

func TestSessionStore_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Save(ctx, "sid", "u1", time.Minute)
	now = now.Add(time.Minute)

	if _, err := s.Consume(ctx, "sid"); !domain.Is(err, "session_revoked") {
		t.Fatalf("expected session_revoked, got %v", err)
	}
}

func TestSessionStore_RevokeAll(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	ctx := context.Background()
	_ = s.Save(ctx, "a", "u1", time.Hour)
	_ = s.Save(ctx, "b", "u1", time.Hour)
	_ = s.Save(ctx, "c", "u2", time.Hour)

	if err := s.RevokeAll(ctx, "u1"); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	for _, sid := range []string{"a", "b"} {
		if _, err := s.Consume(ctx, sid); err == nil {
			t.Fatalf("session %s should be gone", sid)
		}
	}
	if uid, err := s.Consume(ctx, "c"); err != nil || uid != "u2" {
		t.Fatalf("other user's session affected: %q %v", uid, err)
	}
}

func TestSessionStore_SaveSweepsExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Save(ctx, "stale", "u1", time.Minute)
	_ = s.Save(ctx, "live", "u2", time.Hour)

	now = now.Add(2 * time.Minute)
	_ = s.Save(ctx, "fresh", "u3", time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions["stale"]; ok {
		t.Fatalf("expired session kept")
	}
	if _, ok := s.byUser["u1"]; ok {
		t.Fatalf("expired session still indexed by user")
	}
	if len(s.sessions) != 2 {
		t.Fatalf("want 2 live sessions, got %d", len(s.sessions))
	}
}
