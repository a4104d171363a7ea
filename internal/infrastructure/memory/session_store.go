package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

// sweepInterval bounds how often Save scans for expired sessions.
const sweepInterval = time.Minute

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionStore is the in-process fallback used when Redis is unreachable.
// Sessions do not survive a restart.
type SessionStore struct {
	mu sync.Mutex
	// sessionID -> entry
	sessions map[string]sessionEntry
	// userID -> set(sessionID)
	byUser map[string]map[string]struct{}

	lastSweep time.Time
	now       func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		byUser:   make(map[string]map[string]struct{}),
		now:      time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if sessionID == "" {
		return domain.ErrMissingField("session_id")
	}
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}

	s.sessions[sessionID] = sessionEntry{userID: userID, expiresAt: now.Add(ttl)}
	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[string]struct{})
	}
	s.byUser[userID][sessionID] = struct{}{}
	return nil
}

func (s *SessionStore) Consume(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return "", domain.ErrSessionRevoked()
	}
	s.dropLocked(sessionID, entry.userID)

	if !s.now().Before(entry.expiresAt) {
		return "", domain.ErrSessionRevoked()
	}
	return entry.userID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[sessionID]; ok {
		s.dropLocked(sessionID, entry.userID)
	}
	return nil
}

func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sid := range s.byUser[userID] {
		delete(s.sessions, sid)
	}
	delete(s.byUser, userID)
	return nil
}

func (s *SessionStore) dropLocked(sessionID, userID string) {
	delete(s.sessions, sessionID)
	if set := s.byUser[userID]; set != nil {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(s.byUser, userID)
		}
	}
}

// sweepLocked drops sessions whose refresh token was never presented before expiry.
func (s *SessionStore) sweepLocked(now time.Time) {
	for sid, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			s.dropLocked(sid, e.userID)
		}
	}
	s.lastSweep = now
}
