package auth

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Logout revokes every refresh session of the actor. Calling it again is a no-op.
func (s *Service) Logout(ctx context.Context, actor domain.Actor, refreshToken string) (string, error) {
	if actor.ID == "" {
		return "", domain.ErrTokenMissing()
	}

	if refreshToken != "" {
		if c, err := s.tokens.VerifyRefresh(refreshToken); err == nil && c.SessionID != "" {
			if err := s.sessions.Revoke(ctx, c.SessionID); err != nil {
				return "", err
			}
		}
	}
	if err := s.sessions.RevokeAll(ctx, actor.ID); err != nil {
		return "", err
	}

	s.audit("auth.logout", map[string]string{"user_id": actor.ID})
	return logoutMessage(string(actor.Role)), nil
}
