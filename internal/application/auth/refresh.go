package auth

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Refresh rotates a refresh session and issues a new token pair.
// Rotation rule: a refresh token is accepted at most once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (LoginResult, error) {
	if refreshToken == "" {
		return LoginResult{}, domain.ErrRefreshTokenInvalid()
	}

	c, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if domain.Is(err, "token_expired") {
			return LoginResult{}, domain.ErrRefreshTokenExpired()
		}
		return LoginResult{}, domain.ErrRefreshTokenInvalid()
	}

	userID, err := s.sessions.Consume(ctx, c.SessionID)
	if err != nil {
		if domain.KindOf(err) == domain.KindInfrastructure {
			return LoginResult{}, err
		}
		return LoginResult{}, domain.ErrSessionRevoked()
	}
	if userID != c.UserID {
		return LoginResult{}, domain.ErrRefreshTokenInvalid()
	}

	// Reload so the new claims carry the current role.
	a, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return LoginResult{}, domain.ErrRefreshTokenInvalid()
	}

	return s.issueTokens(ctx, a)
}
