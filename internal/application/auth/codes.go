package auth

import (
	"context"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

// issueCode generates a fresh code for kind and stores it with its expiry.
// Any earlier code of the same kind is overwritten.
func (s *Service) issueCode(ctx context.Context, userID string, kind domain.CodeKind) (string, time.Time, error) {
	code, err := s.codes.NewCode()
	if err != nil {
		return "", time.Time{}, domain.ErrRandomFailed(err)
	}
	ttl := s.verifyCodeTTL
	if kind == domain.CodePasswordReset {
		ttl = s.resetCodeTTL
	}
	exp := s.now().Add(ttl)
	if err := s.users.SetCode(ctx, userID, kind, code, exp); err != nil {
		return "", time.Time{}, err
	}
	return code, exp, nil
}
