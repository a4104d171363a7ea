package auth

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

func (s *Service) Me(ctx context.Context, userID string) (domain.AccountSummary, error) {
	if userID == "" {
		return domain.AccountSummary{}, domain.ErrTokenMissing()
	}
	a, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.AccountSummary{}, err
	}
	return a.Summary(), nil
}
