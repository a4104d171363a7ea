package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

// SetRole changes the role of another account. Superadmin only.
func (s *Service) SetRole(ctx context.Context, actor domain.Actor, targetID, newRole string) (domain.AccountSummary, error) {
	const action = "admin.set_role"

	targetID = strings.TrimSpace(targetID)

	audit := func(err error, extra map[string]string) {
		fields := map[string]string{
			"actor_id":   actor.ID,
			"actor_role": string(actor.Role),
			"target_id":  targetID,
		}
		for k, v := range extra {
			fields[k] = v
		}
		s.auditResult(action, err, fields)
	}

	if err := domain.Authorize(actor, domain.RoleSuperadmin); err != nil {
		audit(err, nil)
		return domain.AccountSummary{}, err
	}
	if targetID == "" {
		err := domain.ErrMissingField("id")
		audit(err, nil)
		return domain.AccountSummary{}, err
	}
	if _, err := uuid.Parse(targetID); err != nil {
		err := domain.ErrInvalidID("id")
		audit(err, nil)
		return domain.AccountSummary{}, err
	}
	role, err := domain.ParseRole(newRole)
	if err != nil {
		audit(err, nil)
		return domain.AccountSummary{}, err
	}
	if actor.ID == targetID {
		err := domain.ErrCannotAffectSelf()
		audit(err, nil)
		return domain.AccountSummary{}, err
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		audit(err, nil)
		return domain.AccountSummary{}, err
	}

	if target.Role == domain.RoleSuperadmin && role != domain.RoleSuperadmin {
		cnt, err := s.users.CountByRole(ctx, domain.RoleSuperadmin)
		if err != nil {
			audit(err, nil)
			return domain.AccountSummary{}, err
		}
		if cnt <= 1 {
			err := domain.ErrLastSuperadminProtected()
			audit(err, nil)
			return domain.AccountSummary{}, err
		}
	}

	if err := s.users.SetRole(ctx, targetID, role); err != nil {
		audit(err, nil)
		return domain.AccountSummary{}, err
	}
	// Outstanding tokens carry the old role; the guard reloads roles, refresh sessions are dropped.
	_ = s.sessions.RevokeAll(ctx, targetID)

	audit(nil, map[string]string{"old_role": string(target.Role), "new_role": string(role)})
	target.Role = role
	return target.Summary(), nil
}
