package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Delete removes a project that is not in progress. Administrators only.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	if err := domain.Authorize(actor, domain.AdminRoles...); err != nil {
		return "", err
	}
	if uuid.Validate(id) != nil {
		return "", domain.ErrInvalidID("id")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if p.Status == domain.StatusInProgress {
		return "", domain.ErrProjectInProgress()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	s.audit("project.delete", map[string]string{"actor_id": actor.ID, "project_id": id})
	return MsgProjectDeleted, nil
}
