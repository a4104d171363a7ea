package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

type ListResult struct {
	Projects []Detail
	Total    int
	Page     domain.PageInfo
}

// Get returns a project to administrators and team members.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (Detail, error) {
	if err := domain.Authorize(actor); err != nil {
		return Detail{}, err
	}
	if uuid.Validate(id) != nil {
		return Detail{}, domain.ErrInvalidID("id")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if domain.Authorize(actor, domain.AdminRoles...) != nil && !p.IsTeamMember(actor.ID) {
		return Detail{}, domain.ErrForbiddenMsg("Access denied. You are not a member of this project.")
	}
	return s.detail(ctx, p)
}

// List pages through projects. Non-administrators only see projects they are staffed on.
func (s *Service) List(ctx context.Context, actor domain.Actor, f domain.ProjectFilter, pg domain.PageRequest) (ListResult, error) {
	if err := domain.Authorize(actor); err != nil {
		return ListResult{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return ListResult{}, domain.ErrInvalidField("status", "invalid status")
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return ListResult{}, domain.ErrInvalidField("priority", "invalid priority")
	}
	f.MemberID = ""
	if domain.Authorize(actor, domain.AdminRoles...) != nil {
		f.MemberID = actor.ID
	}
	pg = pg.Normalize()

	items, total, err := s.repo.List(ctx, f, pg)
	if err != nil {
		return ListResult{}, err
	}
	ds, err := s.details(ctx, items)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Projects: ds, Total: total, Page: domain.NewPageInfo(pg, total)}, nil
}

// ByUser lists the projects userID is staffed on, with the position held in each.
func (s *Service) ByUser(ctx context.Context, userID string) ([]Detail, error) {
	if uuid.Validate(userID) != nil {
		return nil, domain.ErrInvalidID("userId")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ds, err := s.details(ctx, items)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		ds[i].UserRole, _ = ds[i].Project.RoleOf(userID)
	}
	return ds, nil
}
