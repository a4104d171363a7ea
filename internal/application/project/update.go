package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	Name              *string
	Description       *string
	StartDate         *time.Time
	EndDate           *time.Time
	Status            *string
	Priority          *string
	Department        *string
	DeliveryManagerID *string
	ManagerID         *string
	LeadID            *string
	DeveloperIDs      *[]string
	Tags              *[]string
	ClientName        *string
	IsActive          *bool
}

func (in UpdateInput) touchesTeam() bool {
	return in.DeliveryManagerID != nil || in.ManagerID != nil || in.LeadID != nil || in.DeveloperIDs != nil
}

// Update is open to administrators and to the project's manager or delivery manager.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in UpdateInput) (Detail, error) {
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

	isAdmin := domain.Authorize(actor, domain.AdminRoles...) == nil
	if !isAdmin && actor.ID != p.ManagerID && actor.ID != p.DeliveryManagerID {
		return Detail{}, domain.ErrForbiddenMsg("Access denied. Only admins, project managers, or delivery managers can update projects.")
	}

	oldName := p.Name
	apply(&p, in)
	p.UpdatedAt = s.now().UTC()

	if err := validate(p); err != nil {
		return Detail{}, err
	}
	if in.touchesTeam() {
		if err := s.checkTeam(ctx, p); err != nil {
			return Detail{}, err
		}
	}
	if !strings.EqualFold(oldName, p.Name) {
		if taken, err := s.repo.NameTaken(ctx, p.Name, p.ID); err != nil {
			return Detail{}, err
		} else if taken {
			return Detail{}, domain.ErrProjectNameExists()
		}
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Detail{}, err
	}
	s.audit("project.update", map[string]string{"actor_id": actor.ID, "project_id": id})
	return s.detail(ctx, updated)
}

func apply(p *domain.Project, in UpdateInput) {
	str := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	str(&p.Name, in.Name)
	str(&p.Description, in.Description)
	str(&p.Department, in.Department)
	str(&p.DeliveryManagerID, in.DeliveryManagerID)
	str(&p.ManagerID, in.ManagerID)
	str(&p.LeadID, in.LeadID)
	str(&p.ClientName, in.ClientName)
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	if in.Status != nil {
		p.Status = domain.ProjectStatus(*in.Status)
	}
	if in.Priority != nil {
		p.Priority = domain.Priority(*in.Priority)
	}
	if in.DeveloperIDs != nil {
		p.DeveloperIDs = dedupe(*in.DeveloperIDs)
	}
	if in.Tags != nil {
		p.Tags = cleanTags(*in.Tags)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}
