package project

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

type CreateInput struct {
	Name              string
	Description       string
	StartDate         time.Time
	EndDate           time.Time
	Status            string
	Priority          string
	Department        string
	DeliveryManagerID string
	ManagerID         string
	LeadID            string
	DeveloperIDs      []string
	Tags              []string
	ClientName        string
	IsActive          *bool
}

const (
	MsgProjectCreated = "Project created successfully"
	MsgProjectDeleted = "Project deleted successfully"
)

func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (Detail, error) {
	if err := domain.Authorize(actor, domain.AdminRoles...); err != nil {
		return Detail{}, err
	}

	now := s.now().UTC()
	p := domain.Project{
		ID:                s.newID(),
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Status:            domain.ProjectStatus(in.Status),
		Priority:          domain.Priority(in.Priority),
		Department:        strings.TrimSpace(in.Department),
		DeliveryManagerID: strings.TrimSpace(in.DeliveryManagerID),
		ManagerID:         strings.TrimSpace(in.ManagerID),
		LeadID:            strings.TrimSpace(in.LeadID),
		DeveloperIDs:      dedupe(in.DeveloperIDs),
		Tags:              cleanTags(in.Tags),
		ClientName:        strings.TrimSpace(in.ClientName),
		IsActive:          true,
		CreatedBy:         actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.Status == "" {
		p.Status = domain.StatusNotStarted
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := validate(p); err != nil {
		return Detail{}, err
	}
	if err := s.checkTeam(ctx, p); err != nil {
		return Detail{}, err
	}
	if taken, err := s.repo.NameTaken(ctx, p.Name, ""); err != nil {
		return Detail{}, err
	} else if taken {
		return Detail{}, domain.ErrProjectNameExists()
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Detail{}, err
	}
	s.audit("project.create", map[string]string{"actor_id": actor.ID, "project_id": created.ID})
	return s.detail(ctx, created)
}
