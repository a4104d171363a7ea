package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/baechuer/peoplehub/internal/application/project"
	"github.com/baechuer/peoplehub/internal/domain"
)

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type CreateProjectRequest struct {
	Name              string   `json:"projectName" validate:"max=100"`
	Description       string   `json:"description" validate:"max=1000"`
	StartDate         Date     `json:"startDate"`
	EndDate           Date     `json:"endDate"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	Department        string   `json:"department" validate:"max=100"`
	DeliveryManagerID string   `json:"deliveryManager"`
	ManagerID         string   `json:"manager"`
	LeadID            string   `json:"lead"`
	DeveloperIDs      []string `json:"developers" validate:"max=200"`
	Tags              []string `json:"tags" validate:"max=50,dive,max=50"`
	ClientName        string   `json:"clientName" validate:"max=200"`
	IsActive          *bool    `json:"isActive"`
}

func (r CreateProjectRequest) Input() project.CreateInput {
	return project.CreateInput{
		Name:              r.Name,
		Description:       r.Description,
		StartDate:         r.StartDate.Time,
		EndDate:           r.EndDate.Time,
		Status:            r.Status,
		Priority:          r.Priority,
		Department:        r.Department,
		DeliveryManagerID: r.DeliveryManagerID,
		ManagerID:         r.ManagerID,
		LeadID:            r.LeadID,
		DeveloperIDs:      r.DeveloperIDs,
		Tags:              r.Tags,
		ClientName:        r.ClientName,
		IsActive:          r.IsActive,
	}
}

type UpdateProjectRequest struct {
	Name              *string   `json:"projectName" validate:"omitempty,max=100"`
	Description       *string   `json:"description" validate:"omitempty,max=1000"`
	StartDate         *Date     `json:"startDate"`
	EndDate           *Date     `json:"endDate"`
	Status            *string   `json:"status"`
	Priority          *string   `json:"priority"`
	Department        *string   `json:"department" validate:"omitempty,max=100"`
	DeliveryManagerID *string   `json:"deliveryManager"`
	ManagerID         *string   `json:"manager"`
	LeadID            *string   `json:"lead"`
	DeveloperIDs      *[]string `json:"developers" validate:"omitempty,max=200"`
	Tags              *[]string `json:"tags" validate:"omitempty,max=50,dive,max=50"`
	ClientName        *string   `json:"clientName" validate:"omitempty,max=200"`
	IsActive          *bool     `json:"isActive"`
}

func (r UpdateProjectRequest) Input() project.UpdateInput {
	in := project.UpdateInput{
		Name:              r.Name,
		Description:       r.Description,
		Status:            r.Status,
		Priority:          r.Priority,
		Department:        r.Department,
		DeliveryManagerID: r.DeliveryManagerID,
		ManagerID:         r.ManagerID,
		LeadID:            r.LeadID,
		DeveloperIDs:      r.DeveloperIDs,
		Tags:              r.Tags,
		ClientName:        r.ClientName,
		IsActive:          r.IsActive,
	}
	if r.StartDate != nil {
		in.StartDate = &r.StartDate.Time
	}
	if r.EndDate != nil {
		in.EndDate = &r.EndDate.Time
	}
	return in
}

type ProjectView struct {
	ID          string               `json:"id"`
	Name        string               `json:"projectName"`
	Description string               `json:"description"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     time.Time            `json:"endDate"`
	Status      domain.ProjectStatus `json:"status"`
	Priority    domain.Priority      `json:"priority"`
	Department  string               `json:"department"`
	project.Team
	Tags       []string        `json:"tags"`
	ClientName string          `json:"clientName"`
	IsActive   bool            `json:"isActive"`
	CreatedBy  *project.Member `json:"createdBy"`
	UserRole   domain.TeamRole `json:"userRole,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func NewProjectView(d project.Detail) ProjectView {
	p := d.Project
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	team := d.Team
	if team.Developers == nil {
		team.Developers = []project.Member{}
	}
	return ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Priority:    p.Priority,
		Department:  p.Department,
		Team:        team,
		Tags:        tags,
		ClientName:  p.ClientName,
		IsActive:    p.IsActive,
		CreatedBy:   d.CreatedBy,
		UserRole:    d.UserRole,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProjectViews(ds []project.Detail) []ProjectView {
	out := make([]ProjectView, 0, len(ds))
	for _, d := range ds {
		out = append(out, NewProjectView(d))
	}
	return out
}

type ProjectResponse struct {
	Message string      `json:"message,omitempty"`
	Project ProjectView `json:"project"`
}

type ProjectListResponse struct {
	Projects      []ProjectView `json:"projects"`
	TotalProjects int           `json:"totalProjects"`
	domain.PageInfo
}
