package project

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

// validate checks the record-level invariants of a project.
func validate(p domain.Project) error {
	var fs []domain.FieldError
	add := func(field, msg string) { fs = append(fs, domain.FieldError{Field: field, Message: msg}) }

	switch n := utf8.RuneCountInString(p.Name); {
	case n == 0:
		add("projectName", "Project name is required")
	case n > domain.MaxProjectNameLen:
		add("projectName", "Project name cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(p.Description) > domain.MaxProjectDescriptionLen {
		add("description", "Description cannot exceed 1000 characters")
	}
	if p.StartDate.IsZero() {
		add("startDate", "Start date is required")
	}
	if p.EndDate.IsZero() {
		add("endDate", "End date is required")
	} else if !p.StartDate.IsZero() && !p.EndDate.After(p.StartDate) {
		add("endDate", "End date must be after start date")
	}
	if p.Department == "" {
		add("department", "Department is required")
	}
	if !p.Status.Valid() {
		add("status", "invalid status")
	}
	if !p.Priority.Valid() {
		add("priority", "invalid priority")
	}
	if p.DeliveryManagerID == "" {
		add("deliveryManager", "Delivery Manager is required")
	}
	if p.LeadID == "" {
		add("lead", "Team Lead is required")
	}
	for field, id := range map[string]string{
		"deliveryManager": p.DeliveryManagerID,
		"manager":         p.ManagerID,
		"lead":            p.LeadID,
	} {
		if id != "" && uuid.Validate(id) != nil {
			add(field, "invalid user id")
		}
	}
	for _, id := range p.DeveloperIDs {
		if uuid.Validate(id) != nil {
			add("developers", "invalid user id")
			break
		}
	}

	if len(fs) == 0 {
		return nil
	}
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Field < fs[j].Field })
	return domain.ErrValidation(fs...)
}

// checkTeam requires every team member to be an account that may be staffed.
func (s *Service) checkTeam(ctx context.Context, p domain.Project) error {
	ids := p.TeamIDs()
	found, err := s.members.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	var missing []string
	for _, id := range ids {
		a, ok := found[id]
		if !ok || domain.Authorize(domain.Actor{ID: a.ID, Role: a.Role}, domain.StaffRoles...) != nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.ErrInvalidTeam(missing)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
