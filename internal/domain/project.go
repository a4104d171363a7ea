package domain

import "time"

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusCompleted  ProjectStatus = "Completed"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TeamRole is the position a user holds on a project.
type TeamRole string

const (
	TeamDeliveryManager TeamRole = "deliveryManager"
	TeamManager         TeamRole = "manager"
	TeamLead            TeamRole = "lead"
	TeamDeveloper       TeamRole = "developer"
)

const (
	MaxProjectNameLen        = 100
	MaxProjectDescriptionLen = 1000
)

type Project struct {
	ID                string
	Name              string
	Description       string
	StartDate         time.Time
	EndDate           time.Time
	Status            ProjectStatus
	Department        string
	DeliveryManagerID string
	ManagerID         string
	LeadID            string
	DeveloperIDs      []string
	Priority          Priority
	Tags              []string
	ClientName        string
	IsActive          bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TeamIDs returns the distinct user ids on the team, in hierarchy order.
func (p Project) TeamIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	add(p.DeliveryManagerID)
	add(p.ManagerID)
	add(p.LeadID)
	for _, d := range p.DeveloperIDs {
		add(d)
	}
	return out
}

// RoleOf reports the highest team position held by userID.
func (p Project) RoleOf(userID string) (TeamRole, bool) {
	switch userID {
	case "":
		return "", false
	case p.DeliveryManagerID:
		return TeamDeliveryManager, true
	case p.ManagerID:
		return TeamManager, true
	case p.LeadID:
		return TeamLead, true
	}
	for _, d := range p.DeveloperIDs {
		if d == userID {
			return TeamDeveloper, true
		}
	}
	return "", false
}

func (p Project) IsTeamMember(userID string) bool {
	_, ok := p.RoleOf(userID)
	return ok
}

// ProjectFilter narrows project listings; MemberID restricts to one user's projects.
type ProjectFilter struct {
	Status    ProjectStatus
	Priority  Priority
	ManagerID string
	LeadID    string
	MemberID  string
}
