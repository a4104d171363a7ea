package project

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Member is the public face of a team member.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Team struct {
	DeliveryManager *Member  `json:"deliveryManager"`
	Manager         *Member  `json:"manager"`
	Lead            *Member  `json:"lead"`
	Developers      []Member `json:"developers"`
}

// Detail is a project with its team resolved.
type Detail struct {
	Project   domain.Project
	Team      Team
	CreatedBy *Member
	// UserRole is set by per-user listings.
	UserRole domain.TeamRole
}

func (s *Service) details(ctx context.Context, projects []domain.Project) ([]Detail, error) {
	ids := make(map[string]struct{})
	var all []string
	for _, p := range projects {
		for _, id := range append(p.TeamIDs(), p.CreatedBy) {
			if _, ok := ids[id]; ok || id == "" {
				continue
			}
			ids[id] = struct{}{}
			all = append(all, id)
		}
	}
	found := map[string]domain.AccountSummary{}
	if len(all) > 0 {
		var err error
		if found, err = s.members.Summaries(ctx, all); err != nil {
			return nil, err
		}
	}

	member := func(id string) *Member {
		a, ok := found[id]
		if !ok {
			return nil
		}
		return &Member{ID: a.ID, Username: a.Username, Email: a.Email}
	}

	out := make([]Detail, 0, len(projects))
	for _, p := range projects {
		d := Detail{
			Project: p,
			Team: Team{
				DeliveryManager: member(p.DeliveryManagerID),
				Manager:         member(p.ManagerID),
				Lead:            member(p.LeadID),
				Developers:      []Member{},
			},
			CreatedBy: member(p.CreatedBy),
		}
		for _, id := range p.DeveloperIDs {
			if m := member(id); m != nil {
				d.Team.Developers = append(d.Team.Developers, *m)
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) detail(ctx context.Context, p domain.Project) (Detail, error) {
	ds, err := s.details(ctx, []domain.Project{p})
	if err != nil {
		return Detail{}, err
	}
	return ds[0], nil
}
