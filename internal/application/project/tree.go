package project

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Node is one level of a project hierarchy.
type Node struct {
	Member
	Role    domain.TeamRole `json:"role"`
	Reports []Node          `json:"reports"`
}

type TreeEntry struct {
	ID     string               `json:"id"`
	Name   string               `json:"projectName"`
	Status domain.ProjectStatus `json:"status"`
	Root   *Node                `json:"hierarchy"`
}

// Tree renders every project as delivery manager, manager, lead, developers.
// A missing level is skipped and its reports attach to the level above.
func (s *Service) Tree(ctx context.Context) ([]TreeEntry, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := s.details(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]TreeEntry, 0, len(ds))
	for _, d := range ds {
		out = append(out, TreeEntry{
			ID:     d.Project.ID,
			Name:   d.Project.Name,
			Status: d.Project.Status,
			Root:   hierarchy(d.Team),
		})
	}
	return out, nil
}

func hierarchy(t Team) *Node {
	devs := make([]Node, 0, len(t.Developers))
	for _, m := range t.Developers {
		devs = append(devs, Node{Member: m, Role: domain.TeamDeveloper, Reports: []Node{}})
	}

	levels := []struct {
		m    *Member
		role domain.TeamRole
	}{
		{t.Lead, domain.TeamLead},
		{t.Manager, domain.TeamManager},
		{t.DeliveryManager, domain.TeamDeliveryManager},
	}
	reports := devs
	var top *Node
	for _, l := range levels {
		if l.m == nil {
			continue
		}
		n := Node{Member: *l.m, Role: l.role, Reports: reports}
		top = &n
		reports = []Node{n}
	}
	return top
}
