package dashboard

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Counter is the read side the dashboard aggregates over.
type Counter interface {
	CountProjects(ctx context.Context) (int, error)
	CountEmployees(ctx context.Context) (int, error)
	// CountAssignedEmployees counts distinct employees staffed on at least one project.
	CountAssignedEmployees(ctx context.Context) (int, error)
}

type Stats struct {
	TotalProjects     int `json:"totalProjects"`
	TotalEmployees    int `json:"totalEmployees"`
	AssignedEmployees int `json:"assignedEmployees"`
	BenchEmployees    int `json:"benchEmployees"`
}

type Service struct {
	counter Counter
}

func NewService(c Counter) *Service {
	return &Service{counter: c}
}

func (s *Service) Stats(ctx context.Context, actor domain.Actor) (Stats, error) {
	if err := domain.Authorize(actor); err != nil {
		return Stats{}, err
	}

	var st Stats
	var err error
	if st.TotalProjects, err = s.counter.CountProjects(ctx); err != nil {
		return Stats{}, err
	}
	if st.TotalEmployees, err = s.counter.CountEmployees(ctx); err != nil {
		return Stats{}, err
	}
	if st.AssignedEmployees, err = s.counter.CountAssignedEmployees(ctx); err != nil {
		return Stats{}, err
	}
	st.BenchEmployees = max(st.TotalEmployees-st.AssignedEmployees, 0)
	return st, nil
}
