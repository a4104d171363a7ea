package project

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

type Repo interface {
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter, pg domain.PageRequest) ([]domain.Project, int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, p domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id string) error

	// NameTaken compares names case-insensitively.
	NameTaken(ctx context.Context, name, exceptID string) (bool, error)
}

// Members resolves account summaries for team rendering and validation.
// Unknown ids are absent from the result.
type Members interface {
	Summaries(ctx context.Context, ids []string) (map[string]domain.AccountSummary, error)
}
