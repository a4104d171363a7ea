package employee

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

type ListResult struct {
	Employees []domain.Employee
	Total     int
	Page      domain.PageInfo
}

func (s *Service) Get(ctx context.Context, id string) (domain.Employee, error) {
	if err := validID(id); err != nil {
		return domain.Employee{}, err
	}
	return s.repo.Get(ctx, id)
}

// ListEmails returns every employee email in ascending order.
func (s *Service) ListEmails(ctx context.Context) ([]string, error) {
	emails, err := s.repo.ListEmails(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(emails)
	return emails, nil
}

func (s *Service) List(ctx context.Context, f domain.EmployeeFilter, p domain.PageRequest) (ListResult, error) {
	f.Department = strings.TrimSpace(f.Department)
	f.SubDepartment = strings.TrimSpace(f.SubDepartment)
	if f.Gender != "" && !f.Gender.Valid() {
		return ListResult{}, domain.ErrInvalidField("gender", "must be one of Male, Female, Other")
	}
	p = p.Normalize()

	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return ListResult{}, err
	}
	if items == nil {
		items = []domain.Employee{}
	}
	return ListResult{Employees: items, Total: total, Page: domain.NewPageInfo(p, total)}, nil
}

func (s *Service) Leaves(ctx context.Context, id string) (domain.LeaveBalance, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return domain.LeaveBalance{}, err
	}
	return e.Leaves, nil
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID("id")
	}
	return nil
}

func sortFields(fs []domain.FieldError) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Field < fs[j].Field })
}
