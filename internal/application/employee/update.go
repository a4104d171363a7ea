package employee

import (
	"context"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
)

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	Name          *string
	ContactNo     *string
	Email         *string
	Gender        *string
	Department    *string
	SubDepartment *string
}

// Update lets administrators edit any employee and employees edit their own record.
// Organisational fields and email are ignored for non-administrators.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in UpdateInput) (domain.Employee, error) {
	if err := domain.Authorize(actor); err != nil {
		return domain.Employee{}, err
	}
	if err := validID(id); err != nil {
		return domain.Employee{}, err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	isAdmin := domain.Authorize(actor, domain.AdminRoles...) == nil
	if !isAdmin && e.UserID != actor.ID {
		return domain.Employee{}, domain.ErrForbiddenMsg("Access denied. You can only update your own profile or be an admin.")
	}
	if !isAdmin {
		in.Department, in.SubDepartment, in.Email = nil, nil, nil
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return domain.Employee{}, domain.ErrInvalidField("employeeName", "cannot be empty")
		}
		e.Name = v
	}
	if in.Gender != nil {
		g := domain.Gender(*in.Gender)
		if !g.Valid() {
			return domain.Employee{}, domain.ErrInvalidField("gender", "must be one of Male, Female, Other")
		}
		e.Gender = g
	}
	if in.Department != nil {
		if v := strings.TrimSpace(*in.Department); v != "" {
			e.Department = v
		}
	}
	if in.SubDepartment != nil {
		if v := strings.TrimSpace(*in.SubDepartment); v != "" {
			e.SubDepartment = v
		}
	}
	if in.ContactNo != nil {
		v := strings.TrimSpace(*in.ContactNo)
		if v == "" {
			return domain.Employee{}, domain.ErrInvalidField("contactNo", "cannot be empty")
		}
		if v != e.ContactNo {
			taken, err := s.repo.ContactTaken(ctx, v, e.ID)
			if err != nil {
				return domain.Employee{}, err
			}
			if taken {
				return domain.Employee{}, domain.ErrEmployeeContactExists()
			}
		}
		e.ContactNo = v
	}
	if in.Email != nil {
		v := domain.NormalizeEmail(*in.Email)
		if v == "" {
			return domain.Employee{}, domain.ErrInvalidField("email", "cannot be empty")
		}
		if v != e.Email {
			taken, err := s.repo.EmailTaken(ctx, v, e.ID)
			if err != nil {
				return domain.Employee{}, err
			}
			if taken {
				return domain.Employee{}, domain.ErrEmployeeEmailExists()
			}
		}
		e.Email = v
	}

	e.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return domain.Employee{}, err
	}
	s.audit("employee.update", map[string]string{"actor_id": actor.ID, "employee_id": id})
	return updated, nil
}
