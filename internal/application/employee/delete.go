package employee

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

const MsgEmployeeDeleted = "Employee deleted successfully"

// Delete removes an employee who is on no project and reverts the account to a plain user.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	if err := domain.Authorize(actor, domain.AdminRoles...); err != nil {
		return "", err
	}
	if err := validID(id); err != nil {
		return "", err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	n, err := s.assignments.CountForUser(ctx, e.UserID)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", domain.ErrEmployeeOnProjects()
	}

	if err := s.repo.DeleteAndRevert(ctx, e.ID, e.UserID); err != nil {
		return "", err
	}
	s.audit("employee.delete", map[string]string{"actor_id": actor.ID, "employee_id": e.ID, "user_id": e.UserID})
	return MsgEmployeeDeleted, nil
}
