package employee

import (
	"context"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
)

type CreateInput struct {
	Name          string
	ContactNo     string
	Email         string
	Gender        string
	Department    string
	SubDepartment string
	Username      string
	Password      string
}

type CreateResult struct {
	Employee    domain.Employee
	UserCreated bool
	Message     string
}

const MsgEmployeeCreated = "Employee created successfully"

// Create adds an employee record, creating or promoting the owning account.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (CreateResult, error) {
	if err := domain.Authorize(actor, domain.AdminRoles...); err != nil {
		return CreateResult{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.ContactNo = strings.TrimSpace(in.ContactNo)
	in.Department = strings.TrimSpace(in.Department)
	in.SubDepartment = strings.TrimSpace(in.SubDepartment)
	email := domain.NormalizeEmail(in.Email)

	var missing []domain.FieldError
	for field, v := range map[string]string{
		"employeeName":  in.Name,
		"contactNo":     in.ContactNo,
		"email":         email,
		"gender":        in.Gender,
		"department":    in.Department,
		"subDepartment": in.SubDepartment,
	} {
		if v == "" {
			missing = append(missing, domain.FieldError{Field: field, Message: "is required"})
		}
	}
	if len(missing) > 0 {
		sortFields(missing)
		return CreateResult{}, domain.ErrValidation(missing...)
	}
	gender := domain.Gender(in.Gender)
	if !gender.Valid() {
		return CreateResult{}, domain.ErrInvalidField("gender", "must be one of Male, Female, Other")
	}

	if taken, err := s.repo.EmailTaken(ctx, email, ""); err != nil {
		return CreateResult{}, err
	} else if taken {
		return CreateResult{}, domain.ErrEmployeeEmailExists()
	}
	if taken, err := s.repo.ContactTaken(ctx, in.ContactNo, ""); err != nil {
		return CreateResult{}, err
	} else if taken {
		return CreateResult{}, domain.ErrEmployeeContactExists()
	}

	var change AccountChange
	var userID string
	existing, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		userID = existing.ID
		if existing.Role == domain.RoleUser {
			change.PromoteUserID = existing.ID
		}
	case domain.Is(err, "user_not_found"):
		acct, err := s.newAccount(in, email)
		if err != nil {
			return CreateResult{}, err
		}
		userID = acct.ID
		change.NewAccount = &acct
	default:
		return CreateResult{}, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, domain.Employee{
		ID:            s.newID(),
		UserID:        userID,
		Name:          in.Name,
		ContactNo:     in.ContactNo,
		Email:         email,
		Gender:        gender,
		Department:    in.Department,
		SubDepartment: in.SubDepartment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, change)
	if err != nil {
		return CreateResult{}, err
	}

	userCreated := change.NewAccount != nil
	s.audit("employee.create", map[string]string{
		"actor_id":     actor.ID,
		"employee_id":  created.ID,
		"user_id":      userID,
		"email":        email,
		"user_created": boolString(userCreated),
	})
	return CreateResult{Employee: created, UserCreated: userCreated, Message: MsgEmployeeCreated}, nil
}

// newAccount builds the verified employee account for an email nobody has registered.
func (s *Service) newAccount(in CreateInput, email string) (domain.Account, error) {
	if in.Password == "" {
		return domain.Account{}, domain.ErrMissingField("password")
	}
	if err := domain.CheckPasswordStrength(in.Password); err != nil {
		return domain.Account{}, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Account{}, domain.ErrHashFailed(err)
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = defaultUsername(in.Name)
	}
	now := s.now().UTC()
	return domain.Account{
		ID:           s.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// defaultUsername lower-cases the name and drops all whitespace.
func defaultUsername(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
