package employee

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

type fakeRepo struct {
	mu        sync.Mutex
	employees map[string]domain.Employee
	accounts  map[string]domain.Account // by email
	lastPage  domain.PageRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: map[string]domain.Employee{}, accounts: map[string]domain.Account{}}
}

func (f *fakeRepo) Create(ctx context.Context, e domain.Employee, acct AccountChange) (domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if acct.NewAccount != nil {
		f.accounts[acct.NewAccount.Email] = *acct.NewAccount
	}
	if acct.PromoteUserID != "" {
		for k, a := range f.accounts {
			if a.ID == acct.PromoteUserID {
				a.Role = domain.RoleEmployee
				f.accounts[k] = a
			}
		}
	}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound()
	}
	return e, nil
}

func (f *fakeRepo) List(ctx context.Context, flt domain.EmployeeFilter, p domain.PageRequest) ([]domain.Employee, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = p
	var out []domain.Employee
	for _, e := range f.employees {
		if flt.Department != "" && e.Department != flt.Department {
			continue
		}
		if flt.Gender != "" && e.Gender != flt.Gender {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (f *fakeRepo) ListEmails(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.employees {
		out = append(out, e.Email)
	}
	return out, nil
}

func (f *fakeRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.Email == email && e.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ContactTaken(ctx context.Context, contact, exceptID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ContactNo == contact && e.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[e.ID]; !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound()
	}
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeRepo) DeleteAndRevert(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.employees, id)
	for k, a := range f.accounts {
		if a.ID == userID {
			a.Role = domain.RoleUser
			a.Verified = false
			f.accounts[k] = a
		}
	}
	return nil
}

func (f *fakeRepo) AccrueMonthlyLeaves(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.employees {
		e.Leaves.Casual = 1
		e.Leaves.Sick++
		e.Leaves.Privilege++
		f.employees[id] = e
	}
	return int64(len(f.employees)), nil
}

// GetByEmail makes the fake double as the Accounts port.
func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

type fakeAssignments map[string]int

func (f fakeAssignments) CountForUser(ctx context.Context, userID string) (int, error) {
	return f[userID], nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }

type env struct {
	svc    *Service
	repo   *fakeRepo
	assign fakeAssignments
	audits []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{repo: newFakeRepo(), assign: fakeAssignments{}}
	n := 0
	e.svc = NewService(e.repo, e.repo, e.assign, fakeHasher{}).
		WithClock(func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }).
		WithIDs(func() string {
			n++
			return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
		}).
		WithAudit(func(action string, _ map[string]string) { e.audits = append(e.audits, action) })
	return e
}

var (
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	plain    = domain.Actor{ID: "user-1", Role: domain.RoleUser}
	nobody   = domain.Actor{}
	validIn  = CreateInput{Name: "Jane Doe", ContactNo: "555-0101", Email: "Jane@Corp.io", Gender: "Female", Department: "Eng", SubDepartment: "Platform", Password: "Secret1!"}
	secondIn = CreateInput{Name: "John Roe", ContactNo: "555-0102", Email: "john@corp.io", Gender: "Male", Department: "Ops", SubDepartment: "SRE", Password: "Secret1!"}
)
