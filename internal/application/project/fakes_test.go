package project

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

type fakeRepo struct {
	mu       sync.Mutex
	projects map[string]domain.Project
	lastFlt  domain.ProjectFilter
}

func newFakeRepo() *fakeRepo { return &fakeRepo{projects: map[string]domain.Project{}} }

func (f *fakeRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrProjectNotFound()
	}
	return p, nil
}

func (f *fakeRepo) sorted() []domain.Project {
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRepo) List(ctx context.Context, flt domain.ProjectFilter, pg domain.PageRequest) ([]domain.Project, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFlt = flt
	var out []domain.Project
	for _, p := range f.sorted() {
		if flt.MemberID != "" && !p.IsTeamMember(flt.MemberID) {
			continue
		}
		if flt.Status != "" && p.Status != flt.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Project
	for _, p := range f.sorted() {
		if p.IsTeamMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(), nil
}

func (f *fakeRepo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.projects, id)
	return nil
}

func (f *fakeRepo) NameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if strings.EqualFold(p.Name, name) && p.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMembers map[string]domain.AccountSummary

func (f fakeMembers) Summaries(ctx context.Context, ids []string) (map[string]domain.AccountSummary, error) {
	out := map[string]domain.AccountSummary{}
	for _, id := range ids {
		if a, ok := f[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func uid(n int) string { return fmt.Sprintf("00000000-0000-0000-0000-%012d", n) }

var (
	dmID   = uid(101)
	mgrID  = uid(102)
	leadID = uid(103)
	devID  = uid(104)
	userID = uid(105) // plain user, not staffable
	adm    = domain.Actor{ID: uid(100), Role: domain.RoleAdmin}
)

type env struct {
	svc  *Service
	repo *fakeRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	members := fakeMembers{
		adm.ID: {ID: adm.ID, Username: "admin", Email: "admin@corp.io", Role: domain.RoleAdmin},
		dmID:   {ID: dmID, Username: "dm", Email: "dm@corp.io", Role: domain.RoleEmployee},
		mgrID:  {ID: mgrID, Username: "mgr", Email: "mgr@corp.io", Role: domain.RoleEmployee},
		leadID: {ID: leadID, Username: "lead", Email: "lead@corp.io", Role: domain.RoleEmployee},
		devID:  {ID: devID, Username: "dev", Email: "dev@corp.io", Role: domain.RoleEmployee},
		userID: {ID: userID, Username: "plain", Email: "plain@corp.io", Role: domain.RoleUser},
	}
	e := &env{repo: newFakeRepo()}
	n := 0
	e.svc = NewService(e.repo, members).
		WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }).
		WithIDs(func() string {
			n++
			return uid(n)
		})
	return e
}

func validInput(name string) CreateInput {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	return CreateInput{
		Name:              name,
		StartDate:         start,
		EndDate:           start.AddDate(0, 3, 0),
		Department:        "Eng",
		DeliveryManagerID: dmID,
		ManagerID:         mgrID,
		LeadID:            leadID,
		DeveloperIDs:      []string{devID, devID},
		Tags:              []string{" go ", ""},
	}
}
