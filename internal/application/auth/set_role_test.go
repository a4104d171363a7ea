package auth

import (
	"context"
	"testing"

	"github.com/baechuer/peoplehub/internal/domain"
)

const (
	rootID   = "5b0c1c3e-8a52-4f0e-9b4d-0f6b8f1d2a01"
	root2ID  = "5b0c1c3e-8a52-4f0e-9b4d-0f6b8f1d2a02"
	adminID  = "5b0c1c3e-8a52-4f0e-9b4d-0f6b8f1d2a03"
	bobID    = "5b0c1c3e-8a52-4f0e-9b4d-0f6b8f1d2a04"
	helperID = "5b0c1c3e-8a52-4f0e-9b4d-0f6b8f1d2a05"
)

func TestSetRole_SuperadminOnly(t *testing.T) {
	t.Parallel()

	env := newSvcForTest(t)
	admin := env.seedAccount(adminID, "admin@x.com", domain.RoleAdmin, true)
	env.seedAccount(bobID, "bob@x.com", domain.RoleUser, true)

	_, err := env.svc.SetRole(context.Background(), admin.Actor(), bobID, "admin")
	requireErrCode(t, err, "forbidden")

	audits := *env.audits
	last := audits[len(audits)-1]
	if last.action != "admin.set_role" || last.fields["result"] != "error" || last.fields["error_code"] != "forbidden" {
		t.Fatalf("unexpected audit: %+v", last)
	}
}

func TestSetRole_MalformedTargetID(t *testing.T) {
	t.Parallel()

	env := newSvcForTest(t)
	root := env.seedAccount(rootID, "root@x.com", domain.RoleSuperadmin, true)

	for _, id := range []string{"not-a-uuid", "u1", "5b0c1c3e-8a52"} {
		_, err := env.svc.SetRole(context.Background(), root.Actor(), id, "admin")
		requireErrCode(t, err, "validation_failed")
	}

	audits := *env.audits
	last := audits[len(audits)-1]
	if last.fields["result"] != "error" || last.fields["error_code"] != "validation_failed" {
		t.Fatalf("unexpected audit: %+v", last)
	}
}

func TestSetRole_Rules(t *testing.T) {
	t.Parallel()

	env := newSvcForTest(t)
	ctx := context.Background()
	root := env.seedAccount(rootID, "root@x.com", domain.RoleSuperadmin, true)
	env.seedAccount(bobID, "bob@x.com", domain.RoleUser, true)

	_, err := env.svc.SetRole(ctx, root.Actor(), rootID, "admin")
	requireErrCode(t, err, "cannot_affect_self")

	_, err = env.svc.SetRole(ctx, root.Actor(), bobID, "moderator")
	requireErrCode(t, err, "invalid_role")

	sum, err := env.svc.SetRole(ctx, root.Actor(), bobID, "superadmin")
	if err != nil || sum.Role != domain.RoleSuperadmin {
		t.Fatalf("promote: %+v %v", sum, err)
	}

	// two superadmins now; demoting one is fine
	other := env.users.get(bobID).Actor()
	if _, err := env.svc.SetRole(ctx, other, rootID, "admin"); err != nil {
		t.Fatalf("demote: %v", err)
	}

	// bob is the last superadmin
	env.seedAccount(helperID, "helper@x.com", domain.RoleAdmin, true)
	_, err = env.svc.SetRole(ctx, domain.Actor{ID: root2ID, Role: domain.RoleSuperadmin}, bobID, "user")
	requireErrCode(t, err, "last_superadmin_protected")
}
