package domain

import "testing"

func TestProject_RoleOfAndTeam(t *testing.T) {
	p := Project{
		DeliveryManagerID: "dm",
		ManagerID:         "m",
		LeadID:            "l",
		DeveloperIDs:      []string{"d1", "d2", "m"},
	}

	cases := map[string]TeamRole{
		"dm": TeamDeliveryManager,
		"m":  TeamManager,
		"l":  TeamLead,
		"d2": TeamDeveloper,
	}
	for id, want := range cases {
		got, ok := p.RoleOf(id)
		if !ok || got != want {
			t.Fatalf("RoleOf(%s)=%s,%v want %s", id, got, ok, want)
		}
	}
	if p.IsTeamMember("x") || p.IsTeamMember("") {
		t.Fatalf("unexpected membership")
	}

	ids := p.TeamIDs()
	if len(ids) != 5 {
		t.Fatalf("expected 5 distinct ids, got %v", ids)
	}
}

func TestPageInfo(t *testing.T) {
	p := PageRequest{}.Normalize()
	if p.Page != 1 || p.Limit != DefaultPageLimit {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	info := NewPageInfo(PageRequest{Page: 2, Limit: 10}, 25)
	if info.TotalPages != 3 || !info.HasNext || !info.HasPrev {
		t.Fatalf("unexpected page info: %+v", info)
	}

	last := NewPageInfo(PageRequest{Page: 3, Limit: 10}, 25)
	if last.HasNext {
		t.Fatalf("last page should not have next")
	}
	if (PageRequest{Page: 3, Limit: 10}).Offset() != 20 {
		t.Fatalf("unexpected offset")
	}
}
