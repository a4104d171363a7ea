package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/peoplehub/internal/application/project"
	"github.com/baechuer/peoplehub/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, "validation_failed", de.Code)
	out := map[string]string{}
	for _, f := range de.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	err := Validate(CreateEmployeeRequest{Email: "nope", Gender: "Robot"})
	f := fieldsOf(t, err)

	assert.Contains(t, f, "employeeName")
	assert.Contains(t, f, "contactNo")
	assert.Contains(t, f["email"], "valid email")
	assert.Contains(t, f, "gender")
	assert.NotContains(t, f, "password")
}

func TestValidate_OK(t *testing.T) {
	req := CreateEmployeeRequest{
		Name: "Ann Lee", ContactNo: "0400000000", Email: "ann@x.com",
		Gender: "Female", Department: "Engineering", SubDepartment: "Platform",
	}
	assert.NoError(t, Validate(req))
	assert.NoError(t, Validate(SignupRequest{}))
}

func TestValidate_UpdateEmployeePointers(t *testing.T) {
	empty := ""
	assert.NoError(t, Validate(UpdateEmployeeRequest{}))

	f := fieldsOf(t, Validate(UpdateEmployeeRequest{Name: &empty}))
	assert.Contains(t, f, "employeeName")
}

func TestValidate_ProjectLimits(t *testing.T) {
	req := CreateProjectRequest{
		Name: strings.Repeat("x", 101),
		Tags: []string{strings.Repeat("t", 51)},
	}
	f := fieldsOf(t, Validate(req))
	assert.Contains(t, f, "projectName")
	assert.Contains(t, f, "tags[0]")
}

func TestValidate_SetRole(t *testing.T) {
	assert.NoError(t, Validate(SetRoleRequest{Role: "admin"}))
	f := fieldsOf(t, Validate(SetRoleRequest{Role: "owner"}))
	assert.Contains(t, f, "role")
}

func TestDate_Unmarshal(t *testing.T) {
	var req CreateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2026-03-01","endDate":"2026-04-01T09:30:00Z"}`), &req))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), req.StartDate.Time)
	assert.Equal(t, 9, req.EndDate.Hour())

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":"01/03/2026"}`), &req))
}

func TestUpdateProjectRequest_Input(t *testing.T) {
	var req UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"projectName":"Atlas","endDate":"2026-05-01","developers":[]}`), &req))

	in := req.Input()
	require.NotNil(t, in.Name)
	assert.Equal(t, "Atlas", *in.Name)
	assert.Nil(t, in.StartDate)
	require.NotNil(t, in.EndDate)
	require.NotNil(t, in.DeveloperIDs)
	assert.Empty(t, *in.DeveloperIDs)
}

func TestNewProjectView_NeverNilSlices(t *testing.T) {
	v := NewProjectView(project.Detail{Project: domain.Project{ID: "p1", Name: "Atlas"}})
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tags":[]`)
	assert.Contains(t, string(b), `"developers":[]`)
	assert.Contains(t, string(b), `"deliveryManager":null`)
}

func TestNewEmployeeView_FlattensLeaves(t *testing.T) {
	v := NewEmployeeView(domain.Employee{ID: "e1", Leaves: domain.LeaveBalance{Sick: 2, Casual: 1, Privilege: 3}})
	assert.Equal(t, 2, v.SickLeave)
	assert.Equal(t, 1, v.CasualLeave)
	assert.Equal(t, 3, v.PrivilegeLeave)
}
