package dto

import (
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

type CreateEmployeeRequest struct {
	Name          string `json:"employeeName" validate:"required,max=100"`
	ContactNo     string `json:"contactNo" validate:"required,max=20"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female Other"`
	Department    string `json:"department" validate:"required,max=100"`
	SubDepartment string `json:"subDepartment" validate:"required,max=100"`
	Username      string `json:"username" validate:"omitempty,max=50"`
	Password      string `json:"password" validate:"omitempty,max=72"`
}

type UpdateEmployeeRequest struct {
	Name          *string `json:"employeeName" validate:"omitempty,min=1,max=100"`
	ContactNo     *string `json:"contactNo" validate:"omitempty,min=1,max=20"`
	Email         *string `json:"email" validate:"omitempty,email,max=254"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Department    *string `json:"department" validate:"omitempty,min=1,max=100"`
	SubDepartment *string `json:"subDepartment" validate:"omitempty,min=1,max=100"`
}

type EmployeeView struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	Name           string                 `json:"employeeName"`
	ContactNo      string                 `json:"contactNo"`
	Email          string                 `json:"email"`
	Gender         domain.Gender          `json:"gender"`
	Department     string                 `json:"department"`
	SubDepartment  string                 `json:"subDepartment"`
	SickLeave      int                    `json:"sickLeave"`
	CasualLeave    int                    `json:"casualLeave"`
	PrivilegeLeave int                    `json:"privilegeLeave"`
	User           *domain.AccountSummary `json:"user,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func NewEmployeeView(e domain.Employee) EmployeeView {
	return EmployeeView{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		ContactNo:      e.ContactNo,
		Email:          e.Email,
		Gender:         e.Gender,
		Department:     e.Department,
		SubDepartment:  e.SubDepartment,
		SickLeave:      e.Leaves.Sick,
		CasualLeave:    e.Leaves.Casual,
		PrivilegeLeave: e.Leaves.Privilege,
		User:           e.User,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func NewEmployeeViews(es []domain.Employee) []EmployeeView {
	out := make([]EmployeeView, 0, len(es))
	for _, e := range es {
		out = append(out, NewEmployeeView(e))
	}
	return out
}

type CreateEmployeeResponse struct {
	Message     string       `json:"message"`
	Employee    EmployeeView `json:"employee"`
	UserCreated bool         `json:"userCreated"`
}

type EmployeeResponse struct {
	Message  string       `json:"message,omitempty"`
	Employee EmployeeView `json:"employee"`
}

type EmployeeListResponse struct {
	Employees      []EmployeeView `json:"employees"`
	TotalEmployees int            `json:"totalEmployees"`
	domain.PageInfo
}

type EmailsResponse struct {
	Count  int      `json:"count"`
	Emails []string `json:"emails"`
}

type LeavesResponse struct {
	EmployeeID string              `json:"employeeId"`
	Leaves     domain.LeaveBalance `json:"leaves"`
}
