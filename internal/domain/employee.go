package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// LeaveBalance holds the remaining days per leave type.
type LeaveBalance struct {
	Sick      int `json:"sickLeave"`
	Casual    int `json:"casualLeave"`
	Privilege int `json:"privilegeLeave"`
}

type Employee struct {
	ID            string
	UserID        string
	Name          string
	ContactNo     string
	Email         string
	Gender        Gender
	Department    string
	SubDepartment string
	Leaves        LeaveBalance
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// User is populated by reads that join the owning account.
	User *AccountSummary
}

// EmployeeFilter narrows employee listings; empty fields are ignored.
type EmployeeFilter struct {
	Department    string
	SubDepartment string
	Gender        Gender
}
