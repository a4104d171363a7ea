package domain

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	// Superadmin manages admins and role assignments.
	RoleSuperadmin Role = "superadmin"
	// Admin manages employees and projects.
	RoleAdmin Role = "admin"
	// Employee is an account linked to an employee record.
	RoleEmployee Role = "employee"
	// User is the default role of a self-registered account.
	RoleUser Role = "user"
)

var allRoles = []Role{RoleSuperadmin, RoleAdmin, RoleEmployee, RoleUser}

// ParseRole converts untrusted input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole(s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	for _, x := range allRoles {
		if r == x {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// IsAdmin reports admin-level privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// AdminRoles is the allow-list shared by administrative operations.
var AdminRoles = []Role{RoleAdmin, RoleSuperadmin}

// StaffRoles can be assigned to project teams.
var StaffRoles = []Role{RoleEmployee, RoleAdmin, RoleSuperadmin}
