package domain

import "strings"

// Role is the platform role carried in the session claims.
type Role string

// Role constants - EXACT values accepted (case-insensitive on input)
const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleConsultant Role = "consultant"
	RoleStaff      Role = "staff"
	RoleCustomer   Role = "customer"
)

var allRoles = []Role{RoleAdmin, RoleManager, RoleConsultant, RoleStaff, RoleCustomer}

// Roles returns every known role in display order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole normalizes input like " Manager " into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleConsultant, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// Privileged reports whether the role can moderate content (Manager or Admin).
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleManager:
		return "Manager"
	case RoleConsultant:
		return "Consultant"
	case RoleStaff:
		return "Staff"
	case RoleCustomer:
		return "Customer"
	default:
		return "Unknown"
	}
}
