package entity

import "strings"

type Role string

const (
	RoleSalesperson Role = "SALESPERSON"
	RoleSupervisor  Role = "SUPERVISOR"
	RoleAdmin       Role = "ADMIN"
)

// Privileged roles may release reservations held by someone else and run
// bulk-delete.
func (r Role) Privileged() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

func (r Role) Admin() bool {
	return r == RoleAdmin
}

func ParseRole(raw string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleSupervisor:
		return RoleSupervisor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleSalesperson
	}
}

// Identity is the authenticated user as handed over by the identity
// provider. Email doubles as the reservation holder key.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
