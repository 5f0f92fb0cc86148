package enums

import "fmt"

// Role represents the access profile assigned to a user account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSeller   Role = "VENDEDOR"
	RoleCustomer Role = "CLIENTE"
)

var validRoles = []Role{
	RoleAdmin,
	RoleSeller,
	RoleCustomer,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Label returns the Portuguese display name for the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleSeller:
		return "Vendedor"
	case RoleCustomer:
		return "Cliente"
	}
	return string(r)
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
