// Package nav maps roles to the screens they may open. The route sets
// are plain data so a new role or screen is a table edit, not new code.
package nav

import (
	"github.com/vitorarj/sales-manager/pkg/enums"
)

// DefaultRoute is where every role lands and where unknown requests
// fall back to.
const DefaultRoute = "/dashboard"

var routesByRole = map[enums.Role][]string{
	enums.RoleAdmin:    {DefaultRoute, "/admin", "/users", "/products", "/orders"},
	enums.RoleSeller:   {DefaultRoute, "/seller", "/manage-orders", "/manage-products"},
	enums.RoleCustomer: {DefaultRoute, "/client", "/catalog", "/my-orders"},
}

// Routes reports the screens a role may open, in menu order. The
// returned slice is a copy.
func Routes(role enums.Role) []string {
	allowed, ok := routesByRole[role]
	if !ok {
		return []string{DefaultRoute}
	}
	return append([]string(nil), allowed...)
}

// Allowed reports whether the role may open the route.
func Allowed(role enums.Role, route string) bool {
	for _, candidate := range routesByRole[role] {
		if candidate == route {
			return true
		}
	}
	return route == DefaultRoute
}

// Resolve returns the route itself when the role may open it and the
// dashboard otherwise. An unknown role can only reach the dashboard.
func Resolve(role enums.Role, route string) string {
	if Allowed(role, route) {
		return route
	}
	return DefaultRoute
}

// Home is the screen a role lands on right after login.
func Home(role enums.Role) string {
	switch role {
	case enums.RoleAdmin:
		return "/admin"
	case enums.RoleSeller:
		return "/seller"
	case enums.RoleCustomer:
		return "/client"
	default:
		return DefaultRoute
	}
}
