package roles

// Role determines which application areas a user may reach. The same table
// drives the route guard, the login redirect and the navbar on the web side,
// so role checks are never duplicated per handler.
type Role string

const (
	Owner  Role = "owner"
	Lawyer Role = "lawyer"
	Client Role = "client"
)

// LoginRoute is where unauthenticated users are sent.
const LoginRoute = "/auth/login"

// Application areas used by the permission table.
const (
	AreaDashboard    = "dashboard"
	AreaClients      = "clients"
	AreaCases        = "cases"
	AreaBilling      = "billing"
	AreaCalendar     = "calendar"
	AreaPortal       = "portal"
	AreaSubscription = "subscription"
)

// homeRoutes maps each role to its landing route after login and to the
// redirect target when a guard bounces the user off a page it may not see.
var homeRoutes = map[Role]string{
	Owner:  "/dashboard",
	Lawyer: "/dashboard",
	Client: "/portal-cliente",
}

// permissions is the single role -> area table consumed everywhere.
var permissions = map[Role][]string{
	Owner:  {AreaDashboard, AreaClients, AreaCases, AreaBilling, AreaCalendar, AreaSubscription},
	Lawyer: {AreaDashboard, AreaClients, AreaCases, AreaBilling, AreaCalendar},
	Client: {AreaPortal},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := homeRoutes[r]
	return ok
}

// HomeRoute returns the landing route for the role. Unknown roles fall back
// to the lawyer dashboard, matching the login redirect rule: clients go to
// the portal home, all other roles go to the dashboard.
func (r Role) HomeRoute() string {
	if route, ok := homeRoutes[r]; ok {
		return route
	}
	return homeRoutes[Lawyer]
}

// In reports whether r is in the allowed list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// CanAccess reports whether the role may use the given application area.
func (r Role) CanAccess(area string) bool {
	for _, a := range permissions[r] {
		if a == area {
			return true
		}
	}
	return false
}
