package auth

// Routes known to the guard
const (
	LoginRoute     = "/login"
	DashboardRoute = "/"
	CasesRoute     = "/cases"
	CalendarRoute  = "/calendar"
)

// Authenticator is the signal the guard reads
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard decides whether a route may be shown
type Guard struct {
	auth Authenticator
}

// NewGuard creates a Guard reading the given signal
func NewGuard(a Authenticator) *Guard {
	return &Guard{auth: a}
}

// Resolve returns the route to show for the requested one. allowed is false
// when the caller must redirect to target instead.
func (g *Guard) Resolve(route string) (target string, allowed bool) {
	authed := g.auth.IsAuthenticated()

	if route == LoginRoute {
		if authed {
			return DashboardRoute, false
		}
		return LoginRoute, true
	}

	if !authed {
		return LoginRoute, false
	}
	return route, true
}
