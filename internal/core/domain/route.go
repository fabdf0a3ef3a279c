package domain

// Route is a client-side view address.
type Route string

// Known routes.
const (
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteLinks    Route = "/links"
)

// Known reports whether r is one of the defined routes.
func (r Route) Known() bool {
	switch r {
	case RouteHome, RouteLogin, RouteRegister, RouteLinks:
		return true
	}
	return false
}

// Protected reports whether r requires a stored credential.
func (r Route) Protected() bool {
	return r == RouteLinks
}
