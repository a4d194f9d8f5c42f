// Package nav holds the console's route table and the authentication guard
// evaluated before every navigation. The guard is a pure function of the
// target route and the session flag; it never suspends or touches the
// network.
package nav

import "strings"

// Route names.
const (
	RouteLogin    = "login"
	RouteRegister = "register"
	RouteAccounts = "accounts"
	RouteCreate   = "create-account"
	RouteEdit     = "edit-account"
)

// Route maps a logical view to a path pattern and its auth requirement.
// Auth is required unless a route opts out explicitly.
type Route struct {
	Name   string
	Path   string
	Public bool
}

var routes = []Route{
	{Name: RouteLogin, Path: "/login", Public: true},
	{Name: RouteRegister, Path: "/register", Public: true},
	{Name: RouteAccounts, Path: "/accounts"},
	{Name: RouteCreate, Path: "/accounts/create"},
	{Name: RouteEdit, Path: "/accounts/:id/edit"},
}

// Routes returns the full route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Action is the guard's verdict on a navigation attempt.
type Action int

const (
	Proceed Action = iota
	RedirectLogin
	RedirectAccounts
)

// Decision carries the verdict plus, on a login redirect caused by an
// unauthenticated access attempt, the originally requested path so the
// console can return there after login.
type Decision struct {
	Action   Action
	ReturnTo string
}

// Find matches a concrete path against the route table. Pattern segments
// starting with ':' match any single segment.
func Find(path string) (Route, bool) {
	segs := split(path)
	for _, r := range routes {
		if matches(split(r.Path), segs) {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve evaluates the guard for a navigation to path.
//
// Unknown paths behave like the catch-all route: they redirect toward
// login, which an authenticated session in turn bounces to the list view.
func Resolve(path string, authenticated bool) Decision {
	route, ok := Find(path)
	if !ok {
		if authenticated {
			return Decision{Action: RedirectAccounts}
		}
		return Decision{Action: RedirectLogin}
	}

	if !route.Public && !authenticated {
		return Decision{Action: RedirectLogin, ReturnTo: path}
	}
	if (route.Name == RouteLogin || route.Name == RouteRegister) && authenticated {
		return Decision{Action: RedirectAccounts}
	}
	return Decision{Action: Proceed}
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func matches(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
