package service

import "strings"

const (
	// LoginPath is the auth screen and the login entry point.
	LoginPath = "/auth"
	// LandingPath is where an authenticated operator lands by default.
	LandingPath = "/"
)

// AppRoutes are the views reachable once signed in.
var AppRoutes = []string{"/", "/products", "/users", "/sales", "/orders", "/analytics", "/settings"}

// RouteOutcome is what the guard decided for a requested path.
type RouteOutcome int

const (
	RouteAllow RouteOutcome = iota
	RouteRedirect
	RouteNotFound
)

// RouteDecision is the result of Resolve. Target is set for redirects only.
type RouteDecision struct {
	Outcome RouteOutcome
	Target  string
}

// Resolve decides which view a request may reach. Anonymous operators only
// ever see the auth screen; authenticated operators are sent from the auth
// screen to the landing view.
func Resolve(authenticated bool, path string) RouteDecision {
	path = cleanPath(path)
	onAuth := isAuthPath(path)

	if !authenticated {
		if onAuth {
			return RouteDecision{Outcome: RouteAllow}
		}
		return RouteDecision{Outcome: RouteRedirect, Target: LoginPath}
	}

	if onAuth {
		return RouteDecision{Outcome: RouteRedirect, Target: LandingPath}
	}
	if isAppPath(path) {
		return RouteDecision{Outcome: RouteAllow}
	}
	return RouteDecision{Outcome: RouteNotFound}
}

func isAuthPath(path string) bool {
	return path == LoginPath || strings.HasPrefix(path, LoginPath+"/")
}

func isAppPath(path string) bool {
	for _, r := range AppRoutes {
		if path == r {
			return true
		}
		if r != "/" && strings.HasPrefix(path, r+"/") {
			return true
		}
	}
	return false
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
