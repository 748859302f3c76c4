package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/admindash/console/internal/core/service"
)

// Authenticator reports whether the console currently holds a session.
type Authenticator interface {
	Authenticated() bool
}

// GuardConfig configures Guard.
type GuardConfig struct {
	// Skipper exempts requests from the guard (probes, metrics, logout).
	Skipper echomiddleware.Skipper
}

// Guard resolves every request against the session: anonymous visitors are
// sent to the auth screen, signed-in operators are kept away from it, and
// unknown views are not found.
func Guard(auth Authenticator) echo.MiddlewareFunc {
	return GuardWithConfig(auth, GuardConfig{})
}

// GuardWithConfig returns a Guard middleware with config.
func GuardWithConfig(auth Authenticator, cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			decision := service.Resolve(auth.Authenticated(), c.Request().URL.Path)
			switch decision.Outcome {
			case service.RouteRedirect:
				return c.Redirect(http.StatusFound, decision.Target)
			case service.RouteNotFound:
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}

// SkipPaths returns a Skipper matching the exact request paths given.
func SkipPaths(paths ...string) echomiddleware.Skipper {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(c echo.Context) bool {
		_, ok := set[c.Request().URL.Path]
		return ok
	}
}
