package ports

import (
	"context"

	"github.com/admindash/console/internal/core/domain"
)

// Session is the console's view of the authentication state.
type Session interface {
	State() domain.Session
	Authenticated() bool
	Login(ctx context.Context, email, password string) domain.LoginResult
	Logout(ctx context.Context)
	ClearError()
}
