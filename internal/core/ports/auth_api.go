package ports

import (
	"context"

	"github.com/admindash/console/internal/core/domain"
)

// AuthAPI is the slice of the remote API the session depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.AuthResponse, error)
}

// Navigator moves the operator to another view. The console realises it as
// a redirect on the in-flight request.
type Navigator interface {
	Navigate(path string)
}
