package ports

import "context"

// TokenStore persists the single bearer credential of the console process.
// Get returns domain.ErrNoCredential when nothing is stored; Clear removes
// the key entirely.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
