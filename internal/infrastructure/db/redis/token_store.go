package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/admindash/console/internal/core/domain"
)

const defaultNamespace = "dashboard"

// TokenStore keeps the console credential under a single Redis key.
// Key format: <namespace>:<key>
type TokenStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, namespace, key string) *TokenStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if key == "" {
		key = "token"
	}
	return &TokenStore{client: client, key: namespace + ":" + key, now: time.Now}
}

// Get returns the stored credential or domain.ErrNoCredential.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	if token == "" {
		return "", domain.ErrNoCredential
	}
	return token, nil
}

// Set stores the credential. A JWT's expiry becomes the key TTL so Redis
// drops the credential when the server would reject it anyway.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl(token)).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Clear deletes the key.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ttl is 0 (no expiry) unless token is a JWT carrying a future exp claim.
func (s *TokenStore) ttl(token string) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already expired: keep it briefly so the next call gets the 401.
		return time.Second
	}
	return ttl
}
