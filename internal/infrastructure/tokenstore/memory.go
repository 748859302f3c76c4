// Package tokenstore holds the process-local token store backends.
package tokenstore

import (
	"context"
	"sync"

	"github.com/admindash/console/internal/core/domain"
)

// Memory keeps the credential in process memory. It is lost on restart.
type Memory struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", domain.ErrNoCredential
	}
	return m.token, nil
}

func (m *Memory) Set(ctx context.Context, token string) error {
	if token == "" {
		return m.Clear(ctx)
	}
	m.mu.Lock()
	m.token, m.set = token, true
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.token, m.set = "", false
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }
