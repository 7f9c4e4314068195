package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/bookstore/domain"
)

// MockTokenDenylist implements domain.TokenDenylist interface for testing.
// Without overrides it keeps denied ids in memory.
type MockTokenDenylist struct {
	DenyFunc     func(ctx context.Context, tokenID string, until time.Time) error
	IsDeniedFunc func(ctx context.Context, tokenID string) (bool, error)

	mu     sync.Mutex
	denied map[string]time.Time
}

// NewMockTokenDenylist creates a new MockTokenDenylist with default behaviors
func NewMockTokenDenylist() *MockTokenDenylist {
	return &MockTokenDenylist{denied: make(map[string]time.Time)}
}

// Deny records a token id
func (m *MockTokenDenylist) Deny(ctx context.Context, tokenID string, until time.Time) error {
	if m.DenyFunc != nil {
		return m.DenyFunc(ctx, tokenID, until)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[tokenID] = until
	return nil
}

// IsDenied reports whether a token id was denied
func (m *MockTokenDenylist) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	if m.IsDeniedFunc != nil {
		return m.IsDeniedFunc(ctx, tokenID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.denied[tokenID]
	return ok, nil
}

// Compile-time interface compliance verification
var _ domain.TokenDenylist = (*MockTokenDenylist)(nil)
