package mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/you/bookstore/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateTokenFunc func(userID uint, role string) (string, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateToken generates a token for the user
func (m *MockTokenService) GenerateToken(userID uint, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, role)
	}
	// Default behavior: return a mock token that ValidateToken understands
	return fmt.Sprintf("token_user_%d_%s", userID, role), nil
}

// ValidateToken validates a token and returns claims
func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	// Default behavior: accept tokens produced by GenerateToken
	if !strings.HasPrefix(token, "token_user_") {
		return nil, domain.ErrTokenInvalid
	}
	var (
		userID uint
		role   string
	)
	rest := strings.TrimPrefix(token, "token_user_")
	idx := strings.Index(rest, "_")
	if idx <= 0 {
		return nil, domain.ErrTokenInvalid
	}
	if _, err := fmt.Sscanf(rest[:idx], "%d", &userID); err != nil || userID == 0 {
		return nil, domain.ErrTokenInvalid
	}
	role = rest[idx+1:]

	now := time.Now()
	return &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		TokenID:   "jti_" + rest,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(7 * 24 * time.Hour).Unix(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
