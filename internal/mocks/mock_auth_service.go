package mocks

import (
	"context"
	"time"

	"github.com/you/bookstore/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SignupFunc            func(ctx context.Context, input domain.SignupInput) (*domain.User, error)
	LoginWithEmailFunc    func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SendOTPFunc           func(ctx context.Context, phone string) (*domain.OTPDispatch, error)
	VerifyOTPAndLoginFunc func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	GetProfileFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	LogoutFunc            func(ctx context.Context, claims *domain.TokenClaims) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Signup registers a new user
func (m *MockAuthService) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, input)
	}
	// Default behavior: return a mock user
	return &domain.User{
		ID:        1,
		Fullname:  input.Fullname,
		Email:     input.Email,
		Phone:     input.Phone,
		College:   input.College,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// LoginWithEmail authenticates with email and password
func (m *MockAuthService) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginWithEmailFunc != nil {
		return m.LoginWithEmailFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:  &domain.User{ID: 1, Email: email, Role: domain.RoleUser},
		Token: "token_user_1_user",
	}, nil
}

// SendOTP issues a login code
func (m *MockAuthService) SendOTP(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone)
	}
	return &domain.OTPDispatch{Phone: phone, Code: "123456", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil
}

// VerifyOTPAndLogin authenticates with a login code
func (m *MockAuthService) VerifyOTPAndLogin(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPAndLoginFunc != nil {
		return m.VerifyOTPAndLoginFunc(ctx, phone, code)
	}
	return &domain.AuthResult{
		User:  &domain.User{ID: 1, Phone: phone, Role: domain.RoleUser},
		Token: "token_user_1_user",
	}, nil
}

// GetProfile returns the user profile
func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "test@example.com", Role: domain.RoleUser}, nil
}

// Logout revokes the token
func (m *MockAuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, claims)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
