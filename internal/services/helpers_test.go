package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/mocks"
)

// authTestDeps bundles the mocks behind an AuthService under test
type authTestDeps struct {
	userRepo    *mocks.MockUserRepository
	otpSvc      *mocks.MockOTPService
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	denylist    *mocks.MockTokenDenylist
	audit       *mocks.MockAuditLogger
}

func newAuthTestDeps() *authTestDeps {
	return &authTestDeps{
		userRepo:    mocks.NewMockUserRepository(),
		otpSvc:      mocks.NewMockOTPService(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		denylist:    mocks.NewMockTokenDenylist(),
		audit:       mocks.NewMockAuditLogger(),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, deps *authTestDeps) domain.AuthService {
	t.Helper()
	return NewAuthService(deps.userRepo, deps.otpSvc, deps.passwordSvc, deps.tokenSvc, deps.denylist, deps.audit, nil)
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Fullname:     "Test Reader",
		Email:        "test@example.com",
		Phone:        "+1234567890",
		College:      "Test College",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createValidSignup creates a complete signup input for testing
func createValidSignup(t *testing.T) domain.SignupInput {
	t.Helper()

	return domain.SignupInput{
		Fullname: "New Reader",
		Phone:    "+1987654321",
		Email:    "newuser@example.com",
		College:  "Open University",
		Password: "securepassword123",
	}
}

// createValidBook creates a catalog entry for testing
func createValidBook(t *testing.T, id uint) *domain.Book {
	t.Helper()

	return &domain.Book{
		ID:          id,
		Title:       "The Go Programming Language",
		BookImage:   "https://img.example.com/gopl.png",
		Description: "A book about Go",
		Categories:  []string{"programming"},
		Cost:        29.99,
	}
}

// createTestContext creates a context for testing
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
