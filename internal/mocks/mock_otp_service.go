package mocks

import (
	"context"
	"time"

	"github.com/you/bookstore/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, phone string) (*domain.OTPDispatch, error)
	ConsumeFunc func(ctx context.Context, phone, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue issues a code for the phone
func (m *MockOTPService) Issue(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phone)
	}
	// Default behavior: fixed code
	return &domain.OTPDispatch{
		Phone:     phone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

// Consume consumes a code for the phone
func (m *MockOTPService) Consume(ctx context.Context, phone, code string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, phone, code)
	}
	// Default behavior: accept the fixed code
	if code == "123456" {
		return nil
	}
	return domain.ErrOTPInvalid
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
