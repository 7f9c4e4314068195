package mocks

import (
	"context"

	"github.com/you/bookstore/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	UpsertForPhoneFunc  func(ctx context.Context, code *domain.OneTimeCode) error
	FindMatchingFunc    func(ctx context.Context, phone, code string) (*domain.OneTimeCode, error)
	ConsumeMatchingFunc func(ctx context.Context, phone, code string) (*domain.OneTimeCode, error)
	DeleteForPhoneFunc  func(ctx context.Context, phone string) error
	DeleteExpiredFunc   func(ctx context.Context) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// UpsertForPhone stores the code for its phone
func (m *MockOTPRepository) UpsertForPhone(ctx context.Context, code *domain.OneTimeCode) error {
	if m.UpsertForPhoneFunc != nil {
		return m.UpsertForPhoneFunc(ctx, code)
	}
	return nil
}

// FindMatching looks up a matching live code
func (m *MockOTPRepository) FindMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	if m.FindMatchingFunc != nil {
		return m.FindMatchingFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPNotFound
}

// ConsumeMatching looks up and deletes a matching live code
func (m *MockOTPRepository) ConsumeMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	if m.ConsumeMatchingFunc != nil {
		return m.ConsumeMatchingFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPNotFound
}

// DeleteForPhone removes the code for a phone
func (m *MockOTPRepository) DeleteForPhone(ctx context.Context, phone string) error {
	if m.DeleteForPhoneFunc != nil {
		return m.DeleteForPhoneFunc(ctx, phone)
	}
	return nil
}

// DeleteExpired removes expired codes
func (m *MockOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
