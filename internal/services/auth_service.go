package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you/bookstore/domain"
	"go.uber.org/zap"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpSvc      domain.OTPService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	denylist    domain.TokenDenylist
	audit       domain.AuditLogger
	logger      *zap.Logger
}

// NewAuthService creates a new auth service. denylist may be nil, in which case Logout only audits.
func NewAuthService(
	userRepo domain.UserRepository,
	otpSvc domain.OTPService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	denylist domain.TokenDenylist,
	audit domain.AuditLogger,
	logger *zap.Logger,
) domain.AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpSvc:      otpSvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		denylist:    denylist,
		audit:       audit,
		logger:      logger,
	}
}

// Signup implements domain.AuthService
func (s *AuthServiceImpl) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	if isBlank(input.Fullname, input.Phone, input.Email, input.College, input.Password) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.userRepo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	switch {
	case err == nil && existing != nil:
		conflict := domain.ErrPhoneAlreadyRegistered
		if existing.Email == input.Email {
			conflict = domain.ErrEmailAlreadyRegistered
		}
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, 0).
			WithEmail(input.Email).WithPhone(input.Phone).WithError(conflict))
		return nil, conflict
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Fullname:     input.Fullname,
		Phone:        input.Phone,
		Email:        input.Email,
		College:      input.College,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).WithPhone(user.Phone))
	return user.Sanitized(), nil
}

// LoginWithEmail implements domain.AuthService.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if isBlank(email, password) {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithEmail(email).WithError(domain.ErrInvalidCredentials).WithMetadata("method", "email"))
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(ctx, user.PasswordHash, password) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(email).WithError(domain.ErrInvalidCredentials).WithMetadata("method", "email"))
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithEmail(email).WithMetadata("method", "email"))
	return result, nil
}

// SendOTP implements domain.AuthService. Nothing is stored for unknown phones.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
	if isBlank(phone) {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPRequestEvent, 0).
				WithPhone(phone).WithError(err))
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	dispatch, err := s.otpSvc.Issue(ctx, phone)
	if err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPRequestEvent, user.ID).
			WithPhone(phone).WithError(err))
		return nil, err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPRequestEvent, user.ID).
		WithPhone(phone).WithMetadata("expires_at", dispatch.ExpiresAt.UTC().Format(time.RFC3339)))
	return dispatch, nil
}

// VerifyOTPAndLogin implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTPAndLogin(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if isBlank(phone, code) {
		return nil, domain.ErrInvalidInput
	}

	if err := s.otpSvc.Consume(ctx, phone, code); err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPFailureEvent, 0).
			WithPhone(phone).WithError(err))
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// a code was issued for this phone, so the user should exist
			s.logger.Error("verified otp for unknown user", zap.String("phone", phone))
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.PhoneOTPVerifyEvent, user.ID).WithPhone(phone))
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithPhone(phone).WithMetadata("method", "otp"))
	return result, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Logout implements domain.AuthService. The token stays denied until its own expiry.
func (s *AuthServiceImpl) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if claims == nil {
		return domain.ErrTokenInvalid
	}
	if s.denylist != nil && claims.TokenID != "" {
		if err := s.denylist.Deny(ctx, claims.TokenID, time.Unix(claims.ExpiresAt, 0)); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, claims.UserID))
	return nil
}

func (s *AuthServiceImpl) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.tokenSvc.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.AuthResult{User: user.Sanitized(), Token: token}, nil
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit != nil {
		s.audit.LogEvent(ctx, event)
	}
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
