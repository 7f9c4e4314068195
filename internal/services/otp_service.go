package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/bookstore/domain"
	"go.uber.org/zap"
)

// OTPServiceImpl implements domain.OTPService on top of an OTPRepository
type OTPServiceImpl struct {
	repo            domain.OTPRepository
	generator       domain.CodeGenerator
	notificationSvc domain.NotificationService
	config          OTPConfig
	logger          *zap.Logger
}

// OTPConfig holds the code lifecycle settings
type OTPConfig struct {
	TTL time.Duration
	// Now overrides the clock used to compute expiry. Defaults to time.Now.
	Now func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(
	repo domain.OTPRepository,
	generator domain.CodeGenerator,
	notificationSvc domain.NotificationService,
	config OTPConfig,
	logger *zap.Logger,
) domain.OTPService {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OTPServiceImpl{
		repo:            repo,
		generator:       generator,
		notificationSvc: notificationSvc,
		config:          config,
		logger:          logger,
	}
}

// Issue implements domain.OTPService. Any previous code for the phone is replaced.
func (s *OTPServiceImpl) Issue(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
	code, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &domain.OneTimeCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: s.config.Now().Add(s.config.TTL),
	}
	if err := s.repo.UpsertForPhone(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// a code the user never received must not stay valid
		if delErr := s.repo.DeleteForPhone(ctx, phone); delErr != nil {
			s.logger.Error("failed to remove undelivered OTP", zap.String("phone", phone), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return &domain.OTPDispatch{
		Phone:     phone,
		Code:      code,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Consume implements domain.OTPService.
// Returns ErrOTPInvalid for absent or mismatched codes and ErrOTPExpired for expired ones.
func (s *OTPServiceImpl) Consume(ctx context.Context, phone, code string) error {
	_, err := s.repo.ConsumeMatching(ctx, phone, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrOTPNotFound):
		return domain.ErrOTPInvalid
	case errors.Is(err, domain.ErrOTPExpired):
		return domain.ErrOTPExpired
	default:
		return fmt.Errorf("failed to verify OTP: %w", err)
	}
}

// OTPSweeper periodically removes expired codes from stores without native expiry
type OTPSweeper struct {
	repo     domain.OTPRepository
	interval time.Duration
	logger   *zap.Logger
}

// NewOTPSweeper creates a sweeper. A non-positive interval defaults to one minute.
func NewOTPSweeper(repo domain.OTPRepository, interval time.Duration, logger *zap.Logger) *OTPSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OTPSweeper{repo: repo, interval: interval, logger: logger.Named("otp_sweeper")}
}

// Run sweeps every interval until ctx is cancelled
func (s *OTPSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce removes expired codes and returns how many were deleted
func (s *OTPSweeper) SweepOnce(ctx context.Context) int64 {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("otp sweep failed", zap.Error(err))
		}
		return 0
	}
	if n > 0 {
		s.logger.Debug("expired otps removed", zap.Int64("count", n))
	}
	return n
}
