package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/config"
)

// EnsureAdmin creates the configured admin account if it does not exist yet.
// It is a no-op when no admin email or password is configured.
func EnsureAdmin(ctx context.Context, cfg *config.Config, users domain.UserRepository, passwords domain.PasswordService, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap lookup user: %w", err)
	}

	hashed, err := passwords.Hash(ctx, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap hash password: %w", err)
	}

	admin := &domain.User{
		Fullname:     "Admin",
		Email:        email,
		Phone:        cfg.AdminPhone,
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap create user: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap admin user created",
			zap.String("email", admin.Email),
			zap.Uint("user_id", admin.ID),
		)
	}
	return nil
}
