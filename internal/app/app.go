package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/you/bookstore/internal/config"
	"github.com/you/bookstore/internal/infrastructure/database"
	"github.com/you/bookstore/internal/server"
	"github.com/you/bookstore/internal/telemetry"
)

// NewLogger builds the process logger for the configured environment
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Run opens the database and Redis, wires the service and serves HTTP until ctx is done
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	tp, err := telemetry.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(stopCtx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	db, err := database.Open(cfg.DSN, cfg.DBLogLevel)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}

	c, err := NewContainer(cfg, Infra{DB: db, Redis: rdb}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close connections", zap.Error(err))
		}
	}()

	if err := EnsureAdmin(ctx, cfg, c.UserRepo, c.PasswordSvc, logger); err != nil {
		return err
	}

	c.StartBackground(ctx)

	return server.NewHTTPServer(c.Router(), logger).Run(ctx, ":"+cfg.Port)
}
