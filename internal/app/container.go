package app

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/config"
	httpx "github.com/you/bookstore/internal/http"
	"github.com/you/bookstore/internal/http/handlers"
	"github.com/you/bookstore/internal/http/middleware"
	"github.com/you/bookstore/internal/infrastructure/audit"
	"github.com/you/bookstore/internal/infrastructure/auth"
	"github.com/you/bookstore/internal/infrastructure/notifications"
	"github.com/you/bookstore/internal/infrastructure/repositories"
	"github.com/you/bookstore/internal/services"
)

// Infra carries the connections the container is built on.
// SMS is optional; Twilio is used when nil.
type Infra struct {
	DB    *gorm.DB
	Redis redis.UniversalClient
	SMS   domain.NotificationService
}

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Infra  Infra

	// Repositories
	UserRepo       domain.UserRepository
	OTPRepo        domain.OTPRepository
	BookRepo       domain.BookRepository
	PurchaseRepo   domain.PurchaseRepository
	CollectionRepo domain.CollectionRepository
	Denylist       domain.TokenDenylist

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	CatalogSvc      domain.CatalogService
	PolicySvc       domain.PolicyService
	Casbin          *auth.CasbinService

	// Sweeper is set only for stores without native expiry
	Sweeper *services.OTPSweeper
}

// NewContainer wires every component on top of infra. The database must already be migrated.
func NewContainer(cfg *config.Config, infra Infra, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger, Infra: infra}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	if err := c.initPolicies(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	cfg := c.Config
	c.UserRepo = repositories.NewUserRepository(c.Infra.DB)
	c.BookRepo = repositories.NewBookRepository(c.Infra.DB)
	c.PurchaseRepo = repositories.NewPurchaseRepository(c.Infra.DB)
	c.CollectionRepo = repositories.NewCollectionRepository(c.Infra.DB)

	switch cfg.OTPStore {
	case config.OTPStoreDatabase:
		c.OTPRepo = repositories.NewGormOTPRepository(c.Infra.DB)
		c.Sweeper = services.NewOTPSweeper(c.OTPRepo, cfg.OTPSweepInterval, c.Logger)
	default:
		c.OTPRepo = repositories.NewRedisOTPRepository(c.Infra.Redis,
			repositories.WithOTPRetention(cfg.OTPRetention))
	}

	if cfg.RevokeTokens {
		c.Denylist = repositories.NewTokenDenylist(c.Infra.Redis)
	}
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost, cfg.HashWorkers)

	var jwtOpts []auth.JWTOption
	if c.Denylist != nil {
		jwtOpts = append(jwtOpts, auth.WithDenylist(c.Denylist))
	}
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, jwtOpts...)

	c.NotificationSvc = c.Infra.SMS
	if c.NotificationSvc == nil {
		c.NotificationSvc = notifications.NewTwilioService(notifications.TwilioConfig{
			AccountSID:       cfg.TwilioSID,
			AuthToken:        cfg.TwilioToken,
			FromNumber:       cfg.TwilioFrom,
			LogMessageBodies: cfg.IsDevelopment(),
		}, c.Logger)
	}

	c.OTPSvc = services.NewOTPService(
		c.OTPRepo,
		auth.NewCodeGenerator(cfg.OTPLength),
		c.NotificationSvc,
		services.OTPConfig{TTL: cfg.OTPTTL},
		c.Logger,
	)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.OTPSvc,
		c.PasswordSvc,
		c.TokenSvc,
		c.Denylist,
		audit.NewZapAuditLogger(c.Logger),
		c.Logger,
	)

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return fmt.Errorf("order number node: %w", err)
	}
	c.CatalogSvc = services.NewCatalogService(c.BookRepo, c.PurchaseRepo, c.CollectionRepo, node)
	return nil
}

func (c *Container) initPolicies() error {
	cas, err := auth.NewCasbinService(c.Infra.DB)
	if err != nil {
		return fmt.Errorf("casbin: %w", err)
	}
	c.Casbin = cas
	c.PolicySvc = services.NewPolicyService(cas.E)
	if err := services.SeedPolicies(c.PolicySvc, services.DefaultPolicies); err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	return nil
}

// Router builds the HTTP surface over the container's services
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	resp := handlers.NewResponder(cfg.ExposeInternalErrors, c.Logger)

	return httpx.BuildRouter(httpx.Routes{
		Auth:        handlers.NewAuthHandlers(c.AuthSvc, resp, cfg.OTPExposeCode),
		Catalog:     handlers.NewCatalogHandlers(c.CatalogSvc, resp),
		Admin:       handlers.NewAdminHandlers(c.CatalogSvc, resp),
		Policies:    handlers.NewPolicyHandlers(c.PolicySvc, resp),
		JWT:         middleware.NewAuthMW(c.TokenSvc),
		Casbin:      middleware.NewCasbinMW(c.Casbin.E, cfg.OwnershipRules, c.Logger),
		Logger:      c.Logger,
		ServiceName: cfg.ServiceName,
	})
}

// StartBackground launches the OTP sweeper when the store needs one
func (c *Container) StartBackground(ctx context.Context) {
	if c.Sweeper != nil {
		go c.Sweeper.Run(ctx)
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Infra.Redis != nil {
		_ = c.Infra.Redis.Close()
	}
	if c.Infra.DB != nil {
		sqlDB, err := c.Infra.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
