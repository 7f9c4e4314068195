package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks for the YAML configuration
const DefaultPath = "config/config.yml"

type OwnershipRule struct {
	Method    string `yaml:"method"`
	Path      string `yaml:"path"`
	Source    string `yaml:"source"`
	ParamName string `yaml:"paramName"`
}

type AppConfig struct {
	Port                 int    `yaml:"port"`
	GinMode              string `yaml:"gin_mode"`
	Environment          string `yaml:"environment"`
	ExposeInternalErrors bool   `yaml:"expose_internal_errors"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type AuthConfig struct {
	BcryptCost   int  `yaml:"bcrypt_cost"`
	HashWorkers  int  `yaml:"hash_workers"`
	RevokeTokens bool `yaml:"revoke_tokens"`
}

type OTPConfig struct {
	Store         string `yaml:"store"`
	TTL           string `yaml:"ttl"`
	Length        int    `yaml:"length"`
	Retention     string `yaml:"retention"`
	SweepInterval string `yaml:"sweep_interval"`
	ExposeCode    bool   `yaml:"expose_code"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
}

type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

type ConfigFile struct {
	App            AppConfig       `yaml:"app"`
	Database       DatabaseConfig  `yaml:"database"`
	Redis          RedisConfig     `yaml:"redis"`
	JWT            JWTConfig       `yaml:"jwt"`
	Auth           AuthConfig      `yaml:"auth"`
	OTP            OTPConfig       `yaml:"otp"`
	Twilio         TwilioConfig    `yaml:"twilio"`
	Admin          AdminConfig     `yaml:"admin"`
	Telemetry      TelemetryConfig `yaml:"telemetry"`
	NodeID         int64           `yaml:"node_id"`
	OwnershipRules []OwnershipRule `yaml:"ownershipRules"`
}

// OTP store backends
const (
	OTPStoreRedis    = "redis"
	OTPStoreDatabase = "database"
)

// Config is the resolved process configuration. It is built once in main and passed down.
type Config struct {
	Port                 string
	GinMode              string
	Environment          string
	ExposeInternalErrors bool
	DSN                  string
	DBLogLevel           string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	JWTSecret            string
	JWTIssuer            string
	TokenTTL             time.Duration
	BcryptCost           int
	HashWorkers          int
	RevokeTokens         bool
	OTPStore             string
	OTPTTL               time.Duration
	OTPLength            int
	OTPRetention         time.Duration
	OTPSweepInterval     time.Duration
	OTPExposeCode        bool
	TwilioSID            string
	TwilioToken          string
	TwilioFrom           string
	AdminEmail           string
	AdminPassword        string
	AdminPhone           string
	TelemetryEndpoint    string
	TelemetryInsecure    bool
	ServiceName          string
	NodeID               int64
	OwnershipRules       []OwnershipRule
}

// Defaults returns the configuration used when neither file nor environment set a value
func Defaults() ConfigFile {
	return ConfigFile{
		App: AppConfig{Port: 8000, GinMode: "release", Environment: "production"},
		Database: DatabaseConfig{
			DSN:      "host=localhost user=postgres password=postgres dbname=bookstore port=5432 sslmode=disable",
			LogLevel: "warn",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		JWT:   JWTConfig{Issuer: "bookstore", TTL: "168h"},
		Auth:  AuthConfig{BcryptCost: 10, HashWorkers: runtime.GOMAXPROCS(0)},
		OTP: OTPConfig{
			Store:         OTPStoreRedis,
			TTL:           "10m",
			Length:        6,
			Retention:     "10m",
			SweepInterval: "1m",
		},
		Telemetry: TelemetryConfig{ServiceName: "bookstore"},
		NodeID:    1,
	}
}

// Load reads config/config.yml (optional), then .env (optional), then environment overrides
func Load() (*Config, error) {
	return LoadFrom(DefaultPath)
}

// LoadFrom is Load with an explicit YAML path
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	file := Defaults()
	if err := loadConfigFile(path, &file); err != nil {
		return nil, err
	}
	applyEnv(&file)

	cfg, err := resolve(&file)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(file *ConfigFile) (*Config, error) {
	tokenTTL, err := time.ParseDuration(file.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(file.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	retention, err := time.ParseDuration(file.OTP.Retention)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP retention: %w", err)
	}

	sweep, err := time.ParseDuration(file.OTP.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP sweep interval: %w", err)
	}

	return &Config{
		Port:                 strconv.Itoa(file.App.Port),
		GinMode:              file.App.GinMode,
		Environment:          file.App.Environment,
		ExposeInternalErrors: file.App.ExposeInternalErrors,
		DSN:                  file.Database.DSN,
		DBLogLevel:           file.Database.LogLevel,
		RedisAddr:            file.Redis.Addr,
		RedisPassword:        file.Redis.Password,
		RedisDB:              file.Redis.DB,
		JWTSecret:            file.JWT.Secret,
		JWTIssuer:            file.JWT.Issuer,
		TokenTTL:             tokenTTL,
		BcryptCost:           file.Auth.BcryptCost,
		HashWorkers:          file.Auth.HashWorkers,
		RevokeTokens:         file.Auth.RevokeTokens,
		OTPStore:             file.OTP.Store,
		OTPTTL:               otpTTL,
		OTPLength:            file.OTP.Length,
		OTPRetention:         retention,
		OTPSweepInterval:     sweep,
		OTPExposeCode:        file.OTP.ExposeCode,
		TwilioSID:            file.Twilio.AccountSID,
		TwilioToken:          file.Twilio.AuthToken,
		TwilioFrom:           file.Twilio.FromNumber,
		AdminEmail:           file.Admin.Email,
		AdminPassword:        file.Admin.Password,
		AdminPhone:           file.Admin.Phone,
		TelemetryEndpoint:    file.Telemetry.Endpoint,
		TelemetryInsecure:    file.Telemetry.Insecure,
		ServiceName:          file.Telemetry.ServiceName,
		NodeID:               file.NodeID,
		OwnershipRules:       file.OwnershipRules,
	}, nil
}

// Validate rejects configurations the service cannot run safely with
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.OTPLength < 4 {
		return fmt.Errorf("otp length must be at least 4, got %d", c.OTPLength)
	}
	if c.OTPTTL <= 0 {
		return errors.New("otp ttl must be positive")
	}
	switch c.OTPStore {
	case OTPStoreRedis, OTPStoreDatabase:
	default:
		return fmt.Errorf("unknown otp store %q", c.OTPStore)
	}
	if c.HashWorkers < 1 {
		return fmt.Errorf("hash workers must be at least 1, got %d", c.HashWorkers)
	}
	return nil
}

// IsDevelopment reports whether the service runs with development affordances
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func loadConfigFile(path string, into *ConfigFile) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, into); err != nil {
		return fmt.Errorf("could not parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(file *ConfigFile) {
	envInt("APP_PORT", &file.App.Port)
	envString("GIN_MODE", &file.App.GinMode)
	envString("APP_ENV", &file.App.Environment)
	envBool("APP_EXPOSE_INTERNAL_ERRORS", &file.App.ExposeInternalErrors)
	envString("DATABASE_DSN", &file.Database.DSN)
	envString("DATABASE_LOG_LEVEL", &file.Database.LogLevel)
	envString("REDIS_ADDR", &file.Redis.Addr)
	envString("REDIS_PASSWORD", &file.Redis.Password)
	envInt("REDIS_DB", &file.Redis.DB)
	envString("JWT_SECRET", &file.JWT.Secret)
	envString("JWT_ISSUER", &file.JWT.Issuer)
	envString("JWT_TTL", &file.JWT.TTL)
	envInt("AUTH_BCRYPT_COST", &file.Auth.BcryptCost)
	envInt("AUTH_HASH_WORKERS", &file.Auth.HashWorkers)
	envBool("AUTH_REVOKE_TOKENS", &file.Auth.RevokeTokens)
	envString("OTP_STORE", &file.OTP.Store)
	envString("OTP_TTL", &file.OTP.TTL)
	envInt("OTP_LENGTH", &file.OTP.Length)
	envString("OTP_RETENTION", &file.OTP.Retention)
	envString("OTP_SWEEP_INTERVAL", &file.OTP.SweepInterval)
	envBool("OTP_EXPOSE_CODE", &file.OTP.ExposeCode)
	envString("TWILIO_ACCOUNT_SID", &file.Twilio.AccountSID)
	envString("TWILIO_AUTH_TOKEN", &file.Twilio.AuthToken)
	envString("TWILIO_FROM_NUMBER", &file.Twilio.FromNumber)
	envString("ADMIN_EMAIL", &file.Admin.Email)
	envString("ADMIN_PASSWORD", &file.Admin.Password)
	envString("ADMIN_PHONE", &file.Admin.Phone)
	envString("OTEL_EXPORTER_OTLP_ENDPOINT", &file.Telemetry.Endpoint)
	envBool("OTEL_EXPORTER_OTLP_INSECURE", &file.Telemetry.Insecure)
	envString("SERVICE_NAME", &file.Telemetry.ServiceName)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
