package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/bookstore/domain"
)

// DefaultOTPRetention keeps an expired code around long enough for the lazy
// expiry check to report it as expired rather than absent.
const DefaultOTPRetention = 10 * time.Minute

// matchScript compares the stored code and applies lazy expiry in one atomic step.
// ARGV: code, now (unix ms), mode ("find" | "consume").
// Returns nil on mismatch, otherwise {expires_at_ms, "live" | "expired"}.
var matchScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if (not code) or code ~= ARGV[1] then
  return false
end
local expires = redis.call('HGET', KEYS[1], 'expires_at')
local expired = tonumber(expires) < tonumber(ARGV[2])
if expired or ARGV[3] == 'consume' then
  redis.call('DEL', KEYS[1])
end
if expired then
  return {expires, 'expired'}
end
return {expires, 'live'}
`)

// RedisOTPRepository implements domain.OTPRepository on Redis hashes, one key per phone
type RedisOTPRepository struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
	now       func() time.Time
}

// OTPRepositoryOption customizes an OTP repository
type OTPRepositoryOption func(*otpRepositoryOptions)

type otpRepositoryOptions struct {
	retention time.Duration
	now       func() time.Time
}

// WithOTPClock overrides the time source used for lazy expiry
func WithOTPClock(now func() time.Time) OTPRepositoryOption {
	return func(o *otpRepositoryOptions) { o.now = now }
}

// WithOTPRetention sets how long Redis keeps a code past its expiry
func WithOTPRetention(d time.Duration) OTPRepositoryOption {
	return func(o *otpRepositoryOptions) { o.retention = d }
}

func buildOTPOptions(opts []OTPRepositoryOption) otpRepositoryOptions {
	o := otpRepositoryOptions{retention: DefaultOTPRetention, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRedisOTPRepository creates a Redis-backed OTP store
func NewRedisOTPRepository(client redis.UniversalClient, opts ...OTPRepositoryOption) domain.OTPRepository {
	o := buildOTPOptions(opts)
	return &RedisOTPRepository{
		client:    client,
		prefix:    "otp:",
		retention: o.retention,
		now:       o.now,
	}
}

func (r *RedisOTPRepository) key(phone string) string {
	return r.prefix + phone
}

// UpsertForPhone implements domain.OTPRepository. The previous record is replaced inside MULTI/EXEC.
func (r *RedisOTPRepository) UpsertForPhone(ctx context.Context, code *domain.OneTimeCode) error {
	key := r.key(code.Phone)
	ttl := code.ExpiresAt.Sub(r.now()) + r.retention
	if ttl < time.Second {
		ttl = time.Second
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", code.Code,
			"expires_at", strconv.FormatInt(code.ExpiresAt.UnixMilli(), 10),
		)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store OTP in Redis: %w", err)
	}
	return nil
}

// FindMatching implements domain.OTPRepository
func (r *RedisOTPRepository) FindMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	return r.match(ctx, phone, code, "find")
}

// ConsumeMatching implements domain.OTPRepository
func (r *RedisOTPRepository) ConsumeMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	return r.match(ctx, phone, code, "consume")
}

func (r *RedisOTPRepository) match(ctx context.Context, phone, code, mode string) (*domain.OneTimeCode, error) {
	res, err := matchScript.Run(ctx, r.client, []string{r.key(phone)}, code, r.now().UnixMilli(), mode).Slice()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match OTP in Redis: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected OTP script reply: %v", res)
	}

	expiresStr, _ := res[0].(string)
	ms, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt OTP expiry %q: %w", expiresStr, err)
	}
	if state, _ := res[1].(string); state == "expired" {
		return nil, domain.ErrOTPExpired
	}

	return &domain.OneTimeCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.UnixMilli(ms),
	}, nil
}

// DeleteForPhone implements domain.OTPRepository
func (r *RedisOTPRepository) DeleteForPhone(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, r.key(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}

// DeleteExpired implements domain.OTPRepository.
// Redis evicts keys through their TTL, so there is nothing to sweep.
func (r *RedisOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
