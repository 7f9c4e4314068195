package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/bookstore/domain"
)

// TokenDenylistImpl implements domain.TokenDenylist using Redis keys that expire with the token
type TokenDenylistImpl struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewTokenDenylist creates a new Redis token denylist
func NewTokenDenylist(client redis.UniversalClient) domain.TokenDenylist {
	return &TokenDenylistImpl{
		client: client,
		prefix: "denylist:",
		now:    time.Now,
	}
}

// Deny implements domain.TokenDenylist. Tokens already past until are not recorded.
func (d *TokenDenylistImpl) Deny(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return domain.ErrTokenInvalid
	}
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to deny token: %w", err)
	}
	return nil
}

// IsDenied implements domain.TokenDenylist
func (d *TokenDenylistImpl) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := d.client.Get(ctx, d.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token denylist: %w", err)
	}
	return true, nil
}
