package auth

import (
	"context"
	"fmt"

	"github.com/you/bookstore/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultBcryptCost matches the work factor the stored hashes were created with
const DefaultBcryptCost = 10

// PasswordServiceImpl implements domain.PasswordService.
// Hashing is CPU-bound, so at most `workers` bcrypt calls run at once.
type PasswordServiceImpl struct {
	cost int
	pool *semaphore.Weighted
}

// NewPasswordService creates a new password service
func NewPasswordService(cost, workers int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	if workers < 1 {
		workers = 1
	}
	return &PasswordServiceImpl{
		cost: cost,
		pool: semaphore.NewWeighted(int64(workers)),
	}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(ctx context.Context, password string) (string, error) {
	if err := p.pool.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for hash worker: %w", err)
	}
	defer p.pool.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(ctx context.Context, hashedPassword, password string) bool {
	if err := p.pool.Acquire(ctx, 1); err != nil {
		return false
	}
	defer p.pool.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
