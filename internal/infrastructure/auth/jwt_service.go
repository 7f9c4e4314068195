package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/you/bookstore/domain"
)

// DefaultTokenTTL is the lifetime of an issued bearer token
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	denylist  domain.TokenDenylist
	now       func() time.Time
}

// JWTOption customizes a JWTServiceImpl
type JWTOption func(*JWTServiceImpl)

// WithDenylist makes ValidateToken reject revoked token ids
func WithDenylist(denylist domain.TokenDenylist) JWTOption {
	return func(j *JWTServiceImpl) { j.denylist = denylist }
}

// WithClock overrides the time source used for iat/exp
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTServiceImpl) { j.now = now }
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, ttl time.Duration, opts ...JWTOption) domain.TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	j := &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateToken(userID uint, role string) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(j.ttl).Unix(),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithIssuer(j.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID < 1 {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	jti, _ := claims["jti"].(string)
	role, _ := claims["role"].(string)

	if j.denylist != nil && jti != "" {
		denied, err := j.denylist.IsDenied(ctx, jti)
		if err != nil {
			return nil, err
		}
		if denied {
			return nil, domain.ErrTokenRevoked
		}
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Role:      role,
		TokenID:   jti,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
