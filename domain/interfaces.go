package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// OTPRepository persists one-time codes keyed by phone number.
// FindMatching and ConsumeMatching report ErrOTPNotFound for absent or mismatched
// codes and ErrOTPExpired (after deleting the record) for a match past its expiry.
type OTPRepository interface {
	UpsertForPhone(ctx context.Context, code *OneTimeCode) error
	FindMatching(ctx context.Context, phone, code string) (*OneTimeCode, error)
	ConsumeMatching(ctx context.Context, phone, code string) (*OneTimeCode, error)
	DeleteForPhone(ctx context.Context, phone string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenDenylist records revoked token ids until they would have expired anyway
type TokenDenylist interface {
	Deny(ctx context.Context, tokenID string, until time.Time) error
	IsDenied(ctx context.Context, tokenID string) (bool, error)
}

// BookFilter narrows book listings
type BookFilter struct {
	FreeOnly bool
}

// BookRepository defines catalog data access operations
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id uint) (*Book, error)
	List(ctx context.Context, filter BookFilter) ([]*Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) (*Book, error)
	Categories(ctx context.Context) ([]string, error)
}

// PurchaseRepository defines purchase order data access operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	FindByID(ctx context.Context, id uint) (*Purchase, error)
}

// CollectionRepository defines collection data access operations
type CollectionRepository interface {
	Create(ctx context.Context, collection *Collection) error
	FindByUser(ctx context.Context, userID uint) ([]*Collection, error)
	FindByUserAndName(ctx context.Context, userID uint, name string) (*Collection, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*User, error)
	LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error)
	SendOTP(ctx context.Context, phone string) (*OTPDispatch, error)
	VerifyOTPAndLogin(ctx context.Context, phone, code string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
	Logout(ctx context.Context, claims *TokenClaims) error
}

// OTPService defines the one-time code lifecycle
type OTPService interface {
	Issue(ctx context.Context, phone string) (*OTPDispatch, error)
	Consume(ctx context.Context, phone, code string) error
}

// CatalogService defines book, purchase and collection operations
type CatalogService interface {
	ListBooks(ctx context.Context) ([]*Book, error)
	ListFreeBooks(ctx context.Context) ([]*Book, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetBook(ctx context.Context, id uint) (*Book, error)
	AddBook(ctx context.Context, input BookInput) (*Book, error)
	UpdateBook(ctx context.Context, id uint, input BookInput) (*Book, error)
	DeleteBook(ctx context.Context, id uint) (*Book, error)
	Purchase(ctx context.Context, input PurchaseInput) (*Purchase, error)
	ListCollections(ctx context.Context, userID uint) ([]*Collection, error)
	AddCollection(ctx context.Context, userID uint, name string) (*Collection, error)
}

// PasswordService defines password operations. Both calls may block waiting for a hashing slot.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateToken(userID uint, role string) (string, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// CodeGenerator produces numeric one-time codes
type CodeGenerator interface {
	Generate() (string, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	TokenID   string `json:"jti"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}
