package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/you/bookstore/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint           `gorm:"primaryKey"`
	Fullname     string         `gorm:"size:255;not null"`
	Phone        string         `gorm:"uniqueIndex;size:32;not null"`
	Email        string         `gorm:"uniqueIndex;size:255;not null"`
	College      string         `gorm:"size:255"`
	PasswordHash string         `gorm:"column:password;not null"`
	Role         string         `gorm:"index;size:64;default:user"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

// FindByEmailOrPhone implements domain.UserRepository.
// Email matches are preferred so the caller can report the email conflict first.
func (r *UserRepositoryImpl) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", email, phone).
		Limit(2).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	if len(dbUsers) == 0 {
		return nil, domain.ErrUserNotFound
	}
	for i := range dbUsers {
		if dbUsers[i].Email == email {
			return r.dbToDomain(&dbUsers[i]), nil
		}
	}
	return r.dbToDomain(&dbUsers[0]), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	return &DBUser{
		ID:           user.ID,
		Fullname:     user.Fullname,
		Phone:        user.Phone,
		Email:        user.Email,
		College:      user.College,
		PasswordHash: user.PasswordHash,
		Role:         role,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Fullname:     dbUser.Fullname,
		Phone:        dbUser.Phone,
		Email:        dbUser.Email,
		College:      dbUser.College,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
