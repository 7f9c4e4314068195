package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/bookstore/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBOneTimeCode is the SQL row for a live code. The unique phone index enforces one row per phone.
type DBOneTimeCode struct {
	ID        uint      `gorm:"primaryKey"`
	Phone     string    `gorm:"uniqueIndex;size:32;not null"`
	Code      string    `gorm:"size:16;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOneTimeCode) TableName() string {
	return "otps"
}

// GormOTPRepository implements domain.OTPRepository using GORM
type GormOTPRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOTPRepository creates a SQL-backed OTP store. Expired rows are removed by DeleteExpired.
func NewGormOTPRepository(db *gorm.DB, opts ...OTPRepositoryOption) domain.OTPRepository {
	o := buildOTPOptions(opts)
	return &GormOTPRepository{db: db, now: o.now}
}

// UpsertForPhone implements domain.OTPRepository with a single INSERT ... ON CONFLICT statement
func (r *GormOTPRepository) UpsertForPhone(ctx context.Context, code *domain.OneTimeCode) error {
	row := &DBOneTimeCode{
		Phone:     code.Phone,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert OTP: %w", err)
	}
	return nil
}

// FindMatching implements domain.OTPRepository
func (r *GormOTPRepository) FindMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	var (
		row     *DBOneTimeCode
		expired bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = r.findRow(tx, phone, code)
		if err != nil {
			return err
		}
		if r.now().After(row.ExpiresAt) {
			expired = true
			return tx.Delete(&DBOneTimeCode{}, row.ID).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, domain.ErrOTPExpired
	}
	return r.rowToDomain(row), nil
}

// ConsumeMatching implements domain.OTPRepository.
// Only the caller whose DELETE affects the row wins; racing callers see ErrOTPNotFound.
func (r *GormOTPRepository) ConsumeMatching(ctx context.Context, phone, code string) (*domain.OneTimeCode, error) {
	row, err := r.findRow(r.db.WithContext(ctx), phone, code)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND code = ?", row.ID, row.Code).
		Delete(&DBOneTimeCode{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete OTP: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrOTPNotFound
	}

	if r.now().After(row.ExpiresAt) {
		return nil, domain.ErrOTPExpired
	}
	return r.rowToDomain(row), nil
}

// DeleteForPhone implements domain.OTPRepository
func (r *GormOTPRepository) DeleteForPhone(ctx context.Context, phone string) error {
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).Delete(&DBOneTimeCode{}).Error; err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}

// DeleteExpired implements domain.OTPRepository
func (r *GormOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", r.now().UTC()).Delete(&DBOneTimeCode{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep expired OTPs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *GormOTPRepository) findRow(db *gorm.DB, phone, code string) (*DBOneTimeCode, error) {
	var row DBOneTimeCode
	err := db.Where("phone = ? AND code = ?", phone, code).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to find OTP: %w", err)
	}
	return &row, nil
}

func (r *GormOTPRepository) rowToDomain(row *DBOneTimeCode) *domain.OneTimeCode {
	return &domain.OneTimeCode{
		Phone:     row.Phone,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt,
	}
}
