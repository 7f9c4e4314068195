package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/bookstore/domain"
	"gorm.io/gorm"
)

// DBPurchase represents the database model for Purchase. Title and price are snapshots.
type DBPurchase struct {
	ID              uint      `gorm:"primaryKey"`
	OrderNumber     int64     `gorm:"uniqueIndex;not null"`
	BookID          uint      `gorm:"index;not null"`
	CustomerName    string    `gorm:"size:255;not null"`
	CustomerAddress string    `gorm:"type:text;not null"`
	CustomerPhone   string    `gorm:"size:32;not null"`
	BookTitle       string    `gorm:"size:255;not null"`
	BookPrice       float64   `gorm:"not null"`
	PurchaseDate    time.Time `gorm:"index"`
	Status          string    `gorm:"size:32;not null;default:pending"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBPurchase) TableName() string {
	return "purchases"
}

// PurchaseRepositoryImpl implements domain.PurchaseRepository using GORM
type PurchaseRepositoryImpl struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domain.PurchaseRepository {
	return &PurchaseRepositoryImpl{db: db}
}

// Create implements domain.PurchaseRepository
func (r *PurchaseRepositoryImpl) Create(ctx context.Context, p *domain.Purchase) error {
	status := p.Status
	if status == "" {
		status = domain.PurchaseStatusPending
	}
	row := &DBPurchase{
		OrderNumber:     p.OrderNumber,
		BookID:          p.BookID,
		CustomerName:    p.CustomerName,
		CustomerAddress: p.CustomerAddress,
		CustomerPhone:   p.CustomerPhone,
		BookTitle:       p.BookTitle,
		BookPrice:       p.BookPrice,
		PurchaseDate:    p.PurchaseDate,
		Status:          status,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	p.ID = row.ID
	p.Status = row.Status
	return nil
}

// FindByID implements domain.PurchaseRepository
func (r *PurchaseRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Purchase, error) {
	var row DBPurchase
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &domain.Purchase{
		ID:              row.ID,
		OrderNumber:     row.OrderNumber,
		BookID:          row.BookID,
		CustomerName:    row.CustomerName,
		CustomerAddress: row.CustomerAddress,
		CustomerPhone:   row.CustomerPhone,
		BookTitle:       row.BookTitle,
		BookPrice:       row.BookPrice,
		PurchaseDate:    row.PurchaseDate,
		Status:          row.Status,
	}, nil
}
