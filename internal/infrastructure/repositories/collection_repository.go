package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you/bookstore/domain"
	"gorm.io/gorm"
)

// DBCollection represents the database model for Collection.
// NameKey holds the lower-cased name so uniqueness per user is case-insensitive.
type DBCollection struct {
	ID        uint               `gorm:"primaryKey"`
	UserID    uint               `gorm:"uniqueIndex:idx_collection_user_name;not null"`
	Name      string             `gorm:"size:255;not null"`
	NameKey   string             `gorm:"uniqueIndex:idx_collection_user_name;size:255;not null"`
	Books     []DBCollectionBook `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBCollection) TableName() string {
	return "collections"
}

// DBCollectionBook is a book entry within a collection
type DBCollectionBook struct {
	ID           uint      `gorm:"primaryKey"`
	CollectionID uint      `gorm:"index;not null"`
	BookID       uint      `gorm:"index;not null"`
	AddedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (DBCollectionBook) TableName() string {
	return "collection_books"
}

// CollectionRepositoryImpl implements domain.CollectionRepository using GORM
type CollectionRepositoryImpl struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) domain.CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

// Create implements domain.CollectionRepository
func (r *CollectionRepositoryImpl) Create(ctx context.Context, c *domain.Collection) error {
	row := &DBCollection{
		UserID:  c.UserID,
		Name:    c.CollectionName,
		NameKey: collectionKey(c.CollectionName),
	}
	for _, b := range c.Books {
		row.Books = append(row.Books, DBCollectionBook{BookID: b.BookID})
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCollectionExists
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	c.Books = collectionBooksToDomain(row.Books)
	return nil
}

// FindByUser implements domain.CollectionRepository
func (r *CollectionRepositoryImpl) FindByUser(ctx context.Context, userID uint) ([]*domain.Collection, error) {
	var rows []DBCollection
	err := r.db.WithContext(ctx).
		Preload("Books").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	out := make([]*domain.Collection, 0, len(rows))
	for i := range rows {
		out = append(out, collectionToDomain(&rows[i]))
	}
	return out, nil
}

// FindByUserAndName implements domain.CollectionRepository. The name match ignores case.
func (r *CollectionRepositoryImpl) FindByUserAndName(ctx context.Context, userID uint, name string) (*domain.Collection, error) {
	var row DBCollection
	err := r.db.WithContext(ctx).
		Preload("Books").
		Where("user_id = ? AND name_key = ?", userID, collectionKey(name)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, err
	}
	return collectionToDomain(&row), nil
}

func collectionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func collectionToDomain(row *DBCollection) *domain.Collection {
	return &domain.Collection{
		ID:             row.ID,
		UserID:         row.UserID,
		CollectionName: row.Name,
		Books:          collectionBooksToDomain(row.Books),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func collectionBooksToDomain(rows []DBCollectionBook) []domain.CollectionBook {
	books := make([]domain.CollectionBook, 0, len(rows))
	for _, b := range rows {
		books = append(books, domain.CollectionBook{BookID: b.BookID, AddedAt: b.AddedAt})
	}
	return books
}
