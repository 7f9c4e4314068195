package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/you/bookstore/domain"
	"gorm.io/gorm"
)

// DBBook represents the database model for Book
type DBBook struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	BookImage   string    `gorm:"size:1024;not null"`
	Description string    `gorm:"type:text;not null"`
	Categories  []string  `gorm:"serializer:json;type:text"`
	Cost        float64   `gorm:"not null;default:0"`
	IsFree      bool      `gorm:"index;not null;default:false"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBBook) TableName() string {
	return "books"
}

// BookRepositoryImpl implements domain.BookRepository using GORM
type BookRepositoryImpl struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) domain.BookRepository {
	return &BookRepositoryImpl{db: db}
}

// Create implements domain.BookRepository
func (r *BookRepositoryImpl) Create(ctx context.Context, book *domain.Book) error {
	row := bookToDB(book)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	book.ID = row.ID
	book.CreatedAt = row.CreatedAt
	book.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.BookRepository
func (r *BookRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	var row DBBook
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return bookToDomain(&row), nil
}

// List implements domain.BookRepository. Newest books come first.
func (r *BookRepositoryImpl) List(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if filter.FreeOnly {
		q = q.Where("is_free = ?", true)
	}

	var rows []DBBook
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	books := make([]*domain.Book, 0, len(rows))
	for i := range rows {
		books = append(books, bookToDomain(&rows[i]))
	}
	return books, nil
}

// Update implements domain.BookRepository
func (r *BookRepositoryImpl) Update(ctx context.Context, book *domain.Book) error {
	row := bookToDB(book)
	res := r.db.WithContext(ctx).Model(&DBBook{ID: book.ID}).Select(
		"title", "book_image", "description", "categories", "cost", "is_free", "updated_at",
	).Updates(row)
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookNotFound
	}
	book.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements domain.BookRepository and returns the removed book
func (r *BookRepositoryImpl) Delete(ctx context.Context, id uint) (*domain.Book, error) {
	var removed *domain.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DBBook
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&DBCollectionBook{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		removed = bookToDomain(&row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Categories implements domain.BookRepository. Returns distinct non-empty categories in sorted order.
func (r *BookRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	var rows []DBBook
	if err := r.db.WithContext(ctx).Select("id", "categories").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, row := range rows {
		for _, c := range row.Categories {
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func bookToDB(book *domain.Book) *DBBook {
	return &DBBook{
		ID:          book.ID,
		Title:       book.Title,
		BookImage:   book.BookImage,
		Description: book.Description,
		Categories:  book.Categories,
		Cost:        book.Cost,
		IsFree:      book.IsFree,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   time.Now(),
	}
}

func bookToDomain(row *DBBook) *domain.Book {
	return &domain.Book{
		ID:          row.ID,
		Title:       row.Title,
		BookImage:   row.BookImage,
		Description: row.Description,
		Categories:  row.Categories,
		Cost:        row.Cost,
		IsFree:      row.IsFree,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
