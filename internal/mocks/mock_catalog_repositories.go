package mocks

import (
	"context"

	"github.com/you/bookstore/domain"
)

// MockBookRepository implements domain.BookRepository interface for testing
type MockBookRepository struct {
	CreateFunc     func(ctx context.Context, book *domain.Book) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Book, error)
	ListFunc       func(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error)
	UpdateFunc     func(ctx context.Context, book *domain.Book) error
	DeleteFunc     func(ctx context.Context, id uint) (*domain.Book, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
}

// NewMockBookRepository creates a new MockBookRepository with default behaviors
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{}
}

// Create stores a book
func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	return nil
}

// FindByID finds a book by ID
func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

// List lists books
func (m *MockBookRepository) List(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Book{}, nil
}

// Update updates a book
func (m *MockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, book)
	}
	return nil
}

// Delete deletes a book
func (m *MockBookRepository) Delete(ctx context.Context, id uint) (*domain.Book, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

// Categories lists distinct categories
func (m *MockBookRepository) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []string{}, nil
}

// MockPurchaseRepository implements domain.PurchaseRepository interface for testing
type MockPurchaseRepository struct {
	CreateFunc   func(ctx context.Context, purchase *domain.Purchase) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Purchase, error)
}

// NewMockPurchaseRepository creates a new MockPurchaseRepository with default behaviors
func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{}
}

// Create stores a purchase
func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, purchase)
	}
	return nil
}

// FindByID finds a purchase by ID
func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uint) (*domain.Purchase, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrPurchaseNotFound
}

// MockCollectionRepository implements domain.CollectionRepository interface for testing
type MockCollectionRepository struct {
	CreateFunc            func(ctx context.Context, collection *domain.Collection) error
	FindByUserFunc        func(ctx context.Context, userID uint) ([]*domain.Collection, error)
	FindByUserAndNameFunc func(ctx context.Context, userID uint, name string) (*domain.Collection, error)
}

// NewMockCollectionRepository creates a new MockCollectionRepository with default behaviors
func NewMockCollectionRepository() *MockCollectionRepository {
	return &MockCollectionRepository{}
}

// Create stores a collection
func (m *MockCollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, collection)
	}
	return nil
}

// FindByUser lists a user's collections
func (m *MockCollectionRepository) FindByUser(ctx context.Context, userID uint) ([]*domain.Collection, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return []*domain.Collection{}, nil
}

// FindByUserAndName finds a collection by name
func (m *MockCollectionRepository) FindByUserAndName(ctx context.Context, userID uint, name string) (*domain.Collection, error) {
	if m.FindByUserAndNameFunc != nil {
		return m.FindByUserAndNameFunc(ctx, userID, name)
	}
	return nil, domain.ErrCollectionNotFound
}

// Compile-time interface compliance verification
var (
	_ domain.BookRepository       = (*MockBookRepository)(nil)
	_ domain.PurchaseRepository   = (*MockPurchaseRepository)(nil)
	_ domain.CollectionRepository = (*MockCollectionRepository)(nil)
)
