package mocks

import (
	"context"

	"github.com/you/bookstore/domain"
)

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	ListBooksFunc       func(ctx context.Context) ([]*domain.Book, error)
	ListFreeBooksFunc   func(ctx context.Context) ([]*domain.Book, error)
	ListCategoriesFunc  func(ctx context.Context) ([]string, error)
	GetBookFunc         func(ctx context.Context, id uint) (*domain.Book, error)
	AddBookFunc         func(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	UpdateBookFunc      func(ctx context.Context, id uint, input domain.BookInput) (*domain.Book, error)
	DeleteBookFunc      func(ctx context.Context, id uint) (*domain.Book, error)
	PurchaseFunc        func(ctx context.Context, input domain.PurchaseInput) (*domain.Purchase, error)
	ListCollectionsFunc func(ctx context.Context, userID uint) ([]*domain.Collection, error)
	AddCollectionFunc   func(ctx context.Context, userID uint, name string) (*domain.Collection, error)
}

// NewMockCatalogService creates a new MockCatalogService with default behaviors
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// ListBooks lists all books
func (m *MockCatalogService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	if m.ListBooksFunc != nil {
		return m.ListBooksFunc(ctx)
	}
	return []*domain.Book{}, nil
}

// ListFreeBooks lists free books
func (m *MockCatalogService) ListFreeBooks(ctx context.Context) ([]*domain.Book, error) {
	if m.ListFreeBooksFunc != nil {
		return m.ListFreeBooksFunc(ctx)
	}
	return []*domain.Book{}, nil
}

// ListCategories lists categories
func (m *MockCatalogService) ListCategories(ctx context.Context) ([]string, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return []string{}, nil
}

// GetBook returns a book
func (m *MockCatalogService) GetBook(ctx context.Context, id uint) (*domain.Book, error) {
	if m.GetBookFunc != nil {
		return m.GetBookFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

// AddBook adds a book
func (m *MockCatalogService) AddBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	if m.AddBookFunc != nil {
		return m.AddBookFunc(ctx, input)
	}
	return &domain.Book{ID: 1, Title: input.Title, Cost: input.Cost, IsFree: input.Cost == 0}, nil
}

// UpdateBook updates a book
func (m *MockCatalogService) UpdateBook(ctx context.Context, id uint, input domain.BookInput) (*domain.Book, error) {
	if m.UpdateBookFunc != nil {
		return m.UpdateBookFunc(ctx, id, input)
	}
	return &domain.Book{ID: id, Title: input.Title, Cost: input.Cost, IsFree: input.Cost == 0}, nil
}

// DeleteBook deletes a book
func (m *MockCatalogService) DeleteBook(ctx context.Context, id uint) (*domain.Book, error) {
	if m.DeleteBookFunc != nil {
		return m.DeleteBookFunc(ctx, id)
	}
	return nil, domain.ErrBookNotFound
}

// Purchase records a purchase
func (m *MockCatalogService) Purchase(ctx context.Context, input domain.PurchaseInput) (*domain.Purchase, error) {
	if m.PurchaseFunc != nil {
		return m.PurchaseFunc(ctx, input)
	}
	return &domain.Purchase{ID: 1, BookID: input.BookID, Status: domain.PurchaseStatusPending}, nil
}

// ListCollections lists a user's collections
func (m *MockCatalogService) ListCollections(ctx context.Context, userID uint) ([]*domain.Collection, error) {
	if m.ListCollectionsFunc != nil {
		return m.ListCollectionsFunc(ctx, userID)
	}
	return []*domain.Collection{}, nil
}

// AddCollection creates a collection
func (m *MockCatalogService) AddCollection(ctx context.Context, userID uint, name string) (*domain.Collection, error) {
	if m.AddCollectionFunc != nil {
		return m.AddCollectionFunc(ctx, userID, name)
	}
	return &domain.Collection{ID: 1, UserID: userID, CollectionName: name, Books: []domain.CollectionBook{}}, nil
}

// Compile-time interface compliance verification
var _ domain.CatalogService = (*MockCatalogService)(nil)
