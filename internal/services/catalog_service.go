package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/you/bookstore/domain"
)

// OrderNumberGenerator produces unique purchase order numbers. *snowflake.Node satisfies it.
type OrderNumberGenerator interface {
	Generate() snowflake.ID
}

// CatalogServiceImpl implements domain.CatalogService
type CatalogServiceImpl struct {
	bookRepo       domain.BookRepository
	purchaseRepo   domain.PurchaseRepository
	collectionRepo domain.CollectionRepository
	orders         OrderNumberGenerator
	now            func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	bookRepo domain.BookRepository,
	purchaseRepo domain.PurchaseRepository,
	collectionRepo domain.CollectionRepository,
	orders OrderNumberGenerator,
) domain.CatalogService {
	return &CatalogServiceImpl{
		bookRepo:       bookRepo,
		purchaseRepo:   purchaseRepo,
		collectionRepo: collectionRepo,
		orders:         orders,
		now:            time.Now,
	}
}

// ListBooks implements domain.CatalogService
func (s *CatalogServiceImpl) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.List(ctx, domain.BookFilter{})
}

// ListFreeBooks implements domain.CatalogService
func (s *CatalogServiceImpl) ListFreeBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.List(ctx, domain.BookFilter{FreeOnly: true})
}

// ListCategories implements domain.CatalogService
func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return s.bookRepo.Categories(ctx)
}

// GetBook implements domain.CatalogService
func (s *CatalogServiceImpl) GetBook(ctx context.Context, id uint) (*domain.Book, error) {
	if id == 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.bookRepo.FindByID(ctx, id)
}

// AddBook implements domain.CatalogService
func (s *CatalogServiceImpl) AddBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	book := &domain.Book{}
	applyBookInput(book, input)
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook implements domain.CatalogService
func (s *CatalogServiceImpl) UpdateBook(ctx context.Context, id uint, input domain.BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBookInput(book, input)
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook implements domain.CatalogService
func (s *CatalogServiceImpl) DeleteBook(ctx context.Context, id uint) (*domain.Book, error) {
	if id == 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.bookRepo.Delete(ctx, id)
}

// Purchase implements domain.CatalogService. Title and price are copied from the book at order time.
func (s *CatalogServiceImpl) Purchase(ctx context.Context, input domain.PurchaseInput) (*domain.Purchase, error) {
	if input.BookID == 0 || isBlank(input.CustomerName, input.CustomerAddress, input.CustomerPhone) {
		return nil, domain.ErrInvalidPurchase
	}

	book, err := s.bookRepo.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	purchase := &domain.Purchase{
		OrderNumber:     s.orders.Generate().Int64(),
		BookID:          book.ID,
		CustomerName:    input.CustomerName,
		CustomerAddress: input.CustomerAddress,
		CustomerPhone:   input.CustomerPhone,
		BookTitle:       book.Title,
		BookPrice:       book.Cost,
		PurchaseDate:    s.now(),
		Status:          domain.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	return purchase, nil
}

// ListCollections implements domain.CatalogService. Book details are attached where the book still exists.
func (s *CatalogServiceImpl) ListCollections(ctx context.Context, userID uint) ([]*domain.Collection, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidInput
	}
	collections, err := s.collectionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cache := make(map[uint]*domain.Book)
	for _, c := range collections {
		for i := range c.Books {
			id := c.Books[i].BookID
			book, ok := cache[id]
			if !ok {
				book, err = s.bookRepo.FindByID(ctx, id)
				if err != nil && !errors.Is(err, domain.ErrBookNotFound) {
					return nil, err
				}
				cache[id] = book
			}
			c.Books[i].Book = book
		}
	}
	return collections, nil
}

// AddCollection implements domain.CatalogService. Names are unique per user ignoring case.
func (s *CatalogServiceImpl) AddCollection(ctx context.Context, userID uint, name string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if userID == 0 || name == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.collectionRepo.FindByUserAndName(ctx, userID, name)
	switch {
	case err == nil:
		return nil, domain.ErrCollectionExists
	case !errors.Is(err, domain.ErrCollectionNotFound):
		return nil, err
	}

	collection := &domain.Collection{
		UserID:         userID,
		CollectionName: name,
		Books:          []domain.CollectionBook{},
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func applyBookInput(book *domain.Book, input domain.BookInput) {
	book.Title = strings.TrimSpace(input.Title)
	book.BookImage = strings.TrimSpace(input.BookImage)
	book.Description = input.Description
	book.Categories = input.Categories
	book.Cost = input.Cost
	book.IsFree = input.Cost == 0
}
