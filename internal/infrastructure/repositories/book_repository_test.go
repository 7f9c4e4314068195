package repositories

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/you/bookstore/domain"
)

func seedBook(t *testing.T, repo domain.BookRepository, title string, cost float64, categories ...string) *domain.Book {
	t.Helper()
	book := &domain.Book{
		Title:       title,
		BookImage:   "https://img.example.com/" + title + ".png",
		Description: "About " + title,
		Categories:  categories,
		Cost:        cost,
		IsFree:      cost == 0,
	}
	if err := repo.Create(context.Background(), book); err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return book
}

func TestBookRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	book := seedBook(t, repo, "dune", 9.5, "scifi", "classic")

	if book.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	found, err := repo.FindByID(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Title != "dune" || found.Cost != 9.5 || found.IsFree {
		t.Errorf("unexpected book: %+v", found)
	}
	if !reflect.DeepEqual(found.Categories, []string{"scifi", "classic"}) {
		t.Errorf("expected categories to round trip, got %v", found.Categories)
	}

	if _, err := repo.FindByID(context.Background(), 404); err != domain.ErrBookNotFound {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepositoryImpl_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	old := seedBook(t, repo, "old", 0, "history")
	paid := seedBook(t, repo, "paid", 12, "history")
	fresh := seedBook(t, repo, "fresh", 0, "poetry")

	// pin creation times so ordering does not depend on clock resolution
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, b := range []*domain.Book{old, paid, fresh} {
		db.Model(&DBBook{}).Where("id = ?", b.ID).Update("created_at", base.Add(time.Duration(i)*time.Hour))
	}

	tests := []struct {
		name     string
		filter   domain.BookFilter
		expected []string
	}{
		{name: "all books newest first", filter: domain.BookFilter{}, expected: []string{"fresh", "paid", "old"}},
		{name: "free books only", filter: domain.BookFilter{FreeOnly: true}, expected: []string{"fresh", "old"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := repo.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			if !reflect.DeepEqual(titles, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, titles)
			}
		})
	}
}

func TestBookRepositoryImpl_Update(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	book := seedBook(t, repo, "draft", 5, "misc")

	book.Title = "final"
	book.Cost = 0
	book.IsFree = true
	book.Categories = []string{"essays"}
	if err := repo.Update(context.Background(), book); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, _ := repo.FindByID(context.Background(), book.ID)
	if found.Title != "final" || !found.IsFree || found.Cost != 0 {
		t.Errorf("update not applied: %+v", found)
	}
	if !reflect.DeepEqual(found.Categories, []string{"essays"}) {
		t.Errorf("expected categories [essays], got %v", found.Categories)
	}

	missing := &domain.Book{ID: 999, Title: "x"}
	if err := repo.Update(context.Background(), missing); err != domain.ErrBookNotFound {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepositoryImpl_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	book := seedBook(t, repo, "gone", 3, "misc")
	db.Create(&DBCollectionBook{CollectionID: 1, BookID: book.ID})

	removed, err := repo.Delete(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Title != "gone" {
		t.Errorf("expected removed book to be returned, got %+v", removed)
	}

	var refs int64
	db.Model(&DBCollectionBook{}).Where("book_id = ?", book.ID).Count(&refs)
	if refs != 0 {
		t.Errorf("expected collection references to be removed, got %d", refs)
	}
	if _, err := repo.Delete(context.Background(), book.ID); err != domain.ErrBookNotFound {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepositoryImpl_Categories(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	seedBook(t, repo, "a", 1, "thriller", "crime")
	seedBook(t, repo, "b", 1, "crime", "")
	seedBook(t, repo, "c", 1, "art")

	categories, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"art", "crime", "thriller"}
	if !reflect.DeepEqual(categories, expected) {
		t.Errorf("expected %v, got %v", expected, categories)
	}
}
