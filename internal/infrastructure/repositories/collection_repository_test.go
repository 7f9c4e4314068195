package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/you/bookstore/domain"
)

func TestCollectionRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		existing      string
		newName       string
		userID        uint
		expectedError error
	}{
		{name: "new collection", newName: "Favourites", userID: 1},
		{name: "same name different case", existing: "Favourites", newName: "fAVOURITES", userID: 1, expectedError: domain.ErrCollectionExists},
		{name: "same name other user", existing: "Favourites", newName: "Favourites", userID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewCollectionRepository(setupTestDB(t))
			ctx := context.Background()
			if tt.existing != "" {
				if err := repo.Create(ctx, &domain.Collection{UserID: 1, CollectionName: tt.existing}); err != nil {
					t.Fatalf("seed failed: %v", err)
				}
			}

			c := &domain.Collection{UserID: tt.userID, CollectionName: tt.newName}
			err := repo.Create(ctx, c)

			if err != tt.expectedError {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if err == nil && c.ID == 0 {
				t.Error("expected ID to be assigned")
			}
		})
	}
}

func TestCollectionRepositoryImpl_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepository(db)
	ctx := context.Background()

	withBooks := &domain.Collection{
		UserID:         7,
		CollectionName: "Reading",
		Books:          []domain.CollectionBook{{BookID: 11}, {BookID: 12}},
	}
	if err := repo.Create(ctx, withBooks); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.Collection{UserID: 7, CollectionName: "Later"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.Collection{UserID: 8, CollectionName: "Other"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	db.Model(&DBCollection{}).Where("id = ?", withBooks.ID).Update("created_at", time.Now().Add(-time.Hour))

	collections, err := repo.FindByUser(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collections) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(collections))
	}
	if collections[0].CollectionName != "Later" {
		t.Errorf("expected newest collection first, got %s", collections[0].CollectionName)
	}
	if len(collections[1].Books) != 2 {
		t.Errorf("expected books to be preloaded, got %d", len(collections[1].Books))
	}

	empty, err := repo.FindByUser(ctx, 99)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no collections, got %v (err %v)", empty, err)
	}
}

func TestCollectionRepositoryImpl_FindByUserAndName(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()
	if err := repo.Create(ctx, &domain.Collection{UserID: 3, CollectionName: "Sci-Fi"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	found, err := repo.FindByUserAndName(ctx, 3, "  sci-fi ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.CollectionName != "Sci-Fi" {
		t.Errorf("expected original name to be kept, got %s", found.CollectionName)
	}

	if _, err := repo.FindByUserAndName(ctx, 4, "Sci-Fi"); err != domain.ErrCollectionNotFound {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}
