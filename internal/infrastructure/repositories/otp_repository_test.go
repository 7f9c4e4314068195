package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/bookstore/domain"
)

func TestGormOTPRepository_UpsertForPhone(t *testing.T) {
	db := setupTestDB(t)
	clock := newFakeClock()
	repo := NewGormOTPRepository(db, WithOTPClock(clock.Now))
	ctx := context.Background()

	for _, code := range []string{"111111", "222222", "333333"} {
		err := repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: "+15552220000", Code: code, ExpiresAt: clock.Now().Add(10 * time.Minute)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var count int64
	db.Model(&DBOneTimeCode{}).Where("phone = ?", "+15552220000").Count(&count)
	if count != 1 {
		t.Fatalf("expected one record per phone, got %d", count)
	}
	if _, err := repo.FindMatching(ctx, "+15552220000", "222222"); err != domain.ErrOTPNotFound {
		t.Errorf("expected older code to be replaced, got %v", err)
	}
	if _, err := repo.FindMatching(ctx, "+15552220000", "333333"); err != nil {
		t.Errorf("expected latest code to match, got %v", err)
	}
}

func TestGormOTPRepository_FindMatching(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		advance       time.Duration
		expectedError error
		expectedRows  int64
	}{
		{name: "live match", code: "123456", expectedRows: 1},
		{name: "mismatch keeps record", code: "000000", expectedError: domain.ErrOTPNotFound, expectedRows: 1},
		{name: "expired match is deleted", code: "123456", advance: 10*time.Minute + time.Second, expectedError: domain.ErrOTPExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			clock := newFakeClock()
			repo := NewGormOTPRepository(db, WithOTPClock(clock.Now))
			ctx := context.Background()

			err := repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: "+15552220001", Code: "123456", ExpiresAt: clock.Now().Add(10 * time.Minute)})
			if err != nil {
				t.Fatalf("seed failed: %v", err)
			}
			clock.Advance(tt.advance)

			otp, err := repo.FindMatching(ctx, "+15552220001", tt.code)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError == nil && otp.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, otp.Code)
			}

			var count int64
			db.Model(&DBOneTimeCode{}).Count(&count)
			if count != tt.expectedRows {
				t.Errorf("expected %d rows, got %d", tt.expectedRows, count)
			}
		})
	}
}

func TestGormOTPRepository_ConsumeMatching(t *testing.T) {
	db := setupTestDB(t)
	clock := newFakeClock()
	repo := NewGormOTPRepository(db, WithOTPClock(clock.Now))
	ctx := context.Background()

	err := repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: "+15552220002", Code: "424242", ExpiresAt: clock.Now().Add(time.Minute)})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := repo.ConsumeMatching(ctx, "+15552220002", "424242"); err != nil {
		t.Fatalf("expected consume to succeed, got %v", err)
	}
	if _, err := repo.ConsumeMatching(ctx, "+15552220002", "424242"); err != domain.ErrOTPNotFound {
		t.Errorf("expected reuse to fail with ErrOTPNotFound, got %v", err)
	}

	err = repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: "+15552220002", Code: "515151", ExpiresAt: clock.Now().Add(time.Minute)})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	clock.Advance(2 * time.Minute)
	if _, err := repo.ConsumeMatching(ctx, "+15552220002", "515151"); err != domain.ErrOTPExpired {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}
	if _, err := repo.ConsumeMatching(ctx, "+15552220002", "515151"); err != domain.ErrOTPNotFound {
		t.Errorf("expected expired record to be gone, got %v", err)
	}
}

func TestGormOTPRepository_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	clock := newFakeClock()
	repo := NewGormOTPRepository(db, WithOTPClock(clock.Now))
	ctx := context.Background()

	seed := map[string]time.Duration{
		"+15552220010": -time.Minute,
		"+15552220011": -time.Hour,
		"+15552220012": time.Minute,
	}
	for phone, offset := range seed {
		if err := repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: phone, Code: "101010", ExpiresAt: clock.Now().Add(offset)}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 expired rows removed, got %d", n)
	}
	if _, err := repo.FindMatching(ctx, "+15552220012", "101010"); err != nil {
		t.Errorf("live record must survive the sweep, got %v", err)
	}
}

func TestGormOTPRepository_DeleteForPhone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOTPRepository(db)
	ctx := context.Background()

	if err := repo.UpsertForPhone(ctx, &domain.OneTimeCode{Phone: "+15552220020", Code: "777777", ExpiresAt: time.Now().Add(time.Minute)}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := repo.DeleteForPhone(ctx, "+15552220020"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindMatching(ctx, "+15552220020", "777777"); err != domain.ErrOTPNotFound {
		t.Errorf("expected ErrOTPNotFound after delete, got %v", err)
	}
}
