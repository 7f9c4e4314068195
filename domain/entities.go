package domain

import (
	"strings"
	"time"
)

// Roles assigned to users
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered reader
type User struct {
	ID           uint      `json:"_id"`
	Fullname     string    `json:"fullname"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	College      string    `json:"college"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized returns a copy of the user without the password hash
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

// SignupInput carries the fields required to create an account
type SignupInput struct {
	Fullname string
	Phone    string
	Email    string
	College  string
	Password string
}

// AuthResult represents a successful login
type AuthResult struct {
	User  *User
	Token string
}

// OneTimeCode is the single live login code for a phone number
type OneTimeCode struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the code is past its expiry at the given instant
func (c *OneTimeCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// OTPDispatch acknowledges a sent code. Code is only echoed to clients in development.
type OTPDispatch struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
}

// Price tags derived from Book.IsFree
const (
	PriceTagFree = "Free"
	PriceTagPaid = "Paid"
)

// Book is a catalog entry
type Book struct {
	ID          uint      `json:"_id"`
	Title       string    `json:"title"`
	BookImage   string    `json:"book_image"`
	Description string    `json:"description,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Cost        float64   `json:"cost"`
	IsFree      bool      `json:"isFree"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PriceTag returns "Free" or "Paid"
func (b *Book) PriceTag() string {
	if b.IsFree {
		return PriceTagFree
	}
	return PriceTagPaid
}

// BookInput carries the admin-editable book fields
type BookInput struct {
	Title       string
	BookImage   string
	Description string
	Categories  []string
	Cost        float64
}

// Validate checks that the required book fields are present
func (in BookInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.BookImage) == "" ||
		strings.TrimSpace(in.Description) == "" || len(in.Categories) == 0 {
		return ErrInvalidBook
	}
	if in.Cost < 0 {
		return ErrInvalidBook
	}
	return nil
}

// Purchase statuses
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusConfirmed = "confirmed"
	PurchaseStatusShipped   = "shipped"
	PurchaseStatusDelivered = "delivered"
)

// Purchase is a captured order for a single book
type Purchase struct {
	ID              uint      `json:"purchaseId"`
	OrderNumber     int64     `json:"orderNumber,string"`
	BookID          uint      `json:"bookId"`
	CustomerName    string    `json:"customerName"`
	CustomerAddress string    `json:"customerAddress"`
	CustomerPhone   string    `json:"customerPhone"`
	BookTitle       string    `json:"bookTitle"`
	BookPrice       float64   `json:"bookPrice"`
	PurchaseDate    time.Time `json:"purchaseDate"`
	Status          string    `json:"status"`
}

// PurchaseInput carries the customer-supplied purchase fields
type PurchaseInput struct {
	BookID          uint
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
}

// Collection is a named, user-owned list of books
type Collection struct {
	ID             uint             `json:"_id"`
	UserID         uint             `json:"userId"`
	CollectionName string           `json:"collection_name"`
	Books          []CollectionBook `json:"books"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// CollectionBook is a book entry within a collection
type CollectionBook struct {
	BookID  uint      `json:"bookId"`
	Book    *Book     `json:"book,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}
