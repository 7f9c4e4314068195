package domain

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrValidation = errors.New("validation failed")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")

	ErrEmailAlreadyRegistered = fmt.Errorf("email already registered: %w", ErrUserAlreadyExists)
	ErrPhoneAlreadyRegistered = fmt.Errorf("phone number already registered: %w", ErrUserAlreadyExists)
)

// OTP errors
var (
	ErrOTPExpired  = errors.New("otp has expired")
	ErrOTPInvalid  = errors.New("invalid otp")
	ErrOTPNotFound = errors.New("otp not found")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("access denied")
)

// Catalog errors
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrInvalidBook        = fmt.Errorf("title, book image, description, and at least one category are required: %w", ErrValidation)
	ErrInvalidPurchase    = fmt.Errorf("book id, customer name, address, and phone are required: %w", ErrValidation)
	ErrCollectionExists   = errors.New("collection with this name already exists")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidInput       = fmt.Errorf("required fields are missing: %w", ErrValidation)
)
