package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
	"go.uber.org/zap"
)

// Envelope is the JSON shape of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Token   string      `json:"token,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// Responder writes envelopes and maps service errors to status codes
type Responder struct {
	exposeInternal bool
	logger         *zap.Logger
}

// NewResponder creates a responder. Internal error text reaches clients only when exposeInternal is set.
func NewResponder(exposeInternal bool, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{exposeInternal: exposeInternal, logger: logger}
}

// OK writes a successful envelope
func (r *Responder) OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a successful envelope with a count field
func (r *Responder) List(c *gin.Context, message string, data interface{}, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Count: &count})
}

// Fail writes a client error envelope
func (r *Responder) Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// Internal logs err and writes a 500 envelope
func (r *Responder) Internal(c *gin.Context, err error) {
	r.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	env := Envelope{Success: false, Message: "Internal server error"}
	if r.exposeInternal {
		env.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, env)
}

// Error maps a domain error to its status code and message; anything unknown is internal
func (r *Responder) Error(c *gin.Context, err error) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		r.Internal(c, err)
		return
	}
	r.Fail(c, status, message)
}

// StatusFor returns the HTTP status and client message for a domain error
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, domain.ErrPhoneAlreadyRegistered):
		return http.StatusBadRequest, "Phone number already registered"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, domain.ErrOTPInvalid):
		return http.StatusBadRequest, "Invalid OTP"
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, "OTP has expired"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound, "Book not found"
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return http.StatusNotFound, "Purchase not found"
	case errors.Is(err, domain.ErrCollectionNotFound):
		return http.StatusNotFound, "Collection not found"
	case errors.Is(err, domain.ErrCollectionExists):
		return http.StatusBadRequest, "Collection with this name already exists"
	case errors.Is(err, domain.ErrInvalidBook):
		return http.StatusBadRequest, "Title, book image, description, and at least one category are required"
	case errors.Is(err, domain.ErrInvalidPurchase):
		return http.StatusBadRequest, "Book ID, customer name, address, and phone are required"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Required fields are missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token has been revoked"
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access Denied"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
