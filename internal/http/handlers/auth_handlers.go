package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc    domain.AuthService
	resp       *Responder
	exposeCode bool
}

// NewAuthHandlers creates new auth handlers. exposeCode echoes issued OTPs in the send-otp response.
func NewAuthHandlers(authSvc domain.AuthService, resp *Responder, exposeCode bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		resp:       resp,
		exposeCode: exposeCode,
	}
}

// SignupRequest represents a registration request
type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	College  string `json:"college" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents an email login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SendOTPRequest represents a phone login code request
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest represents a phone login verification
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "Fullname, phone, email, college, and password are required")
		return
	}

	user, err := h.authSvc.Signup(c.Request.Context(), domain.SignupInput{
		Fullname: req.Fullname,
		Phone:    req.Phone,
		Email:    req.Email,
		College:  req.College,
		Password: req.Password,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, http.StatusCreated, "User registered successfully", user)
}

// LoginWithEmail handles email and password login
func (h *AuthHandlers) LoginWithEmail(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authSvc.LoginWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.loginSuccess(c, result)
}

// SendOTP handles code generation and dispatch
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "Phone number is required")
		return
	}

	dispatch, err := h.authSvc.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.resp.Fail(c, http.StatusNotFound, "User not found with this phone number")
			return
		}
		h.resp.Error(c, err)
		return
	}

	data := gin.H{"phone": dispatch.Phone}
	if h.exposeCode {
		data["otp"] = dispatch.Code
	}
	h.resp.OK(c, http.StatusOK, "OTP sent successfully", data)
}

// VerifyOTPAndLogin handles code verification
func (h *AuthHandlers) VerifyOTPAndLogin(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}

	result, err := h.authSvc.VerifyOTPAndLogin(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.loginSuccess(c, result)
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		h.resp.Fail(c, http.StatusUnauthorized, "Authorization required")
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, http.StatusOK, "Profile retrieved successfully", user)
}

// Profile returns the public profile for :userId
func (h *AuthHandlers) Profile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || userID == 0 {
		h.resp.Fail(c, http.StatusBadRequest, "User ID is required")
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), uint(userID))
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, http.StatusOK, "", gin.H{
		"_id":          user.ID,
		"name":         user.Fullname,
		"email":        user.Email,
		"phone":        user.Phone,
		"profileImage": nil,
	})
}

// Logout revokes the presented token
func (h *AuthHandlers) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		h.resp.Fail(c, http.StatusUnauthorized, "Authorization required")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandlers) loginSuccess(c *gin.Context, result *domain.AuthResult) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "Login successful",
		Data:    result.User,
		Token:   result.Token,
	})
}
