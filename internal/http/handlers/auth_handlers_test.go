package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/http/middleware"
	"github.com/you/bookstore/internal/mocks"
)

func newAuthHandlersForTest(authSvc *mocks.MockAuthService, exposeCode bool) *AuthHandlers {
	return NewAuthHandlers(authSvc, NewResponder(false, nil), exposeCode)
}

func withClaims(claims *domain.TokenClaims) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ContextClaims, claims)
	}
}

func TestAuthHandlers_Signup(t *testing.T) {
	validBody := map[string]interface{}{
		"fullname": "Ada Lovelace",
		"phone":    "+15550001",
		"email":    "ada@example.com",
		"college":  "Analytical",
		"password": "pw123456",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "successful signup",
			requestBody:    validBody,
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]interface{}{
				"success": true,
				"message": "User registered successfully",
				"data": map[string]interface{}{
					"email":    "ada@example.com",
					"fullname": "Ada Lovelace",
				},
			},
		},
		{
			name: "missing college",
			requestBody: map[string]interface{}{
				"fullname": "Ada Lovelace",
				"phone":    "+15550001",
				"email":    "ada@example.com",
				"password": "pw123456",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
					t.Error("service must not be called for invalid input")
					return nil, nil
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"success": false},
		},
		{
			name:        "email already registered",
			requestBody: validBody,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
					return nil, domain.ErrEmailAlreadyRegistered
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"success": false,
				"message": "Email already registered",
			},
		},
		{
			name:        "phone already registered",
			requestBody: validBody,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
					return nil, domain.ErrPhoneAlreadyRegistered
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"message": "Phone number already registered",
			},
		},
		{
			name:        "store failure hides detail",
			requestBody: validBody,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SignupFunc = func(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
					return nil, errors.New("pq: connection refused")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: map[string]interface{}{
				"message": "Internal server error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			h := newAuthHandlersForTest(authSvc, false)

			w, body := performRequest(t, h.Signup, http.MethodPost, "/api/signup", tt.requestBody, nil)

			assertResponse(t, w, body, tt.expectedStatus, tt.expectedBody)
			if _, leaked := body["error"]; leaked {
				t.Errorf("internal error text must not be exposed: %v", body["error"])
			}
			if data, ok := body["data"].(map[string]interface{}); ok {
				if _, has := data["PasswordHash"]; has {
					t.Error("password hash must not be serialized")
				}
			}
		})
	}
}

func TestAuthHandlers_LoginWithEmail(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "successful login",
			requestBody:    LoginRequest{Email: "ada@example.com", Password: "pw"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success": true,
				"message": "Login successful",
				"token":   "token_user_1_user",
				"data":    map[string]interface{}{"email": "ada@example.com"},
			},
		},
		{
			name:           "missing password",
			requestBody:    map[string]string{"email": "ada@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"message": "Email and password are required",
			},
		},
		{
			name:           "malformed json",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"message": "Email and password are required",
			},
		},
		{
			name:        "invalid credentials",
			requestBody: LoginRequest{Email: "ada@example.com", Password: "wrong"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]interface{}{
				"success": false,
				"message": "Invalid email or password",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			h := newAuthHandlersForTest(authSvc, false)

			w, body := performRequest(t, h.LoginWithEmail, http.MethodPost, "/api/login/email", tt.requestBody, nil)

			assertResponse(t, w, body, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestAuthHandlers_SendOTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		exposeCode     bool
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
		expectCode     bool
	}{
		{
			name:           "code withheld by default",
			requestBody:    SendOTPRequest{Phone: "+15550001"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"message": "OTP sent successfully",
				"data":    map[string]interface{}{"phone": "+15550001"},
			},
		},
		{
			name:           "code echoed when exposed",
			requestBody:    SendOTPRequest{Phone: "+15550001"},
			exposeCode:     true,
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"data": map[string]interface{}{"phone": "+15550001", "otp": "123456"},
			},
			expectCode: true,
		},
		{
			name:           "missing phone",
			requestBody:    map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"message": "Phone number is required",
			},
		},
		{
			name:        "unknown phone",
			requestBody: SendOTPRequest{Phone: "+19990000"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SendOTPFunc = func(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody: map[string]interface{}{
				"message": "User not found with this phone number",
			},
		},
		{
			name:        "sms gateway failure",
			requestBody: SendOTPRequest{Phone: "+15550001"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.SendOTPFunc = func(ctx context.Context, phone string) (*domain.OTPDispatch, error) {
					return nil, errors.New("failed to send OTP SMS: gateway down")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			h := newAuthHandlersForTest(authSvc, tt.exposeCode)

			w, body := performRequest(t, h.SendOTP, http.MethodPost, "/api/login/phone/send-otp", tt.requestBody, nil)

			assertResponse(t, w, body, tt.expectedStatus, tt.expectedBody)
			if data, ok := body["data"].(map[string]interface{}); ok {
				if _, has := data["otp"]; has != tt.expectCode {
					t.Errorf("expected otp present=%v, got %v", tt.expectCode, has)
				}
			}
		})
	}
}

func TestAuthHandlers_VerifyOTPAndLogin(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "successful verification",
			requestBody:    VerifyOTPRequest{Phone: "+15550001", OTP: "123456"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success": true,
				"message": "Login successful",
				"token":   "token_user_1_user",
			},
		},
		{
			name:           "missing otp",
			requestBody:    map[string]string{"phone": "+15550001"},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"message": "Phone number and OTP are required",
			},
		},
		{
			name:        "invalid code",
			requestBody: VerifyOTPRequest{Phone: "+15550001", OTP: "000000"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPAndLoginFunc = func(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPInvalid
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "Invalid OTP"},
		},
		{
			name:        "expired code",
			requestBody: VerifyOTPRequest{Phone: "+15550001", OTP: "123456"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPAndLoginFunc = func(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrOTPExpired
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "OTP has expired"},
		},
		{
			name:        "user vanished",
			requestBody: VerifyOTPRequest{Phone: "+15550001", OTP: "123456"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.VerifyOTPAndLoginFunc = func(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"message": "User not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			h := newAuthHandlersForTest(authSvc, false)

			w, body := performRequest(t, h.VerifyOTPAndLogin, http.MethodPost, "/api/login/phone/verify-otp", tt.requestBody, nil)

			assertResponse(t, w, body, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := newAuthHandlersForTest(authSvc, false)

	w, body := performRequest(t, h.Me, http.MethodGet, "/api/me", nil,
		withClaims(&domain.TokenClaims{UserID: 7, Role: domain.RoleUser}))
	assertResponse(t, w, body, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"_id": float64(7)},
	})

	w, body = performRequest(t, h.Me, http.MethodGet, "/api/me", nil, nil)
	assertResponse(t, w, body, http.StatusUnauthorized, map[string]interface{}{"success": false})
}

func TestAuthHandlers_Profile(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:   "profile found",
			userID: "3",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.GetProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
					return &domain.User{ID: userID, Fullname: "Grace", Email: "g@example.com", Phone: "+1"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"data": map[string]interface{}{"_id": float64(3), "name": "Grace", "email": "g@example.com"},
			},
		},
		{
			name:           "non numeric id",
			userID:         "abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"message": "User ID is required"},
		},
		{
			name:   "user missing",
			userID: "99",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.GetProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"message": "User not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			h := newAuthHandlersForTest(authSvc, false)

			w, body := performRequest(t, h.Profile, http.MethodGet, "/api/profile/"+tt.userID, nil, withParam("userId", tt.userID))

			assertResponse(t, w, body, tt.expectedStatus, tt.expectedBody)
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	claims := &domain.TokenClaims{UserID: 1, Role: domain.RoleUser, TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour).Unix()}

	t.Run("revokes presented token", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		var got *domain.TokenClaims
		authSvc.LogoutFunc = func(ctx context.Context, c *domain.TokenClaims) error {
			got = c
			return nil
		}
		h := newAuthHandlersForTest(authSvc, false)

		w, body := performRequest(t, h.Logout, http.MethodPost, "/api/logout", nil, withClaims(claims))

		assertResponse(t, w, body, http.StatusOK, map[string]interface{}{"message": "Logged out successfully"})
		if got == nil || got.TokenID != "jti-1" {
			t.Errorf("expected claims to reach the service, got %+v", got)
		}
	})

	t.Run("denylist unavailable", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.LogoutFunc = func(ctx context.Context, c *domain.TokenClaims) error {
			return errors.New("failed to revoke token: redis down")
		}
		h := NewAuthHandlers(authSvc, NewResponder(true, nil), false)

		w, body := performRequest(t, h.Logout, http.MethodPost, "/api/logout", nil, withClaims(claims))

		assertResponse(t, w, body, http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to revoke token: redis down",
		})
	})
}
