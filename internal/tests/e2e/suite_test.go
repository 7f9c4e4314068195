package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/you/bookstore/internal/app"
	"github.com/you/bookstore/internal/config"
	"github.com/you/bookstore/internal/infrastructure/database"
	"github.com/you/bookstore/internal/mocks"
)

const (
	adminEmail    = "admin@bookstore.test"
	adminPassword = "admin-password"
)

var ownershipRules = []config.OwnershipRule{
	{Method: http.MethodGet, Path: "/api/getCollection/:userId", Source: "path", ParamName: "userId"},
	{Method: http.MethodPost, Path: "/api/addNewCollection", Source: "body", ParamName: "userId"},
	{Method: http.MethodGet, Path: "/api/profile/:userId", Source: "path", ParamName: "userId"},
}

// TestServer runs the fully wired service over sqlite and miniredis
type TestServer struct {
	t      *testing.T
	Server *httptest.Server
	SMS    *mocks.MockNotificationService
	Redis  *miniredis.Miniredis
	App    *app.Container
}

// NewTestServer boots the service. Each test gets its own database.
func NewTestServer(t *testing.T, otpStore string) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), database.Config("silent"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	sms := mocks.NewMockNotificationService()

	cfg := &config.Config{
		Environment:      "test",
		JWTSecret:        "e2e-secret",
		JWTIssuer:        "bookstore",
		TokenTTL:         time.Hour,
		BcryptCost:       4,
		HashWorkers:      4,
		RevokeTokens:     true,
		OTPStore:         otpStore,
		OTPTTL:           10 * time.Minute,
		OTPLength:        6,
		OTPRetention:     10 * time.Minute,
		OTPSweepInterval: time.Minute,
		AdminEmail:       adminEmail,
		AdminPassword:    adminPassword,
		AdminPhone:       "+15550000001",
		NodeID:           1,
		OwnershipRules:   ownershipRules,
	}

	logger := zaptest.NewLogger(t)
	c, err := app.NewContainer(cfg, app.Infra{
		DB:    db,
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		SMS:   sms,
	}, logger)
	require.NoError(t, err)
	require.NoError(t, app.EnsureAdmin(context.Background(), cfg, c.UserRepo, c.PasswordSvc, logger))

	srv := httptest.NewServer(c.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = c.Close()
	})

	return &TestServer{t: t, Server: srv, SMS: sms, Redis: mr, App: c}
}

// Response is a decoded envelope
type Response struct {
	Status int
	Body   map[string]interface{}
}

// Data returns the envelope data as an object
func (r Response) Data() map[string]interface{} {
	m, _ := r.Body["data"].(map[string]interface{})
	return m
}

// List returns the envelope data as an array
func (r Response) List() []interface{} {
	l, _ := r.Body["data"].([]interface{})
	return l
}

// Do sends a JSON request, adding a bearer token when one is given
func (s *TestServer) Do(method, path, token string, body interface{}) Response {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Server.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode}
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&out.Body))
	return out
}

var codePattern = regexp.MustCompile(`code is: (\d+)`)

// LastCode returns the code from the most recent SMS sent to phone
func (s *TestServer) LastCode(phone string) string {
	s.t.Helper()
	msgs := s.SMS.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].To != phone {
			continue
		}
		m := codePattern.FindStringSubmatch(msgs[i].Message)
		require.Len(s.t, m, 2, "unexpected SMS body %q", msgs[i].Message)
		return m[1]
	}
	s.t.Fatalf("no SMS sent to %s", phone)
	return ""
}

// Signup registers a reader and returns its id
func (s *TestServer) Signup(name, phone, email, password string) uint {
	s.t.Helper()
	resp := s.Do(http.MethodPost, "/api/signup", "", map[string]string{
		"fullname": name,
		"phone":    phone,
		"email":    email,
		"college":  "State University",
		"password": password,
	})
	require.Equal(s.t, http.StatusCreated, resp.Status, resp.Body)
	return uint(resp.Data()["_id"].(float64))
}

// Login returns a token for an email login
func (s *TestServer) Login(email, password string) string {
	s.t.Helper()
	resp := s.Do(http.MethodPost, "/api/login/email", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, resp.Status, resp.Body)
	token, _ := resp.Body["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}
