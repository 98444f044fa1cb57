package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blog-service/internal/api/http"
	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/mail"
	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/service"
)

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) SetVerificationCode(_ context.Context, id, codeHash string, issuedAt time.Time) error {
	for _, user := range r.users {
		if user.ID == id {
			hash := codeHash
			at := issuedAt
			user.VerificationCodeHash = &hash
			user.VerificationCodeIssuedAt = &at
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memUserRepo) MarkVerified(_ context.Context, id string) error {
	for _, user := range r.users {
		if user.ID == id {
			user.Verified = true
			user.VerificationCodeHash = nil
			user.VerificationCodeIssuedAt = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memMailer struct {
	sent []mail.Message
}

func (m *memMailer) Enqueue(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type memRevocation struct {
	revoked map[string]bool
}

func (m *memRevocation) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.revoked[jti] = true
	return nil
}

func (m *memRevocation) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func newTestApp(t *testing.T) (*fiber.App, *memUserRepo, *memMailer) {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			HMACCodeKey:    "test-hmac-key",
			TokenTTLHours:  8,
			CodeTTLMinutes: 10,
			BcryptCost:     4,
		},
	}

	repo := &memUserRepo{users: make(map[string]*domain.User)}
	mailer := &memMailer{}
	revoked := &memRevocation{revoked: make(map[string]bool)}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   repo,
		Mailer:     mailer,
		Revocation: revoked,
		Logger:     zap.NewNop(),
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService, false),
		Posts:          handlers.NewPostsHandler(service.NewPostService(nil)),
		Events:         handlers.NewEventsHandler(service.NewEventService(nil, mailer, zap.NewNop())),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), revoked),
	})
	return app, repo, mailer
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestAuthFlow(t *testing.T) {
	app, repo, mailer := newTestApp(t)

	// Signup.
	status, body := doJSON(t, app, "POST", "/api/auth/signup", "", fiber.Map{
		"name": "Al Smith", "email": "a@x.com", "password": "abc12345",
	})
	require.Equal(t, 201, status)
	assert.Equal(t, "User created successfully", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.Equal(t, false, user["verified"])

	// Duplicate signup.
	status, body = doJSON(t, app, "POST", "/api/auth/signup", "", fiber.Map{
		"name": "Al Smith", "email": "a@x.com", "password": "abc12345",
	})
	require.Equal(t, 401, status)
	assert.Equal(t, "User already exists", body["message"])
	assert.Len(t, repo.users, 1)

	// Sign in.
	status, body = doJSON(t, app, "POST", "/api/auth/sign-in", "", fiber.Map{
		"email": "a@x.com", "password": "abc12345",
	})
	require.Equal(t, 200, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Send verification code.
	status, _ = doJSON(t, app, "PATCH", "/api/auth/send-verify-code", token, fiber.Map{
		"email": "a@x.com",
	})
	require.Equal(t, 200, status)
	require.Len(t, mailer.sent, 1)

	code := strings.TrimPrefix(mailer.sent[0].Body, "Your verification code is ")
	require.Len(t, code, 6)
	assert.NotEqual(t, code, *repo.users["a@x.com"].VerificationCodeHash)

	// Verify.
	status, body = doJSON(t, app, "PATCH", "/api/auth/verify-verification-code", token, fiber.Map{
		"email": "a@x.com", "verificationCode": code,
	})
	require.Equal(t, 200, status)
	user, ok = body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["verified"])

	// Replaying the same verification is rejected as already verified.
	status, body = doJSON(t, app, "PATCH", "/api/auth/verify-verification-code", token, fiber.Map{
		"email": "a@x.com", "verificationCode": code,
	})
	require.Equal(t, 400, status)
	assert.Equal(t, "User already verified.", body["message"])
}

func TestSignOutClearsCookieAndRevokes(t *testing.T) {
	app, _, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/auth/signup", "", fiber.Map{
		"name": "Al Smith", "email": "a@x.com", "password": "abc12345",
	})
	require.Equal(t, 201, status)

	status, body := doJSON(t, app, "POST", "/api/auth/sign-in", "", fiber.Map{
		"email": "a@x.com", "password": "abc12345",
	})
	require.Equal(t, 200, status)
	token, _ := body["token"].(string)

	status, _ = doJSON(t, app, "POST", "/api/auth/sign-out", token, nil)
	require.Equal(t, 200, status)

	// The revoked token no longer authenticates.
	status, _ = doJSON(t, app, "PATCH", "/api/auth/send-verify-code", token, fiber.Map{
		"email": "a@x.com",
	})
	require.Equal(t, 401, status)
}

func TestSignUpValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []fiber.Map{
		{"name": "Al", "email": "a@x.com", "password": "abc12345"},
		{"name": "Al Smith", "email": "nope", "password": "abc12345"},
		{"name": "Al Smith", "email": "a@x.com", "password": "short1"},
		{"name": "Al Smith", "email": "a@x.com", "password": "has spaces 123"},
	}
	for _, payload := range cases {
		status, _ := doJSON(t, app, "POST", "/api/auth/signup", "", payload)
		assert.Equal(t, 401, status)
	}
}
