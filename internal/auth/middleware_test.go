package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

type memRevocation struct {
	revoked map[string]bool
}

func (m *memRevocation) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if m.revoked == nil {
		m.revoked = make(map[string]bool)
	}
	m.revoked[jti] = true
	return nil
}

func (m *memRevocation) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func newTestApp(tm *TokenManager, revoked RevocationStore) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	mw := NewAuthMiddleware(tm, revoked)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no claims")
		}
		return c.SendString(claims.Email)
	})
	return app
}

func TestMiddleware_BearerHeader(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(tm, &memRevocation{})

	token, _, err := tm.GenerateToken("u1", "a@x.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestMiddleware_Cookie(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(tm, &memRevocation{})

	token, _, err := tm.GenerateToken("u1", "a@x.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", CookieName+"=Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestMiddleware_MissingToken(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewTokenManager("secret", time.Hour), &memRevocation{})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	app := newTestApp(NewTokenManager("secret", time.Hour), &memRevocation{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestMiddleware_RevokedToken(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	revoked := &memRevocation{}
	app := newTestApp(tm, revoked)

	token, _, err := tm.GenerateToken("u1", "a@x.com", false)
	require.NoError(t, err)
	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(context.Background(), claims.ID, time.Hour))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}
