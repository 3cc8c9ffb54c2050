package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/mesto-backend/mesto/internal/httperr"
	"github.com/mesto-backend/mesto/internal/logging"
	"github.com/mesto-backend/mesto/internal/token"
)

func newProtectedApp(t *testing.T, tokens *token.Service, handlerRan *bool, seen *Identity) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(logging.Discard())})
	app.Use(Middleware(tokens))
	app.Get("/protected", Handler(func(c *fiber.Ctx, id Identity) error {
		*handlerRan = true
		*seen = id
		return c.SendStatus(http.StatusOK)
	}))
	return app
}

func TestMiddlewareRejectsMissingCookie(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	var handlerRan bool
	var seen Identity
	app := newProtectedApp(t, tokens, &handlerRan, &seen)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, handlerRan, "handler must not run without a token")
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	var handlerRan bool
	var seen Identity
	app := newProtectedApp(t, tokens, &handlerRan, &seen)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "tampered"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, handlerRan)
}

func TestMiddlewarePassesIdentityExplicitly(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	var handlerRan bool
	var seen Identity
	app := newProtectedApp(t, tokens, &handlerRan, &seen)

	signed, err := tokens.Issue("64adf13359b0a1f2c3d4e5f6")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: signed})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, handlerRan)
	require.Equal(t, "64adf13359b0a1f2c3d4e5f6", seen.UserID)
}

func TestHandlerRejectsMissingIdentity(t *testing.T) {
	// The adapter double-checks even when the middleware was never installed.
	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(logging.Discard())})
	var handlerRan bool
	app.Get("/orphan", Handler(func(c *fiber.Ctx, _ Identity) error {
		handlerRan = true
		return c.SendStatus(http.StatusOK)
	}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/orphan", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, handlerRan)
}
