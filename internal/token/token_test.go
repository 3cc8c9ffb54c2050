package token

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("64adf13359b0a1f2c3d4e5f6")
	require.NoError(t, err)

	userID, err := svc.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "64adf13359b0a1f2c3d4e5f6", userID)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	signed, err := svc.Issue("64adf13359b0a1f2c3d4e5f6")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	signed, err := svc.Issue("64adf13359b0a1f2c3d4e5f6")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestSetCookieAttributes(t *testing.T) {
	svc := NewService("test-secret", 7*24*time.Hour)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		signed, err := svc.Issue("64adf13359b0a1f2c3d4e5f6")
		require.NoError(t, err)
		svc.SetCookie(c, signed)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, CookieName, cookie.Name)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 7*24*60*60, cookie.MaxAge)
}
