// Package auth authenticates requests from the jwt cookie and hands the
// resolved identity to route handlers as an explicit argument.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/httperr"
	"github.com/mesto-backend/mesto/internal/token"
)

// unauthorizedMessage is the single message for every authentication failure.
const unauthorizedMessage = "authorization required"

// Identity is the verified caller identity extracted from the auth token.
type Identity struct {
	UserID string
}

// localsKey keeps the identity out of reach of anything that does not go
// through this package.
const localsKey = "auth.identity"

// Middleware extracts the token from the jwt cookie, verifies it and attaches
// the resolved identity for the handler adapter to pick up. Requests without a
// valid token are rejected before any handler runs.
func Middleware(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(token.CookieName)
		if raw == "" {
			return httperr.Authentication(unauthorizedMessage)
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			return httperr.Authentication(unauthorizedMessage)
		}

		c.Locals(localsKey, Identity{UserID: userID})
		return c.Next()
	}
}

// HandlerFunc is a route handler that receives the caller identity explicitly
// instead of reading it from ambient request state.
type HandlerFunc func(c *fiber.Ctx, id Identity) error

// Handler adapts a HandlerFunc into a fiber.Handler. It fails with an
// authentication error when no identity was attached, even though Middleware
// should already have rejected such requests.
func Handler(fn HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := c.Locals(localsKey).(Identity)
		if !ok || id.UserID == "" {
			return httperr.Authentication(unauthorizedMessage)
		}
		return fn(c, id)
	}
}
