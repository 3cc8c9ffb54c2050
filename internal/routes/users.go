package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/auth"
	"github.com/mesto-backend/mesto/internal/user"
)

// RegisterUserRoutes wires the authenticated user endpoints. The "me" routes
// must be registered before the ":id" route so they are not captured by it.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	group := r.Group("/users")
	group.Get("/", auth.Handler(h.List))
	group.Get("/me", auth.Handler(h.Me))
	group.Patch("/me", auth.Handler(h.UpdateProfile))
	group.Patch("/me/avatar", auth.Handler(h.UpdateAvatar))
	group.Get("/:id", auth.Handler(h.GetByID))
}
