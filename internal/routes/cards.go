package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/auth"
	"github.com/mesto-backend/mesto/internal/card"
)

// RegisterCardRoutes wires the authenticated card endpoints.
func RegisterCardRoutes(r fiber.Router, h *card.Handler) {
	group := r.Group("/cards")
	group.Get("/", auth.Handler(h.List))
	group.Post("/", auth.Handler(h.Create))
	group.Delete("/:cardId", auth.Handler(h.Delete))
	group.Put("/:cardId/likes", auth.Handler(h.Like))
	group.Delete("/:cardId/likes", auth.Handler(h.Unlike))
}
