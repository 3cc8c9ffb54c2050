package card

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/auth"
	"github.com/mesto-backend/mesto/internal/httperr"
	"github.com/mesto-backend/mesto/internal/validation"
)

const (
	notFoundMessage = "card with this id does not exist"
	notOwnerMessage = "you are not the owner of this card"
	deletedMessage  = "card deleted"
)

// Handler exposes card HTTP endpoints. Every route is authenticated, so each
// handler receives the caller identity explicitly.
type Handler struct {
	service *Service
}

// NewHandler builds a card HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,httpurl"`
}

type cardParams struct {
	CardID string `params:"cardId" validate:"required,objectid"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List returns all cards.
func (h *Handler) List(c *fiber.Ctx, _ auth.Identity) error {
	cards, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(cards)
}

// Create stores a new card owned by the caller.
func (h *Handler) Create(c *fiber.Ctx, id auth.Identity) error {
	var req createRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.UserContext(), CreateInput{
		Name:  req.Name,
		Link:  req.Link,
		Owner: id.UserID,
	})
	if err != nil {
		return mapCardErr(err)
	}
	return c.Status(http.StatusOK).JSON(created)
}

// Delete removes the caller's own card. Deleting somebody else's card fails
// with a forbidden error and leaves the card unmodified.
func (h *Handler) Delete(c *fiber.Ctx, id auth.Identity) error {
	var params cardParams
	if err := validation.Params(c, &params); err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), params.CardID, id.UserID); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return httperr.Forbidden(notOwnerMessage)
		}
		return mapCardErr(err)
	}
	return c.Status(http.StatusOK).JSON(messageResponse{Message: deletedMessage})
}

// Like adds the caller to the card's likes set; liking twice is a no-op.
func (h *Handler) Like(c *fiber.Ctx, id auth.Identity) error {
	var params cardParams
	if err := validation.Params(c, &params); err != nil {
		return err
	}

	liked, err := h.service.Like(c.UserContext(), params.CardID, id.UserID)
	if err != nil {
		return mapCardErr(err)
	}
	return c.Status(http.StatusOK).JSON(liked)
}

// Unlike removes the caller from the card's likes set.
func (h *Handler) Unlike(c *fiber.Ctx, id auth.Identity) error {
	var params cardParams
	if err := validation.Params(c, &params); err != nil {
		return err
	}

	unliked, err := h.service.Unlike(c.UserContext(), params.CardID, id.UserID)
	if err != nil {
		return mapCardErr(err)
	}
	return c.Status(http.StatusOK).JSON(unliked)
}

func mapCardErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound(notFoundMessage)
	case errors.Is(err, ErrInvalidID):
		return httperr.BadRequest(notFoundMessage)
	default:
		return err
	}
}
