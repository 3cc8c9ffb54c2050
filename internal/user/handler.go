package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/auth"
	"github.com/mesto-backend/mesto/internal/httperr"
	"github.com/mesto-backend/mesto/internal/token"
	"github.com/mesto-backend/mesto/internal/validation"
)

const notFoundMessage = "user with this id does not exist"

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
	tokens  *token.Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service, tokens *token.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// The signup and signin password rules differ on purpose: signup historically
// accepted any non-empty password while signin requires six characters. The
// asymmetry is preserved; see DESIGN.md.
type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Name     string `json:"name" validate:"omitempty,min=2,max=30"`
	About    string `json:"about" validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar" validate:"omitempty,httpurl"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=30"`
	About string `json:"about" validate:"required,min=2,max=30"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,httpurl"`
}

type userParams struct {
	ID string `params:"id" validate:"required,objectid"`
}

type dataResponse struct {
	Data User `json:"data"`
}

// Signup registers a new account.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}

	u, err := h.service.Register(c.UserContext(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return httperr.Conflict("user with this email already exists")
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(dataResponse{Data: u})
}

// Signin verifies credentials, sets the auth cookie and returns the account.
func (h *Handler) Signin(c *fiber.Ctx) error {
	var req signinRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}

	u, err := h.service.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return httperr.Authentication(ErrBadCredentials.Error())
		}
		return err
	}

	signed, err := h.tokens.Issue(u.ID)
	if err != nil {
		return err
	}
	h.tokens.SetCookie(c, signed)

	return c.Status(http.StatusOK).JSON(dataResponse{Data: u})
}

// List returns all users.
func (h *Handler) List(c *fiber.Ctx, _ auth.Identity) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(users)
}

// Me returns the caller's own account.
func (h *Handler) Me(c *fiber.Ctx, id auth.Identity) error {
	u, err := h.service.Get(c.UserContext(), id.UserID)
	if err != nil {
		return mapLookupErr(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// GetByID returns a single user by path parameter.
func (h *Handler) GetByID(c *fiber.Ctx, _ auth.Identity) error {
	var params userParams
	if err := validation.Params(c, &params); err != nil {
		return err
	}

	u, err := h.service.Get(c.UserContext(), params.ID)
	if err != nil {
		return mapLookupErr(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// UpdateProfile changes the caller's name and about fields.
func (h *Handler) UpdateProfile(c *fiber.Ctx, id auth.Identity) error {
	var req updateProfileRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}

	u, err := h.service.UpdateProfile(c.UserContext(), id.UserID, req.Name, req.About)
	if err != nil {
		return mapLookupErr(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// UpdateAvatar changes the caller's avatar link.
func (h *Handler) UpdateAvatar(c *fiber.Ctx, id auth.Identity) error {
	var req updateAvatarRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}

	u, err := h.service.UpdateAvatar(c.UserContext(), id.UserID, req.Avatar)
	if err != nil {
		return mapLookupErr(err)
	}
	return c.Status(http.StatusOK).JSON(u)
}

// mapLookupErr translates storage sentinels into typed errors: a missing user
// is a 404, a malformed id reaching the store a 400. Everything else passes
// through for the normalizer to coerce.
func mapLookupErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httperr.NotFound(notFoundMessage)
	case errors.Is(err, ErrInvalidID):
		return httperr.BadRequest(notFoundMessage)
	default:
		return err
	}
}
