// Package validation runs schema validation over one request segment (body,
// path params or query) before the route handler executes. A segment is
// accepted or rejected atomically: any single field violation rejects the
// whole segment with a 400 typed error and the handler never runs.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mesto-backend/mesto/internal/httperr"
)

var (
	// objectIDPattern matches a fixed-length 24 character hexadecimal
	// document identifier.
	objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

	// urlPattern matches absolute http(s) URLs for avatar and card links.
	urlPattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?(?:[a-z0-9-]+[a-z0-9]*\.)+[a-z]{2,}(?::[0-9]+)?(?:/\S*)?#?$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for a blank tag name, which would be a
	// programming error here.
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return urlPattern.MatchString(fl.Field().String())
	})

	return v
}

// Body decodes the JSON request body into out and validates it.
func Body(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return httperr.Validation("invalid request body")
	}
	return check(out)
}

// Params binds path parameters into out and validates them.
func Params(c *fiber.Ctx, out any) error {
	if err := c.ParamsParser(out); err != nil {
		return httperr.Validation("invalid path parameters")
	}
	return check(out)
}

// Query binds query string parameters into out and validates them.
func Query(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return httperr.Validation("invalid query parameters")
	}
	return check(out)
}

func check(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httperr.Validation("invalid request data")
	}

	return httperr.Validation(describe(verrs))
}

// describe renders field violations as the client-facing 400 detail.
func describe(verrs validator.ValidationErrors) string {
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldDetail(fe))
	}
	return "validation failed: " + strings.Join(details, "; ")
}

func fieldDetail(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "objectid":
		return fmt.Sprintf("%s must be a 24 character hex identifier", field)
	case "httpurl":
		return fmt.Sprintf("%s must be a valid http(s) URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
