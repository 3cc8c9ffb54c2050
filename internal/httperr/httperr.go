// Package httperr defines the typed error taxonomy shared by every request
// pipeline stage and the single handler that renders errors to clients.
//
// Handlers and middleware never write error responses themselves. They return
// an *Error (or any error, which is coerced to an internal one) and the Fiber
// error handler produced by Handler renders exactly one JSON envelope of the
// form {"message": "..."} with the matching HTTP status.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind tags an error with its pipeline source.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindBadRequest     Kind = "bad_request"
	KindAuthentication Kind = "authentication"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindRateLimited    Kind = "rate_limited"
	KindInternal       Kind = "internal"
)

// InternalMessage is the only message clients ever see for a 500. Internal
// detail stays in the server log.
const InternalMessage = "an error occurred on the server"

// Error is a typed failure carrying an HTTP status and a message that is safe
// to expose to the client.
type Error struct {
	Status  int
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a schema violation in a request segment.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

// BadRequest reports structurally invalid data reaching the storage layer.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindBadRequest, Message: message}
}

// Authentication reports a missing, malformed, expired or tampered credential.
// All of those collapse to the same message so verification internals never leak.
func Authentication(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindAuthentication, Message: message}
}

// Forbidden reports an ownership mismatch on an owned resource.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Kind: KindForbidden, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email at signup.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Kind: KindConflict, Message: message}
}

// TooManyRequests reports a rate limit violation.
func TooManyRequests(message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Kind: KindRateLimited, Message: message}
}

// Internal wraps an unexpected error. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindInternal, Message: InternalMessage, Err: err}
}

type envelope struct {
	Message string `json:"message"`
}

// Handler builds the Fiber error handler that is the single rendering point
// for every failed request. Unexpected errors are coerced to a 500 with the
// fixed message; their detail is written to the log only.
func Handler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		typed := normalize(err)

		if typed.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}

		return c.Status(typed.Status).JSON(envelope{Message: typed.Message})
	}
}

func normalize(err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		if typed.Status >= http.StatusInternalServerError {
			typed.Message = InternalMessage
		}
		return typed
	}

	// Errors raised by Fiber itself (body limit, method rejection) carry a
	// status of their own; anything at or above 500 still hides its detail.
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= http.StatusInternalServerError {
			return Internal(fe)
		}
		return &Error{Status: fe.Code, Kind: KindBadRequest, Message: fe.Message}
	}

	return Internal(err)
}
