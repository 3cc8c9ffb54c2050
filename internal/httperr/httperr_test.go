package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/mesto-backend/mesto/internal/logging"
)

func renderedError(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: Handler(logging.Discard())})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &env))

	// The envelope is the only field clients receive.
	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	require.Len(t, fields, 1)

	return resp.StatusCode, env.Message
}

func TestTypedErrorsRenderStatusAndMessage(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("name must be at least 2 characters"), http.StatusBadRequest},
		{BadRequest("bad id"), http.StatusBadRequest},
		{Authentication("authorization required"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("no such card"), http.StatusNotFound},
		{Conflict("email taken"), http.StatusConflict},
		{TooManyRequests("slow down"), http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		status, message := renderedError(t, tc.err)
		require.Equal(t, tc.status, status)
		require.Equal(t, tc.err.Message, message)
	}
}

func TestUnexpectedErrorIsCoercedTo500(t *testing.T) {
	status, message := renderedError(t, errors.New("pg driver exploded"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, InternalMessage, message)
}

func TestInternalDetailNeverLeaks(t *testing.T) {
	status, message := renderedError(t, Internal(errors.New("secret detail")))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, InternalMessage, message)
	require.NotContains(t, message, "secret detail")
}

func TestWrappedTypedErrorStaysTyped(t *testing.T) {
	wrapped := fmt.Errorf("handler context: %w", NotFound("no such card"))
	status, message := renderedError(t, wrapped)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "no such card", message)
}

func TestFiberErrorsKeepTheirStatus(t *testing.T) {
	status, message := renderedError(t, fiber.NewError(http.StatusTeapot, "teapot"))
	require.Equal(t, http.StatusTeapot, status)
	require.Equal(t, "teapot", message)
}
