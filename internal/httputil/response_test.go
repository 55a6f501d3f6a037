package httputil_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sonority/internal/httputil"
	"sonority/internal/logger"
	"sonority/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusOf(t *testing.T) {
	cases := map[services.Kind]int{
		services.KindConflict:          http.StatusConflict,
		services.KindInvalidTransition: http.StatusConflict,
		services.KindNotFound:          http.StatusNotFound,
		services.KindForbidden:         http.StatusForbidden,
		services.KindBadInput:          http.StatusBadRequest,
		services.KindUnauthenticated:   http.StatusUnauthorized,
		services.KindInternal:          http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, httputil.StatusOf(kind), kind.String())
	}
}

func render(t *testing.T, handler fiber.Handler) (int, httputil.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteServiceError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	t.Run("domain error keeps its code", func(t *testing.T) {
		status, body := render(t, func(c *fiber.Ctx) error {
			return httputil.WriteServiceError(c, log, fmt.Errorf("wrapped: %w", services.ErrAlbumNotFound))
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "album_not_found", body.Error.Code)
		assert.Equal(t, "Album does not exist", body.Error.Message)
		assert.Zero(t, logs.Len())
	})

	t.Run("other errors are hidden and logged", func(t *testing.T) {
		status, body := render(t, func(c *fiber.Ctx) error {
			return httputil.WriteServiceError(c, log, errors.New("connection reset by peer"))
		})
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, httputil.ErrCodeInternal, body.Error.Code)
		assert.NotContains(t, body.Error.Message, "connection reset")
		assert.Equal(t, 1, logs.Len())
	})
}

func TestWriteValidationError(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}
	status, body := render(t, func(c *fiber.Ctx) error {
		return httputil.WriteValidationError(c, validator.New().Struct(input{}))
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, httputil.ErrCodeValidation, body.Error.Code)
	assert.Contains(t, body.Error.Fields["Name"], "required")
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, httputil.ErrCodeNotFound, httputil.CodeForStatus(http.StatusNotFound))
	assert.Equal(t, httputil.ErrCodeTooMany, httputil.CodeForStatus(http.StatusTooManyRequests))
	assert.Equal(t, httputil.ErrCodeInternal, httputil.CodeForStatus(http.StatusTeapot))
}
