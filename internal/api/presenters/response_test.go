package presenters

import (
	"Foodgram-Backend/domain"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: domain.ErrDuplicateTags, want: fiber.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", domain.ErrNotEnoughRecipeData), want: fiber.StatusBadRequest},
		{name: "anonymous write", err: domain.ErrAuthenticationRequired, want: fiber.StatusUnauthorized},
		{name: "token expired", err: domain.ErrTokenExpired, want: fiber.StatusUnauthorized},
		{name: "not the author", err: domain.ErrPermissionDenied, want: fiber.StatusForbidden},
		{name: "missing recipe", err: domain.ErrRecipeNotFound, want: fiber.StatusNotFound},
		{name: "not in list", err: domain.ErrRecipeNotInList, want: fiber.StatusNotFound},
		{name: "duplicate relation", err: domain.ErrRecipeAlreadyInList, want: fiber.StatusConflict},
		{name: "fiber error", err: fiber.ErrUnprocessableEntity, want: fiber.StatusUnprocessableEntity},
		{name: "unknown", err: errors.New("db down"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestFailResponse_ValidationFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FailResponse(c, "failed", domain.ErrDuplicateIngredients)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var res Response
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Status)
	assert.Equal(t, "failed", res.Message)
	assert.Equal(t, "ingredients must be unique", res.Errors["ingredients"])
}

func TestFailResponse_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FailResponse(c, "failed", errors.New("pq: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection refused")
}
