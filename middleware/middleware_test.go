package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

func makeApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestLogger())
	app.Get("/test", handler)
	return app
}

func call(t *testing.T, app *fiber.App, path string) (int, models.ApiResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_ApiError(t *testing.T) {
	app := makeApp(func(c *fiber.Ctx) error {
		return utils.NewApiError(fiber.StatusBadRequest, "Bad filter", errors.New("detail"))
	})

	status, body := call(t, app, "/test")
	assert.Equal(t, 400, status)
	assert.Equal(t, 400, body.StatusCode)
	assert.Equal(t, "Bad filter", body.Message)
	assert.False(t, body.Success)
	assert.Nil(t, body.Data)
}

func TestErrorHandler_PlainErrorIsGeneric(t *testing.T) {
	app := makeApp(func(c *fiber.Ctx) error {
		return errors.New("pq: relation sales does not exist")
	})

	status, body := call(t, app, "/test")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := makeApp(func(c *fiber.Ctx) error { return c.SendString("ok") })

	status, body := call(t, app, "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, 404, body.StatusCode)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	app := makeApp(func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
