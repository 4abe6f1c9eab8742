package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

// ErrorHandler renders any error returned by a handler as the failure
// envelope. Only an ApiError or fiber.Error chooses the status and message;
// everything else is a 500 with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var apiErr *utils.ApiError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		status, message = apiErr.StatusCode, apiErr.Message
	case errors.As(err, &fiberErr):
		status, message = fiberErr.Code, fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("❌ [HTTP] request failed", "method", c.Method(), "path", c.Path(), "status", status, "error", err)
	}

	return c.Status(status).JSON(models.NewApiResponse(status, nil, message))
}

// RequestLogger logs one line per request. Errors are rendered here so the
// logged status is the one the client receives.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).Truncate(time.Microsecond),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			slog.Error("🌐 [HTTP] request", attrs...)
		case status >= fiber.StatusBadRequest:
			slog.Warn("🌐 [HTTP] request", attrs...)
		default:
			slog.Info("🌐 [HTTP] request", attrs...)
		}
		return nil
	}
}
